// internal/scraper/products.go
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/sirupsen/logrus"

	"github.com/shoplens/shoplens-backend/internal/models"
)

// fetchProducts walks /products.json page by page until the page limit or
// the product budget is reached. A short page ends the walk early.
func (s *Service) fetchProducts(ctx context.Context, domain string) ([]models.Product, error) {
	var all []models.Product

	for page := 1; page <= s.maxPages && len(all) < s.maxProducts; page++ {
		endpoint := fmt.Sprintf("%s://%s/products.json?limit=%d&page=%d", s.scheme, domain, s.pageSize, page)
		s.log.WithField("url", endpoint).Debug("Fetching product page")

		resp, err := s.getJSON(ctx, endpoint)
		if err != nil {
			if len(all) > 0 {
				s.log.WithError(err).WithField("page", page).Warn("Stopping product pagination on error")
				break
			}
			return nil, err
		}

		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusNotFound:
			resp.Body.Close()
			return nil, ErrProductsNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return nil, ErrProductsForbidden
		default:
			resp.Body.Close()
			if len(all) > 0 {
				s.log.WithField("status", resp.StatusCode).Warn("Stopping product pagination on bad status")
				return capProducts(all, s.maxProducts), nil
			}
			return nil, fmt.Errorf("products.json returned status %d", resp.StatusCode)
		}

		var payload models.ProductsResponse
		err = json.NewDecoder(resp.Body).Decode(&payload)
		resp.Body.Close()
		if err != nil {
			if len(all) > 0 {
				break
			}
			return nil, fmt.Errorf("decode products page %d: %w", page, err)
		}

		if len(payload.Products) == 0 {
			break
		}

		for i := range payload.Products {
			payload.Products[i].BodyHTML = descriptionToMarkdown(payload.Products[i].BodyHTML)
		}
		all = append(all, payload.Products...)
		s.log.WithFields(logrus.Fields{
			"page":  page,
			"count": len(payload.Products),
			"total": len(all),
		}).Debug("Fetched product page")

		if len(payload.Products) < s.pageSize {
			break
		}
	}

	if len(all) == 0 {
		return nil, ErrEmptyCatalog
	}
	return capProducts(all, s.maxProducts), nil
}

func capProducts(products []models.Product, max int) []models.Product {
	if len(products) > max {
		return products[:max]
	}
	return products
}

// descriptionToMarkdown converts a product description to Markdown, keeping
// the raw HTML when conversion fails.
func descriptionToMarkdown(bodyHTML string) string {
	if bodyHTML == "" {
		return ""
	}
	md, err := htmltomarkdown.ConvertString(bodyHTML)
	if err != nil {
		return bodyHTML
	}
	return md
}

// fetchCollections reads the public collections feed. Many stores disable
// it, so every failure is reported as an empty list.
func (s *Service) fetchCollections(ctx context.Context, domain string) []models.Collection {
	endpoint := fmt.Sprintf("%s://%s/collections.json", s.scheme, domain)
	resp, err := s.getJSON(ctx, endpoint)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}
	var payload models.CollectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil
	}
	return payload.Collections
}
