// internal/scraper/scraper.go
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/shoplens/shoplens-backend/internal/models"
)

const (
	defaultTimeout     = 20 * time.Second
	defaultMaxPages    = 3
	defaultMaxProducts = 750
	defaultPageSize    = 250
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Guards against hostile or broken storefronts serving endless HTML.
	maxHomepageBytes = 5 << 20
)

// Options tunes the scraper's HTTP behavior and catalog budget. The zero
// value gets sensible production defaults from NewService.
type Options struct {
	Timeout     time.Duration
	MaxPages    int
	MaxProducts int
	PageSize    int
	UserAgent   string
	Scheme      string
}

// Service fetches and analyzes a single storefront per call. It is safe for
// concurrent use.
type Service struct {
	client      *http.Client
	log         *logrus.Logger
	userAgent   string
	scheme      string
	maxPages    int
	maxProducts int
	pageSize    int
}

func NewService(opts Options, logger *logrus.Logger) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	if opts.MaxProducts <= 0 {
		opts.MaxProducts = defaultMaxProducts
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Scheme == "" {
		opts.Scheme = "https"
	}
	return &Service{
		client:      &http.Client{Timeout: opts.Timeout},
		log:         logger,
		userAgent:   opts.UserAgent,
		scheme:      opts.Scheme,
		maxPages:    opts.MaxPages,
		maxProducts: opts.MaxProducts,
		pageSize:    opts.PageSize,
	}
}

func (s *Service) getJSON(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")
	return s.client.Do(req)
}

func (s *Service) getHTML(ctx context.Context, endpoint string) (string, *goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("homepage returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHomepageBytes))
	if err != nil {
		return "", nil, err
	}
	html := string(body)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil, err
	}
	return html, doc, nil
}

// headOK reports whether a HEAD request to the endpoint succeeds. Failures
// of any kind count as absent.
func (s *Service) headOK(ctx context.Context, endpoint string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, endpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 400
}

// ExtractDomain normalizes a user-supplied store URL to its bare hostname.
func ExtractDomain(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidURL)
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Hostname() == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return parsed.Hostname(), nil
}

// DetectPlatform classifies which commerce platform the domain runs,
// probing the public product feed first and falling back to homepage
// markers.
func (s *Service) DetectPlatform(ctx context.Context, domain string) models.DetectionResult {
	detection := models.DetectionResult{
		Platform:   models.PlatformUnknown,
		Confidence: models.ConfidenceLow,
	}

	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	resp, err := s.getJSON(probeCtx, fmt.Sprintf("%s://%s/products.json?limit=1", s.scheme, domain))
	if err == nil {
		hasProducts := false
		if resp.StatusCode == http.StatusOK {
			var payload models.ProductsResponse
			if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
				hasProducts = payload.Products != nil
			}
		}
		probeProductsFeed(resp.StatusCode, hasProducts, &detection)
		resp.Body.Close()
	}
	cancel()

	html, doc, err := s.getHTML(ctx, fmt.Sprintf("%s://%s", s.scheme, domain))
	if err != nil {
		detection.Indicators = append(detection.Indicators, "homepage fetch failed: "+err.Error())
		detection.IsShopify = detection.Platform == models.PlatformShopify
		return detection
	}

	classifyHTML(html, doc, &detection)
	return detection
}

// Scrape runs the full pipeline for one storefront: platform detection,
// concurrent homepage analysis and catalog download, then a best-effort
// collections probe.
func (s *Service) Scrape(ctx context.Context, domain string) (*models.ScrapeResult, error) {
	log := s.log.WithField("domain", domain)
	log.Info("Starting storefront scrape")

	detection := s.DetectPlatform(ctx, domain)
	log.WithFields(logrus.Fields{
		"platform":   detection.Platform,
		"confidence": detection.Confidence,
	}).Info("Platform detection complete")

	if !detection.IsShopify {
		return nil, &PlatformNotSupportedError{Detection: detection}
	}
	if !detection.APIAvailable {
		return nil, &APIDisabledError{Detection: detection}
	}

	var (
		analysis homepageAnalysis
		products []models.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		html, doc, err := s.getHTML(gctx, fmt.Sprintf("%s://%s", s.scheme, domain))
		if err != nil {
			return fmt.Errorf("analyze homepage: %w", err)
		}
		analysis = analyzeHomepage(domain, html, doc)
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = s.fetchProducts(gctx, domain)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	analysis.SEOAnalysis.RobotsTxt = s.headOK(ctx, fmt.Sprintf("%s://%s/robots.txt", s.scheme, domain))
	analysis.SEOAnalysis.Sitemap = s.headOK(ctx, fmt.Sprintf("%s://%s/sitemap.xml", s.scheme, domain))

	if collections := s.fetchCollections(ctx, domain); len(collections) > analysis.SiteStructure.CollectionsCount {
		analysis.SiteStructure.CollectionsCount = len(collections)
	}

	log.WithField("products", len(products)).Info("Scrape complete")

	return &models.ScrapeResult{
		Meta:          analysis.Meta,
		Products:      products,
		SocialLinks:   analysis.SocialLinks,
		TechAnalysis:  analysis.TechAnalysis,
		SiteStructure: analysis.SiteStructure,
		SEOAnalysis:   analysis.SEOAnalysis,
	}, nil
}
