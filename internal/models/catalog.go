// internal/models/catalog.go
package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Money decodes the price fields of the public product feed, which arrive
// as JSON strings ("12.99"), numbers or null depending on the store.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*m = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*m = 0
			return nil
		}
		*m = Money(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Money(v)
	return nil
}

func (m Money) Float() float64 { return float64(m) }

// TagList accepts both representations Shopify uses for tags: a JSON array
// of strings or a single comma-separated string.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*t = nil
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		*t = arr
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	*t = tags
	return nil
}

type ProductImage struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Position  int     `json:"position"`
	Src       string  `json:"src"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Alt       *string `json:"alt"`
}

type ProductVariant struct {
	ID             int64   `json:"id"`
	ProductID      int64   `json:"product_id"`
	Title          string  `json:"title"`
	Price          Money   `json:"price"`
	CompareAtPrice *Money  `json:"compare_at_price"`
	SKU            string  `json:"sku"`
	Position       int     `json:"position"`
	Option1        *string `json:"option1"`
	Option2        *string `json:"option2"`
	Option3        *string `json:"option3"`
	Available      bool    `json:"available"`
}

type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Product is a read-only snapshot of one catalog entry from the public feed.
// It is fetched once per analysis and never mutated afterward.
type Product struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Handle      string           `json:"handle"`
	BodyHTML    string           `json:"body_html"`
	PublishedAt *time.Time       `json:"published_at"`
	CreatedAt   *time.Time       `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type"`
	Tags        TagList          `json:"tags"`
	Variants    []ProductVariant `json:"variants"`
	Images      []ProductImage   `json:"images"`
	Options     []ProductOption  `json:"options"`
}

// Price is the first variant's price, or zero when the product has none.
func (p *Product) Price() float64 {
	if len(p.Variants) > 0 {
		return p.Variants[0].Price.Float()
	}
	return 0
}

// VariantPrices returns all positive variant prices.
func (p *Product) VariantPrices() []float64 {
	var prices []float64
	for _, v := range p.Variants {
		if price := v.Price.Float(); price > 0 {
			prices = append(prices, price)
		}
	}
	return prices
}

// CompareAtPrice is the first variant's compare-at price, or zero when unset.
func (p *Product) CompareAtPrice() float64 {
	if len(p.Variants) > 0 && p.Variants[0].CompareAtPrice != nil {
		return p.Variants[0].CompareAtPrice.Float()
	}
	return 0
}

// DiscountPercent is the rounded percentage off the compare-at price, or
// zero when the product is not discounted.
func (p *Product) DiscountPercent() int {
	price := p.Price()
	compareAt := p.CompareAtPrice()
	if compareAt > price && price > 0 {
		return int(((compareAt-price)/compareAt)*100 + 0.5)
	}
	return 0
}

// Available reports whether at least one variant is purchasable.
func (p *Product) Available() bool {
	for _, v := range p.Variants {
		if v.Available {
			return true
		}
	}
	return false
}

// EffectiveDate is the published date, falling back to the created date.
func (p *Product) EffectiveDate() *time.Time {
	if p.PublishedAt != nil {
		return p.PublishedAt
	}
	return p.CreatedAt
}

type ProductsResponse struct {
	Products []Product `json:"products"`
}

type Collection struct {
	Title         string `json:"title"`
	Handle        string `json:"handle"`
	ProductsCount int    `json:"products_count"`
}

type CollectionsResponse struct {
	Collections []Collection `json:"collections"`
}
