// internal/scraper/detector.go
package scraper

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shoplens/shoplens-backend/internal/models"
)

// Platform detection is heuristic: markers that are cheap to spot in the
// homepage HTML are counted per platform, and the first platform clearing
// its score floor wins. The Shopify check runs against the products.json
// probe first since a working feed is definitive.

type htmlCheck struct {
	desc  string
	match func(html string, doc *goquery.Document) bool
}

func contains(substr string) func(string, *goquery.Document) bool {
	return func(html string, _ *goquery.Document) bool {
		return strings.Contains(html, substr)
	}
}

func selectorExists(selector string) func(string, *goquery.Document) bool {
	return func(_ string, doc *goquery.Document) bool {
		return doc != nil && doc.Find(selector).Length() > 0
	}
}

var shopifyChecks = []htmlCheck{
	{"Shopify.theme object", contains("Shopify.theme")},
	{"Shopify CDN reference", contains("cdn.shopify.com")},
	{"Shopify section markup", contains("shopify-section")},
	{"Shopify cart.js", contains("/cart.js")},
	{"Shopify CDN stylesheet link", selectorExists(`link[href*="cdn.shopify.com"]`)},
	{"Shopify CDN script", selectorExists(`script[src*="cdn.shopify.com"]`)},
	{"myshopify.com reference", contains("myshopify.com")},
	{"Shopify checkout token", selectorExists(`meta[name="shopify-checkout-api-token"]`)},
}

type platformProbe struct {
	platform  models.Platform
	minScore  int
	highScore int
	checks    []func(string, *goquery.Document) bool
}

var platformProbes = []platformProbe{
	{
		platform: models.PlatformWooCommerce, minScore: 3, highScore: 4,
		checks: []func(string, *goquery.Document) bool{
			contains("woocommerce"),
			contains("wc-"),
			contains("/wp-content/"),
			contains("/wp-includes/"),
			selectorExists("body.woocommerce"),
			contains("add_to_cart"),
		},
	},
	{
		platform: models.PlatformMagento, minScore: 2, highScore: 3,
		checks: []func(string, *goquery.Document) bool{
			contains("Magento"),
			contains("mage/"),
			contains("/static/version"),
			contains("Magento_"),
			func(html string, doc *goquery.Document) bool {
				return selectorExists(`script[src*="requirejs"]`)(html, doc) && strings.Contains(html, "mage")
			},
		},
	},
	{
		platform: models.PlatformBigCommerce, minScore: 2, highScore: 3,
		checks: []func(string, *goquery.Document) bool{
			contains("bigcommerce"),
			contains("BigCommerce"),
			contains("/stencil/"),
			selectorExists(`script[src*="bigcommerce.com"]`),
		},
	},
	{
		platform: models.PlatformSquarespace, minScore: 2, highScore: 3,
		checks: []func(string, *goquery.Document) bool{
			contains("squarespace"),
			contains("static.squarespace.com"),
			selectorExists(`script[src*="squarespace"]`),
		},
	},
	{
		platform: models.PlatformWix, minScore: 2, highScore: 3,
		checks: []func(string, *goquery.Document) bool{
			contains("wix.com"),
			contains("static.wixstatic.com"),
			contains("wix-code"),
		},
	},
	{
		platform: models.PlatformPrestaShop, minScore: 1, highScore: 2,
		checks: []func(string, *goquery.Document) bool{
			contains("prestashop"),
			contains("PrestaShop"),
		},
	},
	{
		platform: models.PlatformOpenCart, minScore: 1, highScore: 2,
		checks: []func(string, *goquery.Document) bool{
			contains("opencart"),
			contains("route=common/home"),
		},
	},
}

// classifyHTML scores the homepage HTML against every platform's marker
// table and fills in the detection result. The Shopify verdict from the
// feed probe, when present, is kept.
func classifyHTML(html string, doc *goquery.Document, detection *models.DetectionResult) {
	shopifyScore := 0
	for _, check := range shopifyChecks {
		if check.match(html, doc) {
			shopifyScore++
			detection.Indicators = append(detection.Indicators, "detected "+check.desc)
		}
	}

	if detection.Platform != models.PlatformShopify && shopifyScore >= 3 {
		detection.Platform = models.PlatformShopify
		detection.Confidence = models.ConfidenceMedium
		if shopifyScore >= 5 {
			detection.Confidence = models.ConfidenceHigh
		}
	}
	if detection.Platform == models.PlatformShopify && !detection.APIAvailable {
		detection.Indicators = append(detection.Indicators,
			"confirmed Shopify storefront with products.json disabled")
	}

	for _, probe := range platformProbes {
		if detection.Platform != models.PlatformUnknown {
			break
		}
		score := 0
		for _, check := range probe.checks {
			if check(html, doc) {
				score++
			}
		}
		if score >= probe.minScore {
			detection.Platform = probe.platform
			detection.Confidence = models.ConfidenceMedium
			if score >= probe.highScore {
				detection.Confidence = models.ConfidenceHigh
			}
			detection.Indicators = append(detection.Indicators,
				fmt.Sprintf("detected %s markers (%d indicators)", probe.platform.DisplayName(), score))
		}
	}

	detection.IsShopify = detection.Platform == models.PlatformShopify
}

// probeProductsFeed interprets the status of a products.json?limit=1 request.
func probeProductsFeed(status int, hasProducts bool, detection *models.DetectionResult) {
	switch {
	case status == http.StatusOK && hasProducts:
		detection.APIAvailable = true
		detection.Platform = models.PlatformShopify
		detection.Confidence = models.ConfidenceHigh
		detection.Indicators = append(detection.Indicators, "Shopify products.json API reachable")
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		detection.Indicators = append(detection.Indicators,
			fmt.Sprintf("products.json returned %d (likely Shopify with the API disabled)", status))
	case status == http.StatusNotFound:
		detection.Indicators = append(detection.Indicators, "products.json endpoint not present")
	}
}
