// internal/aggregator/aggregator.go
package aggregator

import (
	"sort"
	"time"

	"github.com/shoplens/shoplens-backend/internal/models"
)

const (
	tagCloudTopN     = 25
	vendorTopN       = 15
	productTypeTopN  = 15
	contextTagsTopN  = 15
	contextGroupTopN = 10
	sampleSize       = 12
)

// Aggregate computes the full statistical summary for a scraped storefront.
// The clock is injected so repeated runs over the same snapshot produce
// identical output.
func Aggregate(result *models.ScrapeResult, now time.Time) models.AggregatedData {
	products := result.Products

	data := models.AggregatedData{
		Stats:               calculatePriceStats(products),
		TagCloud:            calculateTagCloud(products, tagCloudTopN),
		PriceDistribution:   calculatePriceDistribution(products),
		VendorAnalysis:      analyzeVendors(products, vendorTopN),
		ProductTypeAnalysis: analyzeProductTypes(products, productTypeTopN),
		DiscountAnalysis:    analyzeDiscounts(products),
		VariantAnalysis:     analyzeVariants(products),
		ImageAnalysis:       analyzeImages(products),
		TimelineAnalysis:    analyzeTimeline(products),
		InventoryAnalysis:   analyzeInventory(products),
	}
	data.WebsiteHealth = calculateWebsiteHealth(
		result.SEOAnalysis,
		result.TechAnalysis,
		result.SiteStructure,
		result.SocialLinks,
		data.ImageAnalysis,
	)
	data.StoreScores = calculateStoreScores(&data, result)

	data.AllProducts = buildProductDetails(products, result.Meta.Domain, data.Stats.AveragePrice, now)
	data.AIContext = buildAIContext(result, &data)
	return data
}

// buildProductDetails enriches every product and orders the list newest
// first by effective publication date. Products without any date sort last,
// ties break on ID for a stable order.
func buildProductDetails(products []models.Product, domain string, avgPrice float64, now time.Time) []models.ProductDetail {
	type dated struct {
		detail models.ProductDetail
		date   *time.Time
		id     int64
	}
	entries := make([]dated, 0, len(products))
	for i := range products {
		p := &products[i]
		entries = append(entries, dated{
			detail: toProductDetail(p, domain, avgPrice, now),
			date:   p.EffectiveDate(),
			id:     p.ID,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].date, entries[j].date
		switch {
		case di == nil && dj == nil:
			return entries[i].id > entries[j].id
		case di == nil:
			return false
		case dj == nil:
			return true
		case !di.Equal(*dj):
			return di.After(*dj)
		default:
			return entries[i].id > entries[j].id
		}
	})
	details := make([]models.ProductDetail, 0, len(entries))
	for _, e := range entries {
		details = append(details, e.detail)
	}
	return details
}

// sampleDetails picks up to n products spread evenly across the ordered
// list, so the sample covers new and old listings alike.
func sampleDetails(details []models.ProductDetail, n int) []models.ProductDetail {
	if len(details) <= n {
		out := make([]models.ProductDetail, len(details))
		copy(out, details)
		return out
	}
	step := len(details) / n
	out := make([]models.ProductDetail, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, details[i*step])
	}
	return out
}

func topN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func buildAIContext(result *models.ScrapeResult, data *models.AggregatedData) models.AIContext {
	return models.AIContext{
		StoreMeta:           result.Meta,
		Stats:               data.Stats,
		TopTags:             topN(data.TagCloud, contextTagsTopN),
		VendorAnalysis:      topN(data.VendorAnalysis, contextGroupTopN),
		ProductTypeAnalysis: topN(data.ProductTypeAnalysis, contextGroupTopN),
		DiscountAnalysis:    data.DiscountAnalysis,
		VariantAnalysis:     data.VariantAnalysis,
		ImageAnalysis:       data.ImageAnalysis,
		TimelineAnalysis:    data.TimelineAnalysis,
		InventoryAnalysis:   data.InventoryAnalysis,
		SocialLinks:         result.SocialLinks,
		TechAnalysis:        result.TechAnalysis,
		SiteStructure:       result.SiteStructure,
		SEOAnalysis:         result.SEOAnalysis,
		WebsiteHealth:       data.WebsiteHealth,
		SampleProducts:      sampleDetails(data.AllProducts, sampleSize),
	}
}
