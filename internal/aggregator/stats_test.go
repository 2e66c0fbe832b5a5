// internal/aggregator/stats_test.go
package aggregator

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplens/shoplens-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func moneyPtr(v float64) *models.Money {
	m := models.Money(v)
	return &m
}

func timePtr(t time.Time) *time.Time { return &t }

// pricedProduct builds a single-variant product. A zero compareAt leaves the
// compare-at price unset.
func pricedProduct(id int64, price, compareAt float64) models.Product {
	v := models.ProductVariant{
		ID:        id * 100,
		Title:     "Default",
		Price:     models.Money(price),
		Available: true,
	}
	if compareAt > 0 {
		v.CompareAtPrice = moneyPtr(compareAt)
	}
	return models.Product{
		ID:       id,
		Title:    fmt.Sprintf("Product %d", id),
		Handle:   fmt.Sprintf("product-%d", id),
		Variants: []models.ProductVariant{v},
	}
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 20.0, median([]float64{10, 20, 30}))
	assert.Equal(t, 25.0, median([]float64{10, 20, 30, 40}))
	assert.Equal(t, 10.0, median([]float64{10}))
	assert.Equal(t, 0.0, median(nil))
}

func TestCalculatePriceStats(t *testing.T) {
	products := []models.Product{
		pricedProduct(1, 10, 0),
		pricedProduct(2, 20, 0),
		pricedProduct(3, 30, 0),
		pricedProduct(4, 40, 0),
	}

	stats := calculatePriceStats(products)
	assert.Equal(t, 4, stats.TotalProducts)
	assert.Equal(t, 25.0, stats.AveragePrice)
	assert.Equal(t, 25.0, stats.MedianPrice)
	assert.Equal(t, 10.0, stats.MinPrice)
	assert.Equal(t, 40.0, stats.MaxPrice)
	assert.Equal(t, "USD", stats.PriceCurrency)
}

func TestCalculatePriceStatsIgnoresZeroPrices(t *testing.T) {
	products := []models.Product{
		pricedProduct(1, 0, 0),
		pricedProduct(2, 50, 0),
	}

	stats := calculatePriceStats(products)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 50.0, stats.AveragePrice)
	assert.Equal(t, 50.0, stats.MinPrice)
}

func TestCalculatePriceStatsEmptyCatalog(t *testing.T) {
	stats := calculatePriceStats(nil)
	assert.Equal(t, 0, stats.TotalProducts)
	assert.Equal(t, 0.0, stats.AveragePrice)
	assert.Equal(t, "USD", stats.PriceCurrency)
}

func TestCalculateTagCloudNormalizesAndRanks(t *testing.T) {
	products := []models.Product{
		{ID: 1, Tags: models.TagList{"Summer", "sale"}},
		{ID: 2, Tags: models.TagList{" summer ", "New"}},
		{ID: 3, Tags: models.TagList{"SUMMER"}},
		{ID: 4, Tags: models.TagList{""}},
	}

	cloud := calculateTagCloud(products, 25)
	require.NotEmpty(t, cloud)
	assert.Equal(t, "summer", cloud[0].Tag)
	assert.Equal(t, 3, cloud[0].Count)
	assert.Equal(t, 75.0, cloud[0].Percentage)
}

func TestCalculateTagCloudCapsAtTopN(t *testing.T) {
	var products []models.Product
	for i := 0; i < 30; i++ {
		products = append(products, models.Product{
			ID:   int64(i),
			Tags: models.TagList{fmt.Sprintf("tag-%02d", i)},
		})
	}

	cloud := calculateTagCloud(products, 25)
	assert.Len(t, cloud, 25)
}

func TestPriceDistributionSchemeSelection(t *testing.T) {
	cases := []struct {
		maxPrice   float64
		firstRange string
		lastRange  string
	}{
		{45, "$0-10", "$40+"},
		{180, "$0-25", "$150+"},
		{450, "$0-50", "$350+"},
		{1200, "$0-100", "$1K+"},
	}
	for _, tc := range cases {
		products := []models.Product{pricedProduct(1, 5, 0), pricedProduct(2, tc.maxPrice, 0)}
		dist := calculatePriceDistribution(products)
		require.Len(t, dist, 5, "max price %v", tc.maxPrice)
		assert.Equal(t, tc.firstRange, dist[0].Range)
		assert.Equal(t, tc.lastRange, dist[4].Range)
		assert.Equal(t, tc.maxPrice+1, dist[4].Max)
	}
}

func TestPriceDistributionPercentagesSumToWhole(t *testing.T) {
	products := []models.Product{
		pricedProduct(1, 5, 0),
		pricedProduct(2, 15, 0),
		pricedProduct(3, 25, 0),
		pricedProduct(4, 35, 0),
		pricedProduct(5, 45, 0),
	}

	dist := calculatePriceDistribution(products)
	var sum float64
	total := 0
	for _, b := range dist {
		sum += b.Percentage
		total += b.Count
	}
	assert.Equal(t, 5, total)
	assert.InDelta(t, 100.0, sum, 0.5)
}

func TestAnalyzeVendorsDefaultsAndRanks(t *testing.T) {
	products := []models.Product{
		func() models.Product { p := pricedProduct(1, 10, 0); p.Vendor = "Acme"; return p }(),
		func() models.Product { p := pricedProduct(2, 30, 0); p.Vendor = "Acme"; return p }(),
		pricedProduct(3, 20, 0),
	}

	vendors := analyzeVendors(products, 15)
	require.Len(t, vendors, 2)
	assert.Equal(t, "Acme", vendors[0].Vendor)
	assert.Equal(t, 2, vendors[0].ProductCount)
	assert.Equal(t, 20.0, vendors[0].AvgPrice)
	assert.Equal(t, models.PriceRange{Min: 10, Max: 30}, vendors[0].PriceRange)
	assert.Equal(t, "Unknown", vendors[1].Vendor)
}

func TestAnalyzeProductTypesDefaultsUncategorized(t *testing.T) {
	products := []models.Product{pricedProduct(1, 10, 0)}
	types := analyzeProductTypes(products, 15)
	require.Len(t, types, 1)
	assert.Equal(t, "Uncategorized", types[0].Type)
	assert.Equal(t, 100.0, types[0].Percentage)
}

func TestAnalyzeDiscountsRounding(t *testing.T) {
	// 80 against a compare-at of 100 is a 20% markdown.
	products := []models.Product{pricedProduct(1, 80, 100)}
	analysis := analyzeDiscounts(products)
	assert.Equal(t, 1, analysis.TotalProductsWithDiscount)
	assert.Equal(t, 20.0, analysis.AverageDiscountPercent)
	assert.Equal(t, 20, analysis.MaxDiscountPercent)

	var bucket11to20 int
	for _, b := range analysis.DiscountDistribution {
		if b.Range == "11-20%" {
			bucket11to20 = b.Count
		}
	}
	assert.Equal(t, 1, bucket11to20)
}

func TestAnalyzeDiscountsLargeCatalog(t *testing.T) {
	var products []models.Product
	for i := 0; i < 40; i++ {
		products = append(products, pricedProduct(int64(i), 75, 100))
	}
	for i := 40; i < 100; i++ {
		products = append(products, pricedProduct(int64(i), 50, 0))
	}

	analysis := analyzeDiscounts(products)
	assert.Equal(t, 40, analysis.TotalProductsWithDiscount)
	assert.Equal(t, 40.0, analysis.DiscountPercentage)
	assert.Equal(t, 25.0, analysis.AverageDiscountPercent)
}

func TestAnalyzeDiscountsIgnoresEqualOrLowerCompareAt(t *testing.T) {
	products := []models.Product{
		pricedProduct(1, 100, 100),
		pricedProduct(2, 100, 90),
	}
	analysis := analyzeDiscounts(products)
	assert.Equal(t, 0, analysis.TotalProductsWithDiscount)
}

func TestAnalyzeVariants(t *testing.T) {
	products := []models.Product{
		{
			ID: 1,
			Variants: []models.ProductVariant{
				{ID: 11, Price: 10, Option1: strPtr("S")},
				{ID: 12, Price: 10, Option1: strPtr("M")},
			},
			Options: []models.ProductOption{
				{Name: "Size", Values: []string{"S", "M"}},
				{Name: "Color", Values: []string{"Red"}},
			},
		},
		{
			ID:       2,
			Variants: []models.ProductVariant{{ID: 21, Price: 20}},
			Options:  []models.ProductOption{{Name: "Size", Values: []string{"L"}}},
		},
	}

	analysis := analyzeVariants(products)
	assert.Equal(t, 3, analysis.TotalVariants)
	assert.Equal(t, 1.5, analysis.AvgVariantsPerProduct)
	assert.Equal(t, 1, analysis.ProductsWithMultipleVariants)

	require.Len(t, analysis.OptionTypes, 2)
	assert.Equal(t, "Size", analysis.OptionTypes[0].Name)
	assert.Equal(t, 3, analysis.OptionTypes[0].UniqueValues)
	assert.Equal(t, []string{"L", "M", "S"}, analysis.OptionTypes[0].TopValues)
}

func TestAnalyzeImagesAltTextCoverage(t *testing.T) {
	products := []models.Product{
		{ID: 1, Images: []models.ProductImage{
			{Src: "a.jpg", Alt: strPtr("A nice photo")},
			{Src: "b.jpg"},
		}},
		{ID: 2, Images: []models.ProductImage{{Src: "c.jpg", Alt: strPtr("  ")}}},
		{ID: 3},
	}

	analysis := analyzeImages(products)
	assert.Equal(t, 3, analysis.TotalImages)
	assert.Equal(t, 1.0, analysis.AvgImagesPerProduct)
	assert.Equal(t, 1, analysis.ProductsWithoutImages)
	assert.Equal(t, 1, analysis.ProductsWithAltText)
	assert.Equal(t, 33.3, analysis.AltTextPercentage)
}

func TestAnalyzeTimeline(t *testing.T) {
	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	products := []models.Product{
		{ID: 1, PublishedAt: timePtr(jan)},
		{ID: 2, PublishedAt: timePtr(feb)},
		{ID: 3, CreatedAt: timePtr(feb)},
		{ID: 4},
	}

	analysis := analyzeTimeline(products)
	assert.Equal(t, "2025-01-15", analysis.OldestProduct)
	assert.Equal(t, "2025-02-10", analysis.NewestProduct)
	require.Len(t, analysis.PublishingFrequency, 2)
	assert.Equal(t, models.MonthCount{Month: "2025-01", Count: 1}, analysis.PublishingFrequency[0])
	assert.Equal(t, models.MonthCount{Month: "2025-02", Count: 2}, analysis.PublishingFrequency[1])
	assert.Equal(t, 2.0, analysis.AvgProductsPerMonth)
}

func TestAnalyzeTimelineCapsAtTwelveMonths(t *testing.T) {
	var products []models.Product
	for i := 0; i < 18; i++ {
		d := time.Date(2024, time.Month(1+i%12), 1, 0, 0, 0, 0, time.UTC).AddDate(i/12, 0, 0)
		products = append(products, models.Product{ID: int64(i), PublishedAt: timePtr(d)})
	}

	analysis := analyzeTimeline(products)
	assert.LessOrEqual(t, len(analysis.PublishingFrequency), 12)
}

func TestAnalyzeInventory(t *testing.T) {
	products := []models.Product{
		{ID: 1, Variants: []models.ProductVariant{{Available: false}, {Available: true}}},
		{ID: 2, Variants: []models.ProductVariant{{Available: false}}},
		{ID: 3},
	}

	analysis := analyzeInventory(products)
	assert.Equal(t, 1, analysis.InStockProducts)
	assert.Equal(t, 2, analysis.OutOfStockProducts)
	assert.Equal(t, 33.3, analysis.InStockPercentage)
}
