// internal/aggregator/stats.go
package aggregator

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shoplens/shoplens-backend/internal/models"
)

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	mid := n / 2
	if n%2 != 0 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func stdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumSquares float64
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

func positivePrices(products []models.Product) []float64 {
	var prices []float64
	for i := range products {
		if p := products[i].Price(); p > 0 {
			prices = append(prices, p)
		}
	}
	return prices
}

func calculatePriceStats(products []models.Product) models.PriceStats {
	prices := positivePrices(products)
	if len(prices) == 0 {
		return models.PriceStats{
			TotalProducts: len(products),
			PriceCurrency: "USD",
		}
	}

	var sum float64
	minPrice, maxPrice := prices[0], prices[0]
	for _, p := range prices {
		sum += p
		if p < minPrice {
			minPrice = p
		}
		if p > maxPrice {
			maxPrice = p
		}
	}
	average := sum / float64(len(prices))

	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)

	return models.PriceStats{
		TotalProducts:     len(products),
		AveragePrice:      round2(average),
		MedianPrice:       round2(median(sorted)),
		MinPrice:          minPrice,
		MaxPrice:          maxPrice,
		PriceCurrency:     "USD",
		PriceStdDeviation: round2(stdDev(prices, average)),
	}
}

// calculateTagCloud counts case-folded tags across the catalog; percentages
// are relative to the product count, not the tag total.
func calculateTagCloud(products []models.Product, topN int) []models.TagCount {
	counts := make(map[string]int)
	for i := range products {
		for _, tag := range products[i].Tags {
			normalized := strings.ToLower(strings.TrimSpace(tag))
			if normalized != "" {
				counts[normalized]++
			}
		}
	}

	total := len(products)
	cloud := make([]models.TagCount, 0, len(counts))
	for tag, count := range counts {
		cloud = append(cloud, models.TagCount{
			Tag:        tag,
			Count:      count,
			Percentage: round1(float64(count) / float64(total) * 100),
		})
	}

	sort.SliceStable(cloud, func(i, j int) bool {
		if cloud[i].Count != cloud[j].Count {
			return cloud[i].Count > cloud[j].Count
		}
		return cloud[i].Tag < cloud[j].Tag
	})

	if len(cloud) > topN {
		cloud = cloud[:topN]
	}
	return cloud
}

type bucketSpec struct {
	min   float64
	max   float64 // math.Inf(1) for the open-ended bucket
	label string
}

// priceBucketSchemes picks one of four fixed bucket layouts based on the
// observed maximum price.
func priceBucketScheme(maxPrice float64) []bucketSpec {
	inf := math.Inf(1)
	switch {
	case maxPrice <= 50:
		return []bucketSpec{
			{0, 10, "$0-10"}, {10, 20, "$10-20"}, {20, 30, "$20-30"},
			{30, 40, "$30-40"}, {40, inf, "$40+"},
		}
	case maxPrice <= 200:
		return []bucketSpec{
			{0, 25, "$0-25"}, {25, 50, "$25-50"}, {50, 100, "$50-100"},
			{100, 150, "$100-150"}, {150, inf, "$150+"},
		}
	case maxPrice <= 500:
		return []bucketSpec{
			{0, 50, "$0-50"}, {50, 100, "$50-100"}, {100, 200, "$100-200"},
			{200, 350, "$200-350"}, {350, inf, "$350+"},
		}
	default:
		return []bucketSpec{
			{0, 100, "$0-100"}, {100, 250, "$100-250"}, {250, 500, "$250-500"},
			{500, 1000, "$500-1K"}, {1000, inf, "$1K+"},
		}
	}
}

func calculatePriceDistribution(products []models.Product) []models.PriceDistributionBucket {
	prices := positivePrices(products)
	if len(prices) == 0 {
		return nil
	}

	maxPrice := prices[0]
	for _, p := range prices {
		if p > maxPrice {
			maxPrice = p
		}
	}

	total := len(prices)
	buckets := priceBucketScheme(maxPrice)
	result := make([]models.PriceDistributionBucket, 0, len(buckets))
	for _, b := range buckets {
		count := 0
		for _, p := range prices {
			if p >= b.min && p < b.max {
				count++
			}
		}
		upper := b.max
		if math.IsInf(upper, 1) {
			upper = maxPrice + 1
		}
		result = append(result, models.PriceDistributionBucket{
			Range:      b.label,
			Min:        b.min,
			Max:        upper,
			Count:      count,
			Percentage: round1(float64(count) / float64(total) * 100),
		})
	}
	return result
}

func analyzeVendors(products []models.Product, topN int) []models.VendorAnalysis {
	type group struct {
		count  int
		prices []float64
	}
	groups := make(map[string]*group)
	for i := range products {
		vendor := products[i].Vendor
		if vendor == "" {
			vendor = "Unknown"
		}
		g, ok := groups[vendor]
		if !ok {
			g = &group{}
			groups[vendor] = g
		}
		g.count++
		if p := products[i].Price(); p > 0 {
			g.prices = append(g.prices, p)
		}
	}

	total := len(products)
	result := make([]models.VendorAnalysis, 0, len(groups))
	for vendor, g := range groups {
		analysis := models.VendorAnalysis{
			Vendor:       vendor,
			ProductCount: g.count,
			Percentage:   round1(float64(g.count) / float64(total) * 100),
		}
		if len(g.prices) > 0 {
			var sum float64
			minP, maxP := g.prices[0], g.prices[0]
			for _, p := range g.prices {
				sum += p
				if p < minP {
					minP = p
				}
				if p > maxP {
					maxP = p
				}
			}
			analysis.AvgPrice = round2(sum / float64(len(g.prices)))
			analysis.PriceRange = models.PriceRange{Min: minP, Max: maxP}
		}
		result = append(result, analysis)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].ProductCount != result[j].ProductCount {
			return result[i].ProductCount > result[j].ProductCount
		}
		return result[i].Vendor < result[j].Vendor
	})
	if len(result) > topN {
		result = result[:topN]
	}
	return result
}

func analyzeProductTypes(products []models.Product, topN int) []models.ProductTypeAnalysis {
	type group struct {
		count  int
		prices []float64
	}
	groups := make(map[string]*group)
	for i := range products {
		typ := products[i].ProductType
		if typ == "" {
			typ = "Uncategorized"
		}
		g, ok := groups[typ]
		if !ok {
			g = &group{}
			groups[typ] = g
		}
		g.count++
		if p := products[i].Price(); p > 0 {
			g.prices = append(g.prices, p)
		}
	}

	total := len(products)
	result := make([]models.ProductTypeAnalysis, 0, len(groups))
	for typ, g := range groups {
		analysis := models.ProductTypeAnalysis{
			Type:       typ,
			Count:      g.count,
			Percentage: round1(float64(g.count) / float64(total) * 100),
		}
		if len(g.prices) > 0 {
			var sum float64
			for _, p := range g.prices {
				sum += p
			}
			analysis.AvgPrice = round2(sum / float64(len(g.prices)))
		}
		result = append(result, analysis)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Type < result[j].Type
	})
	if len(result) > topN {
		result = result[:topN]
	}
	return result
}

var discountBuckets = []struct {
	label    string
	min, max int
}{
	{"1-10%", 1, 10},
	{"11-20%", 11, 20},
	{"21-30%", 21, 30},
	{"31-50%", 31, 50},
	{"50%+", 51, 100},
}

func analyzeDiscounts(products []models.Product) models.DiscountAnalysis {
	var discounts []int
	for i := range products {
		if d := products[i].DiscountPercent(); d > 0 {
			discounts = append(discounts, d)
		}
	}

	distribution := make([]models.DiscountBucket, 0, len(discountBuckets))
	for _, b := range discountBuckets {
		count := 0
		for _, d := range discounts {
			if d >= b.min && d <= b.max {
				count++
			}
		}
		distribution = append(distribution, models.DiscountBucket{Range: b.label, Count: count})
	}

	analysis := models.DiscountAnalysis{
		TotalProductsWithDiscount: len(discounts),
		DiscountDistribution:      distribution,
	}
	if len(products) > 0 {
		analysis.DiscountPercentage = round1(float64(len(discounts)) / float64(len(products)) * 100)
	}
	if len(discounts) > 0 {
		sum, max := 0, discounts[0]
		for _, d := range discounts {
			sum += d
			if d > max {
				max = d
			}
		}
		analysis.AverageDiscountPercent = round1(float64(sum) / float64(len(discounts)))
		analysis.MaxDiscountPercent = max
	}
	return analysis
}

func analyzeVariants(products []models.Product) models.VariantAnalysis {
	totalVariants := 0
	withMultiple := 0
	optionValues := make(map[string]map[string]struct{})
	optionOrder := []string{}

	for i := range products {
		variantCount := len(products[i].Variants)
		totalVariants += variantCount
		if variantCount > 1 {
			withMultiple++
		}
		for _, option := range products[i].Options {
			values, ok := optionValues[option.Name]
			if !ok {
				values = make(map[string]struct{})
				optionValues[option.Name] = values
				optionOrder = append(optionOrder, option.Name)
			}
			for _, v := range option.Values {
				values[v] = struct{}{}
			}
		}
	}

	optionTypes := make([]models.OptionTypeAnalysis, 0, len(optionValues))
	for _, name := range optionOrder {
		values := optionValues[name]
		sample := make([]string, 0, len(values))
		for v := range values {
			sample = append(sample, v)
		}
		sort.Strings(sample)
		if len(sample) > 10 {
			sample = sample[:10]
		}
		optionTypes = append(optionTypes, models.OptionTypeAnalysis{
			Name:         name,
			UniqueValues: len(values),
			TopValues:    sample,
		})
	}
	sort.SliceStable(optionTypes, func(i, j int) bool {
		return optionTypes[i].UniqueValues > optionTypes[j].UniqueValues
	})

	analysis := models.VariantAnalysis{
		TotalVariants:                totalVariants,
		ProductsWithMultipleVariants: withMultiple,
		OptionTypes:                  optionTypes,
	}
	if len(products) > 0 {
		analysis.AvgVariantsPerProduct = round1(float64(totalVariants) / float64(len(products)))
	}
	return analysis
}

func analyzeImages(products []models.Product) models.ImageAnalysis {
	totalImages := 0
	withoutImages := 0
	withAltText := 0

	for i := range products {
		imageCount := len(products[i].Images)
		totalImages += imageCount
		if imageCount == 0 {
			withoutImages++
		}
		for _, img := range products[i].Images {
			if img.Alt != nil && strings.TrimSpace(*img.Alt) != "" {
				withAltText++
				break
			}
		}
	}

	analysis := models.ImageAnalysis{
		TotalImages:           totalImages,
		ProductsWithoutImages: withoutImages,
		ProductsWithAltText:   withAltText,
	}
	if len(products) > 0 {
		analysis.AvgImagesPerProduct = round1(float64(totalImages) / float64(len(products)))
		analysis.AltTextPercentage = round1(float64(withAltText) / float64(len(products)) * 100)
	}
	return analysis
}

func analyzeTimeline(products []models.Product) models.TimelineAnalysis {
	var dates []time.Time
	for i := range products {
		if d := products[i].EffectiveDate(); d != nil {
			dates = append(dates, *d)
		}
	}
	if len(dates) == 0 {
		return models.TimelineAnalysis{}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	monthCounts := make(map[string]int)
	for _, d := range dates {
		monthCounts[d.Format("2006-01")]++
	}

	months := make([]string, 0, len(monthCounts))
	for m := range monthCounts {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > 12 {
		months = months[len(months)-12:]
	}

	frequency := make([]models.MonthCount, 0, len(months))
	for _, m := range months {
		frequency = append(frequency, models.MonthCount{Month: m, Count: monthCounts[m]})
	}

	return models.TimelineAnalysis{
		OldestProduct:       dates[0].Format("2006-01-02"),
		NewestProduct:       dates[len(dates)-1].Format("2006-01-02"),
		PublishingFrequency: frequency,
		AvgProductsPerMonth: round1(float64(len(products)) / float64(len(monthCounts))),
	}
}

func analyzeInventory(products []models.Product) models.InventoryAnalysis {
	inStock := 0
	for i := range products {
		if products[i].Available() {
			inStock++
		}
	}
	analysis := models.InventoryAnalysis{
		InStockProducts:    inStock,
		OutOfStockProducts: len(products) - inStock,
	}
	if len(products) > 0 {
		analysis.InStockPercentage = round1(float64(inStock) / float64(len(products)) * 100)
	}
	return analysis
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
