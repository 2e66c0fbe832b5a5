// internal/aggregator/insights.go
package aggregator

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shoplens/shoplens-backend/internal/models"
)

// Insight inference is deliberately simple rule-based classification:
// threshold ladders over the catalog average price and keyword triggers
// matched case-insensitively against tags, titles and descriptions.
// Keyword lists carry both English and Chinese synonyms since the catalogs
// analyzed span both markets.

func inferPriceTier(price, avgPrice float64) models.PriceTier {
	if avgPrice <= 0 {
		return models.PriceTierMidRange
	}
	switch {
	case price < avgPrice*0.5:
		return models.PriceTierBudget
	case price < avgPrice*1.2:
		return models.PriceTierMidRange
	case price < avgPrice*2.5:
		return models.PriceTierPremium
	default:
		return models.PriceTierLuxury
	}
}

type keywordRule struct {
	keywords []string
	label    string
}

var audienceTagRules = []keywordRule{
	{[]string{"women", "女"}, "women shoppers"},
	{[]string{"men", "男"}, "men shoppers"},
	{[]string{"kid", "child", "儿童"}, "parents and kids"},
	{[]string{"gift", "礼"}, "gift buyers"},
	{[]string{"sport", "fitness", "运动"}, "sports and fitness enthusiasts"},
	{[]string{"eco", "sustainable", "环保"}, "eco-conscious shoppers"},
	{[]string{"premium", "luxury"}, "luxury shoppers"},
	{[]string{"office", "work", "办公"}, "office professionals"},
}

var audienceTypeRules = []keywordRule{
	{[]string{"shirt", "dress"}, "fashion-forward buyers"},
	{[]string{"accessory", "accessories"}, "accessory collectors"},
}

func inferTargetAudience(tags []string, price, avgPrice float64, productType string) []string {
	var audiences []string

	switch {
	case avgPrice > 0 && price < avgPrice*0.6:
		audiences = append(audiences, "price-sensitive shoppers", "students")
	case avgPrice > 0 && price > avgPrice*2:
		audiences = append(audiences, "high-income buyers", "quality seekers")
	default:
		audiences = append(audiences, "middle-income households")
	}

	lowered := make([]string, len(tags))
	for i, t := range tags {
		lowered[i] = strings.ToLower(t)
	}
	matchesAny := func(keywords []string) bool {
		for _, tag := range lowered {
			for _, kw := range keywords {
				if strings.Contains(tag, kw) {
					return true
				}
			}
		}
		return false
	}

	for _, rule := range audienceTagRules {
		if matchesAny(rule.keywords) {
			audiences = append(audiences, rule.label)
		}
	}

	lowerType := strings.ToLower(productType)
	for _, rule := range audienceTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowerType, kw) {
				audiences = append(audiences, rule.label)
				break
			}
		}
	}

	return dedupeCap(audiences, 4)
}

var materialKeywords = []string{"cotton", "棉", "silk", "丝", "leather", "皮", "wool", "羊毛", "organic", "有机"}

var featureRules = []keywordRule{
	{[]string{"premium", "高品质"}, "premium quality"},
	{[]string{"handmade", "手工"}, "handmade"},
	{[]string{"durable", "耐用"}, "durable"},
	{[]string{"waterproof", "防水"}, "waterproof"},
	{[]string{"lightweight", "轻便"}, "lightweight"},
	{[]string{"breathable", "透气"}, "breathable"},
}

func inferKeyFeatures(description string, tags []string) []string {
	if description == "" {
		if len(tags) > 3 {
			return tags[:3]
		}
		return tags
	}

	lowerDesc := strings.ToLower(description)
	var features []string

	for _, m := range materialKeywords {
		if strings.Contains(lowerDesc, m) {
			features = append(features, fmt.Sprintf("material: %s", m))
		}
	}
	for _, rule := range featureRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowerDesc, kw) {
				features = append(features, rule.label)
				break
			}
		}
	}

	if len(features) == 0 {
		if len(tags) > 3 {
			return tags[:3]
		}
		return tags
	}
	return dedupeCap(features, 5)
}

var seasonalityRules = []keywordRule{
	{[]string{"summer", "夏"}, "summer seller"},
	{[]string{"winter", "冬"}, "winter seller"},
	{[]string{"spring", "春"}, "spring arrival"},
	{[]string{"fall", "autumn", "秋"}, "autumn arrival"},
	{[]string{"christmas", "holiday", "圣诞"}, "holiday special"},
	{[]string{"valentine", "情人节"}, "valentine's pick"},
}

func inferSeasonality(tags []string, title string) string {
	text := strings.ToLower(strings.Join(tags, " ") + " " + title)
	for _, rule := range seasonalityRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.label
			}
		}
	}
	return ""
}

// inferCompetitivePosition is a small decision table over discount depth,
// price relative to the catalog average and variant count. Order matters:
// the first matching row wins.
func inferCompetitivePosition(price, avgPrice float64, discount, variantCount int) string {
	switch {
	case discount > 30:
		return "promotional traffic driver"
	case avgPrice > 0 && price > avgPrice*2 && variantCount > 3:
		return "flagship product"
	case avgPrice > 0 && price < avgPrice*0.6:
		return "entry-level product"
	case variantCount > 5:
		return "high-variety staple"
	default:
		return "standard catalog item"
	}
}

func dedupeCap(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, limit)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
		if len(result) == limit {
			break
		}
	}
	return result
}

func daysSince(t time.Time, now time.Time) int {
	return int(math.Ceil(math.Abs(now.Sub(t).Hours()) / 24))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// toProductDetail derives the enriched per-product view.
func toProductDetail(p *models.Product, domain string, avgPrice float64, now time.Time) models.ProductDetail {
	price := p.Price()
	prices := p.VariantPrices()
	discount := p.DiscountPercent()

	detail := models.ProductDetail{
		ID:     p.ID,
		Title:  p.Title,
		Handle: p.Handle,
		URL:    fmt.Sprintf("https://%s/products/%s", domain, p.Handle),

		Price:      price,
		PriceRange: models.PriceRange{Min: price, Max: price},

		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Tags:        append([]string(nil), p.Tags...),

		VariantCount:        len(p.Variants),
		HasMultipleVariants: len(p.Variants) > 1,

		Description:       p.BodyHTML,
		DescriptionLength: len(p.BodyHTML),

		PublishedAt: formatDate(p.EffectiveDate()),
		CreatedAt:   formatDate(p.CreatedAt),
		UpdatedAt:   formatDate(p.UpdatedAt),

		Available: p.Available(),
	}

	if compareAt := p.CompareAtPrice(); compareAt > 0 {
		detail.CompareAtPrice = &compareAt
	}
	if discount > 0 {
		detail.DiscountPercent = &discount
	}
	if len(prices) > 0 {
		minP, maxP := prices[0], prices[0]
		for _, v := range prices {
			if v < minP {
				minP = v
			}
			if v > maxP {
				maxP = v
			}
		}
		detail.PriceRange = models.PriceRange{Min: minP, Max: maxP}
	}

	detail.Images = make([]models.ImageDetail, 0, len(p.Images))
	for _, img := range p.Images {
		detail.Images = append(detail.Images, models.ImageDetail{Src: img.Src, Alt: img.Alt})
	}
	detail.ImageCount = len(p.Images)
	if len(p.Images) > 0 {
		detail.PrimaryImage = p.Images[0].Src
	}

	detail.Variants = make([]models.VariantDetail, 0, len(p.Variants))
	for _, v := range p.Variants {
		vd := models.VariantDetail{
			ID:        v.ID,
			Title:     v.Title,
			Price:     v.Price.Float(),
			SKU:       v.SKU,
			Available: v.Available,
			Option1:   v.Option1,
			Option2:   v.Option2,
			Option3:   v.Option3,
		}
		if v.CompareAtPrice != nil {
			compareAt := v.CompareAtPrice.Float()
			vd.CompareAtPrice = &compareAt
		}
		detail.Variants = append(detail.Variants, vd)
	}

	detail.Options = append([]models.ProductOption(nil), p.Options...)

	if d := p.EffectiveDate(); d != nil {
		detail.DaysSincePublished = daysSince(*d, now)
	}

	category := p.ProductType
	if category == "" {
		category = "uncategorized"
	}
	detail.Insights = models.ProductInsights{
		PriceTier:           inferPriceTier(price, avgPrice),
		TargetAudience:      inferTargetAudience(p.Tags, price, avgPrice, p.ProductType),
		ProductCategory:     category,
		Seasonality:         inferSeasonality(p.Tags, p.Title),
		KeyFeatures:         inferKeyFeatures(p.BodyHTML, p.Tags),
		CompetitivePosition: inferCompetitivePosition(price, avgPrice, discount, len(p.Variants)),
	}

	return detail
}
