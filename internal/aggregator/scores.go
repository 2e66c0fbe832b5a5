// internal/aggregator/scores.go
package aggregator

import (
	"fmt"
	"math"
	"strings"

	"github.com/shoplens/shoplens-backend/internal/models"
)

// Static benchmark values shown next to each rubric for comparison. They
// are reference constants, not derived from the analyzed data.
const (
	productBenchmark    = 70
	operationsBenchmark = 65
	marketingBenchmark  = 60
)

// scoreCheck is one rubric row before roll-up: a named predicate outcome
// with its measured value and threshold, so every score stays auditable.
type scoreCheck struct {
	label     string
	passed    bool
	measured  string
	threshold string
	weight    int
	rationale string
}

func buildRubric(benchmark int, checks []scoreCheck) models.Rubric {
	items := make([]models.ScoreItem, 0, len(checks))
	earned, total := 0, 0
	for _, c := range checks {
		total += c.weight
		if c.passed {
			earned += c.weight
		}
		items = append(items, models.ScoreItem{
			Label:     c.label,
			Passed:    c.passed,
			Measured:  c.measured,
			Threshold: c.threshold,
			Weight:    c.weight,
			Rationale: c.rationale,
		})
	}
	overall := 0
	if total > 0 {
		overall = int(math.Round(float64(earned) / float64(total) * 100))
	}
	return models.Rubric{Overall: overall, Benchmark: benchmark, Items: items}
}

// calculateStoreScores evaluates the three weighted rubrics over aggregates
// already computed for the store. Every item reports the measured value
// alongside its pass threshold.
func calculateStoreScores(data *models.AggregatedData, site *models.ScrapeResult) models.StoreScores {
	stats := data.Stats
	discounts := data.DiscountAnalysis
	variants := data.VariantAnalysis
	images := data.ImageAnalysis
	timeline := data.TimelineAnalysis
	inventory := data.InventoryAnalysis
	tech := site.TechAnalysis
	structure := site.SiteStructure
	social := site.SocialLinks

	nonEmptyBuckets := 0
	for _, b := range data.PriceDistribution {
		if b.Count > 0 {
			nonEmptyBuckets++
		}
	}

	product := buildRubric(productBenchmark, []scoreCheck{
		{
			label:     "Catalog breadth",
			passed:    stats.TotalProducts >= 50,
			measured:  fmt.Sprintf("%d products", stats.TotalProducts),
			threshold: ">= 50 products",
			weight:    15,
			rationale: "A catalog below fifty items limits discovery and repeat purchases.",
		},
		{
			label:     "SKU depth",
			passed:    variants.AvgVariantsPerProduct >= 2,
			measured:  fmt.Sprintf("%.1f variants/product", variants.AvgVariantsPerProduct),
			threshold: ">= 2 variants/product",
			weight:    15,
			rationale: "Size and color options broaden the addressable audience per listing.",
		},
		{
			label:     "Price architecture",
			passed:    nonEmptyBuckets >= 3,
			measured:  fmt.Sprintf("%d of 5 price bands occupied", nonEmptyBuckets),
			threshold: ">= 3 price bands",
			weight:    10,
			rationale: "Spread across price bands captures entry, core and premium demand.",
		},
		{
			label:     "Merchandising imagery",
			passed:    images.AvgImagesPerProduct >= 3,
			measured:  fmt.Sprintf("%.1f images/product", images.AvgImagesPerProduct),
			threshold: ">= 3 images/product",
			weight:    15,
			rationale: "Multiple photos per listing are table stakes for conversion.",
		},
		{
			label:     "Availability",
			passed:    inventory.InStockPercentage >= 80,
			measured:  formatPercent(inventory.InStockPercentage),
			threshold: ">= 80% in stock",
			weight:    20,
			rationale: "Out-of-stock listings waste traffic and depress search ranking.",
		},
		{
			label:     "Publishing cadence",
			passed:    timeline.AvgProductsPerMonth >= 1,
			measured:  fmt.Sprintf("%.1f products/month", timeline.AvgProductsPerMonth),
			threshold: ">= 1 product/month",
			weight:    10,
			rationale: "Regular new arrivals keep returning visitors engaged.",
		},
		{
			label:     "Discount discipline",
			passed:    discounts.DiscountPercentage <= 50,
			measured:  formatPercent(discounts.DiscountPercentage) + " of catalog discounted",
			threshold: "<= 50% of catalog",
			weight:    15,
			rationale: "Blanket markdowns erode margin and train buyers to wait for sales.",
		},
	})

	operations := buildRubric(operationsBenchmark, []scoreCheck{
		{
			label:     "On-site search",
			passed:    tech.HasSearch,
			measured:  presence(tech.HasSearch),
			threshold: "present",
			weight:    15,
			rationale: "Shoppers who search convert at a multiple of those who browse.",
		},
		{
			label:     "Cart affordance",
			passed:    tech.HasCart,
			measured:  presence(tech.HasCart),
			threshold: "present",
			weight:    15,
			rationale: "A persistent cart entry point is basic purchase plumbing.",
		},
		{
			label:     "About page",
			passed:    structure.HasAboutPage,
			measured:  presence(structure.HasAboutPage),
			threshold: "present",
			weight:    10,
			rationale: "Brand story pages build first-visit trust.",
		},
		{
			label:     "Contact page",
			passed:    structure.HasContactPage,
			measured:  presence(structure.HasContactPage),
			threshold: "present",
			weight:    10,
			rationale: "A reachable merchant reduces pre-purchase hesitation.",
		},
		{
			label:     "FAQ or help section",
			passed:    structure.HasFAQPage,
			measured:  presence(structure.HasFAQPage),
			threshold: "present",
			weight:    10,
			rationale: "Self-serve answers cut support load and cart abandonment.",
		},
		{
			label:     "Return policy",
			passed:    structure.HasReturnPolicy,
			measured:  presence(structure.HasReturnPolicy),
			threshold: "present",
			weight:    15,
			rationale: "A visible returns promise is among the strongest conversion levers.",
		},
		{
			label:     "Shipping policy",
			passed:    structure.HasShippingPolicy,
			measured:  presence(structure.HasShippingPolicy),
			threshold: "present",
			weight:    15,
			rationale: "Unclear delivery expectations are a leading abandonment cause.",
		},
		{
			label:     "Image accessibility",
			passed:    images.AltTextPercentage >= 50,
			measured:  formatPercent(images.AltTextPercentage) + " products with alt text",
			threshold: ">= 50%",
			weight:    10,
			rationale: "Alt text serves accessibility and image search simultaneously.",
		},
	})

	marketingApps := 0
	for _, app := range tech.ThirdPartyApps {
		switch {
		case strings.Contains(strings.ToLower(app), "klaviyo"),
			strings.Contains(strings.ToLower(app), "omnisend"),
			strings.Contains(strings.ToLower(app), "privy"),
			strings.Contains(strings.ToLower(app), "pixel"),
			strings.Contains(strings.ToLower(app), "analytics"):
			marketingApps++
		}
	}

	marketing := buildRubric(marketingBenchmark, []scoreCheck{
		{
			label:     "Social media presence",
			passed:    social.Count() >= 2,
			measured:  fmt.Sprintf("%d platforms linked", social.Count()),
			threshold: ">= 2 platforms",
			weight:    20,
			rationale: "Active social profiles are the cheapest ongoing acquisition channel.",
		},
		{
			label:     "Newsletter capture",
			passed:    tech.HasNewsletter,
			measured:  presence(tech.HasNewsletter),
			threshold: "present",
			weight:    15,
			rationale: "Owned email lists are immune to ad-platform price swings.",
		},
		{
			label:     "Content marketing",
			passed:    structure.HasBlogSection,
			measured:  presence(structure.HasBlogSection),
			threshold: "present",
			weight:    15,
			rationale: "A blog compounds organic search traffic over time.",
		},
		{
			label:     "Social proof",
			passed:    tech.HasReviews,
			measured:  presence(tech.HasReviews),
			threshold: "present",
			weight:    20,
			rationale: "Review widgets lift conversion more than any single design change.",
		},
		{
			label:     "Live support",
			passed:    tech.HasChatWidget,
			measured:  presence(tech.HasChatWidget),
			threshold: "present",
			weight:    10,
			rationale: "Chat rescues high-intent sessions stuck on a question.",
		},
		{
			label:     "Payment flexibility",
			passed:    len(tech.PaymentMethods) >= 3,
			measured:  fmt.Sprintf("%d payment methods", len(tech.PaymentMethods)),
			threshold: ">= 3 methods",
			weight:    10,
			rationale: "Each missing wallet option is a slice of abandoned checkouts.",
		},
		{
			label:     "Marketing tooling",
			passed:    marketingApps >= 1,
			measured:  fmt.Sprintf("%d marketing apps detected", marketingApps),
			threshold: ">= 1 app",
			weight:    10,
			rationale: "Pixel or email tooling signals the store measures its funnel.",
		},
	})

	return models.StoreScores{
		Product:    product,
		Operations: operations,
		Marketing:  marketing,
	}
}

func presence(v bool) string {
	if v {
		return "present"
	}
	return "absent"
}
