// internal/aggregator/health.go
package aggregator

import (
	"math"

	"github.com/shoplens/shoplens-backend/internal/models"
)

// calculateWebsiteHealth scores the storefront against a fixed weighted
// checklist of best-practice indicators, rolled up per category and overall.
func calculateWebsiteHealth(
	seo models.SEOAnalysis,
	tech models.TechAnalysis,
	structure models.SiteStructure,
	social models.SocialLinks,
	images models.ImageAnalysis,
) models.WebsiteHealthScore {
	details := []models.HealthCheck{
		{Category: "SEO", Item: "Meta Description", Passed: seo.HasMetaDescription, Weight: 5},
		{Category: "SEO", Item: "Title Tag", Passed: seo.HasTitleTag, Weight: 5},
		{Category: "SEO", Item: "Open Graph Tags", Passed: seo.HasOGTags, Weight: 5},
		{Category: "SEO", Item: "Structured Data", Passed: seo.HasStructuredData, Weight: 5},
		{Category: "SEO", Item: "Sitemap", Passed: seo.Sitemap, Weight: 5},

		{Category: "UX", Item: "Search Function", Passed: tech.HasSearch, Weight: 5},
		{Category: "UX", Item: "Shopping Cart", Passed: tech.HasCart, Weight: 5},
		{Category: "UX", Item: "About Page", Passed: structure.HasAboutPage, Weight: 5},
		{Category: "UX", Item: "Contact Page", Passed: structure.HasContactPage, Weight: 5},
		{Category: "UX", Item: "FAQ Section", Passed: structure.HasFAQPage, Weight: 5},

		{Category: "Trust", Item: "Customer Reviews", Passed: tech.HasReviews, Weight: 8},
		{Category: "Trust", Item: "Return Policy", Passed: structure.HasReturnPolicy, Weight: 6},
		{Category: "Trust", Item: "Shipping Policy", Passed: structure.HasShippingPolicy, Weight: 6},
		{Category: "Trust", Item: "Image Alt Text", Passed: images.AltTextPercentage > 50, Weight: 5},

		{Category: "Marketing", Item: "Newsletter Signup", Passed: tech.HasNewsletter, Weight: 5},
		{Category: "Marketing", Item: "Social Media Presence", Passed: social.Count() >= 2, Weight: 5},
		{Category: "Marketing", Item: "Blog Section", Passed: structure.HasBlogSection, Weight: 5},
		{Category: "Marketing", Item: "Chat Support", Passed: tech.HasChatWidget, Weight: 5},
		{Category: "Marketing", Item: "Multiple Payment Options", Passed: len(tech.PaymentMethods) >= 3, Weight: 5},
	}

	type tally struct{ earned, total int }
	categories := make(map[string]*tally)
	overall := tally{}
	for _, check := range details {
		t, ok := categories[check.Category]
		if !ok {
			t = &tally{}
			categories[check.Category] = t
		}
		t.total += check.Weight
		overall.total += check.Weight
		if check.Passed {
			t.earned += check.Weight
			overall.earned += check.Weight
		}
	}

	score := func(t *tally) int {
		if t == nil || t.total == 0 {
			return 0
		}
		return int(math.Round(float64(t.earned) / float64(t.total) * 100))
	}

	return models.WebsiteHealthScore{
		Overall:   score(&overall),
		SEO:       score(categories["SEO"]),
		UX:        score(categories["UX"]),
		Trust:     score(categories["Trust"]),
		Marketing: score(categories["Marketing"]),
		Details:   details,
	}
}
