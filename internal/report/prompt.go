// internal/report/prompt.go
package report

import (
	"fmt"
	"strings"

	"github.com/shoplens/shoplens-backend/internal/models"
)

const (
	promptSampleProducts = 8
	promptVendors        = 5
	promptTypes          = 5
	promptTags           = 15
)

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func socialPresence(links models.SocialLinks) string {
	var platforms []string
	for _, entry := range []struct {
		name string
		url  string
	}{
		{"facebook", links.Facebook},
		{"instagram", links.Instagram},
		{"twitter", links.Twitter},
		{"youtube", links.YouTube},
		{"tiktok", links.TikTok},
		{"pinterest", links.Pinterest},
		{"linkedin", links.LinkedIn},
	} {
		if entry.url != "" {
			platforms = append(platforms, entry.name)
		}
	}
	if len(platforms) == 0 {
		return "none"
	}
	return strings.Join(platforms, ", ")
}

// buildPrompt renders the condensed store snapshot into the analysis
// instruction. The JSON skeleton spells out every field the response must
// carry; the generator rejects responses that do not parse into it.
func buildPrompt(ctx *models.AIContext) string {
	var sampleLines []string
	for i, p := range ctx.SampleProducts {
		if i == promptSampleProducts {
			break
		}
		line := fmt.Sprintf("%s | $%.2f", p.Title, p.Price)
		if p.CompareAtPrice != nil {
			line += fmt.Sprintf(" (was $%.2f)", *p.CompareAtPrice)
		}
		line += fmt.Sprintf(" | %s | %s", orUnknown(p.Vendor), orUnknown(p.ProductType))
		sampleLines = append(sampleLines, line)
	}

	var vendorParts []string
	for i, v := range ctx.VendorAnalysis {
		if i == promptVendors {
			break
		}
		vendorParts = append(vendorParts, fmt.Sprintf("%s: %d products, avg $%.2f", v.Vendor, v.ProductCount, v.AvgPrice))
	}

	var typeParts []string
	for i, t := range ctx.ProductTypeAnalysis {
		if i == promptTypes {
			break
		}
		typeParts = append(typeParts, fmt.Sprintf("%s: %d products", t.Type, t.Count))
	}

	var tags []string
	for i, t := range ctx.TopTags {
		if i == promptTags {
			break
		}
		tags = append(tags, t.Tag)
	}

	var b strings.Builder
	b.WriteString("You are a senior e-commerce strategy consultant. Based on the store data below, produce a structured business analysis report.\n\n")

	fmt.Fprintf(&b, `# Store data

Identity:
- Name: %s
- Domain: %s
- Description: %s
- Language: %s, currency: %s

Catalog:
- Products: %d, SKUs: %d
- Average price: $%.2f, median: $%.2f
- Price range: $%.2f - $%.2f
- Discounted products: %d (%.1f%%), average discount: %.1f%%
- In stock: %d (%.1f%%)

Vendors: %s
Product types: %s
Top tags: %s

Site capabilities:
- Theme: %s
- Reviews: %s
- Newsletter: %s
- Live chat: %s
- Payment methods: %s
- Social media: %s

Site structure:
- About page: %s
- Blog: %s
- FAQ: %s
- Return policy: %s

Health scores:
- Overall: %d/100
- SEO: %d/100
- UX: %d/100
- Trust: %d/100
- Marketing: %d/100

Product sample:
%s
`,
		ctx.StoreMeta.Title,
		ctx.StoreMeta.Domain,
		orUnknown(ctx.StoreMeta.Description),
		ctx.TechAnalysis.Language,
		ctx.TechAnalysis.Currency,
		ctx.Stats.TotalProducts,
		ctx.VariantAnalysis.TotalVariants,
		ctx.Stats.AveragePrice,
		ctx.Stats.MedianPrice,
		ctx.Stats.MinPrice,
		ctx.Stats.MaxPrice,
		ctx.DiscountAnalysis.TotalProductsWithDiscount,
		ctx.DiscountAnalysis.DiscountPercentage,
		ctx.DiscountAnalysis.AverageDiscountPercent,
		ctx.InventoryAnalysis.InStockProducts,
		ctx.InventoryAnalysis.InStockPercentage,
		strings.Join(vendorParts, "; "),
		strings.Join(typeParts, "; "),
		strings.Join(tags, ", "),
		orUnknown(ctx.TechAnalysis.ShopifyTheme),
		yesNo(ctx.TechAnalysis.HasReviews),
		yesNo(ctx.TechAnalysis.HasNewsletter),
		yesNo(ctx.TechAnalysis.HasChatWidget),
		orUnknown(strings.Join(ctx.TechAnalysis.PaymentMethods, ", ")),
		socialPresence(ctx.SocialLinks),
		yesNo(ctx.SiteStructure.HasAboutPage),
		yesNo(ctx.SiteStructure.HasBlogSection),
		yesNo(ctx.SiteStructure.HasFAQPage),
		yesNo(ctx.SiteStructure.HasReturnPolicy),
		ctx.WebsiteHealth.Overall,
		ctx.WebsiteHealth.SEO,
		ctx.WebsiteHealth.UX,
		ctx.WebsiteHealth.Trust,
		ctx.WebsiteHealth.Marketing,
		strings.Join(sampleLines, "\n"),
	)

	b.WriteString(reportSkeleton)
	b.WriteString(reportRules)
	return b.String()
}

const reportSkeleton = `
---

Output the analysis strictly in the following JSON shape (emit JSON only, no other text):

{
  "executiveSummary": {
    "headline": "one sentence capturing the store's core character and market position",
    "keyMetrics": [
      {"label": "metric name", "value": "value", "trend": "up/down/neutral"},
      {"label": "metric name", "value": "value", "trend": "up/down/neutral"},
      {"label": "metric name", "value": "value", "trend": "up/down/neutral"},
      {"label": "metric name", "value": "value", "trend": "up/down/neutral"}
    ],
    "verdict": "2-3 sentence overall assessment and key finding",
    "confidenceScore": 85
  },
  "marketPosition": {
    "niche": "precise niche definition",
    "positioning": "budget/mid-range/premium/luxury",
    "targetMarketSize": "target market size description",
    "competitiveAdvantages": ["advantage 1", "advantage 2", "advantage 3"],
    "marketTrends": ["trend 1", "trend 2", "trend 3"]
  },
  "userPersona": {
    "overview": {
      "totalSegments": 2,
      "primarySegmentShare": "estimated share of the main segment, e.g. 60%",
      "segmentationBasis": "explanation of the segmentation basis",
      "confidenceLevel": 85
    },
    "primaryPersona": {
      "name": "persona nickname",
      "avatar": "a single emoji",
      "tagline": "one-line persona description",
      "demographics": {"ageRange": "", "gender": "", "income": "", "education": "", "occupation": "", "location": "", "familyStatus": ""},
      "lifestyle": {"dailyRoutine": "", "hobbies": [""], "socialActivities": [""], "mediaConsumption": [""], "technologyUsage": ""},
      "consumptionProfile": {"spendingPower": "high/upper-mid/mid/lower-mid/low", "pricesSensitivity": "high/medium/low", "brandLoyalty": "high/medium/low", "purchaseFrequency": "", "averageOrderValue": "", "preferredPaymentMethods": [""]},
      "psychographics": {"coreValues": [""], "personality": [""], "aspirations": [""], "fears": [""]},
      "painPointsAndNeeds": {"primaryPainPoints": [{"point": "", "intensity": "high/medium/low"}], "unmetNeeds": [""], "desiredOutcomes": [""]},
      "purchaseJourney": {"awarenessChannels": [""], "researchBehavior": "", "evaluationCriteria": [""], "purchaseTriggers": [""], "postPurchaseBehavior": ""},
      "digitalBehavior": {"preferredPlatforms": [""], "contentPreferences": [""], "influencerTypes": [""], "onlineShoppingHabits": "", "socialMediaUsage": [{"platform": "", "frequency": "", "purpose": ""}]},
      "marketingRecommendations": {"bestChannels": [""], "messagingTone": "", "contentTypes": [""], "promotionTypes": [""], "bestTimeToReach": ""}
    },
    "secondaryPersona": { "same shape as primaryPersona": "" },
    "segmentComparison": [
      {"dimension": "comparison dimension", "primaryValue": "", "secondaryValue": ""}
    ],
    "marketSizing": {"estimatedTAM": "", "estimatedSAM": "", "estimatedSOM": "", "growthPotential": ""},
    "acquisitionStrategy": {
      "recommendedChannels": [{"channel": "", "priority": "high/medium/low", "reason": ""}],
      "estimatedCAC": "",
      "retentionStrategies": [""],
      "ltvOptimization": [""]
    }
  },
  "productStrategy": {
    "overallScore": 75,
    "skuDepthRating": 70,
    "pricingStrategy": {"type": "", "analysis": "", "recommendations": [""]},
    "productMixInsights": [""],
    "gapAnalysis": [""]
  },
  "operationsAssessment": {
    "overallScore": 70,
    "uxScore": 75,
    "trustScore": 65,
    "conversionScore": 70,
    "strengths": [""],
    "weaknesses": [""],
    "quickWins": [""]
  },
  "marketingAnalysis": {
    "overallScore": 65,
    "channels": [{"name": "", "status": "active/inactive/potential", "score": 70}],
    "contentStrategy": "",
    "brandStrength": 70,
    "recommendations": [""]
  },
  "swotAnalysis": {
    "strengths": [""], "weaknesses": [""], "opportunities": [""], "threats": [""]
  },
  "strategicRecommendations": [
    {"title": "", "description": "", "impact": "high/medium/low", "effort": "high/medium/low", "priority": 1, "category": ""}
  ],
  "competitorAnalysis": {
    "overview": {"totalCompetitorsAnalyzed": 3, "marketConcentration": "high/medium/low", "competitiveIntensity": "intense/moderate/mild", "analysisConfidence": 85, "dataSourceSummary": ""},
    "marketLandscape": {"leaderBrands": [""], "emergingBrands": [""], "nichePlayersCount": 5, "marketTrend": ""},
    "positioningMap": {"xAxis": "price", "yAxis": "brand/quality", "currentPosition": {"x": "low/medium/high", "y": "low/medium/high"}, "recommendedPosition": {"x": "low/medium/high", "y": "low/medium/high"}, "positioningGap": ""},
    "competitiveAdvantage": {"currentAdvantages": [""], "sustainableAdvantages": [""], "vulnerabilities": [""], "recommendedFocus": [""]},
    "competitors": [
      {
        "name": "competitor archetype inferred from the category",
        "category": "same-category/substitute/potential",
        "description": "",
        "confidenceLevel": 85,
        "dataSource": "inferred from product category, price range and target market data",
        "positioning": {"targetMarket": "", "pricePosition": "lower/similar/higher", "brandPosition": ""},
        "metrics": {"estimatedProductCount": "", "estimatedPriceRange": "", "estimatedMarketShare": "", "strengthScore": 75},
        "comparison": {"advantages": [""], "disadvantages": [""], "differentiators": [""]},
        "strategicInsights": {"whatToLearn": [""], "whatToAvoid": [""], "opportunities": [""]}
      }
    ]
  }
}
`

const reportRules = `
Rules:
1. Every claim must be grounded in the data provided.
2. Scores range 0-100 and must be objective.
3. Recommendations must be concrete and actionable, never generic.
4. strategicRecommendations must contain at least 5 entries ordered by priority.
5. Output JSON only, with no surrounding text or explanation.

Competitor analysis guardrails:
6. Ground competitor inference in real evidence only: the product types, the price range and pricing strategy, the inferred customer profile, and the tag keywords.
7. Name competitors by archetype rather than inventing specific brands, e.g. "same-category DTC brand", "traditional retail giant", "vertical marketplace".
8. Mark every competitor metric as an estimate, e.g. "estimated product count: 100-500".
9. Report confidenceLevel honestly: 85-100 directly supported by data, 70-84 reasonable industry inference, 60-69 speculative; never output anything below 60.
10. dataSource must state the basis of the inference.
11. The competitors array must contain at least 3 entries ordered by relevance.
`
