// internal/report/generator_test.go
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shoplens/shoplens-backend/internal/models"
)

type fakeGenerator struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (f *fakeGenerator) GenerateText(_ context.Context, model, _ string) (string, error) {
	f.calls = append(f.calls, model)
	if err, ok := f.errs[model]; ok {
		return "", err
	}
	return f.responses[model], nil
}

func newTestGenerator(fake *fakeGenerator) *Generator {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Generator{
		gen:    fake,
		log:    logger,
		models: defaultModels,
		now:    func() time.Time { return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC) },
	}
}

const minimalReportJSON = `{
  "executiveSummary": {
    "headline": "A focused outdoor gear store with healthy pricing.",
    "keyMetrics": [{"label": "Products", "value": "120", "trend": "neutral"}],
    "verdict": "Solid fundamentals with room to grow marketing reach.",
    "confidenceScore": 85
  },
  "marketPosition": {"niche": "outdoor gear", "positioning": "mid-range", "targetMarketSize": "large", "competitiveAdvantages": ["quality"], "marketTrends": ["growth"]},
  "productStrategy": {"overallScore": 75, "skuDepthRating": 70, "pricingStrategy": {"type": "value", "analysis": "fair", "recommendations": ["bundle"]}, "productMixInsights": ["deep"], "gapAnalysis": ["apparel"]},
  "operationsAssessment": {"overallScore": 70, "uxScore": 75, "trustScore": 65, "conversionScore": 70, "strengths": ["search"], "weaknesses": ["chat"], "quickWins": ["reviews"]},
  "marketingAnalysis": {"overallScore": 65, "channels": [{"name": "instagram", "status": "active", "score": 70}], "contentStrategy": "ok", "brandStrength": 70, "recommendations": ["email"]},
  "swotAnalysis": {"strengths": ["brand"], "weaknesses": ["reach"], "opportunities": ["expansion"], "threats": ["competition"]},
  "strategicRecommendations": [
    {"title": "Launch email flows", "description": "Set up lifecycle email.", "impact": "high", "effort": "low", "priority": 1, "category": "marketing"}
  ],
  "competitorAnalysis": {
    "overview": {"totalCompetitorsAnalyzed": 3, "marketConcentration": "medium", "competitiveIntensity": "moderate", "analysisConfidence": 80, "dataSourceSummary": "inferred"},
    "marketLandscape": {"leaderBrands": ["big outdoor brands"], "emergingBrands": ["DTC upstarts"], "nichePlayersCount": 5, "marketTrend": "growing"},
    "positioningMap": {"xAxis": "price", "yAxis": "quality", "currentPosition": {"x": "medium", "y": "medium"}, "recommendedPosition": {"x": "medium", "y": "high"}, "positioningGap": "quality story"},
    "competitiveAdvantage": {"currentAdvantages": ["catalog"], "sustainableAdvantages": ["brand"], "vulnerabilities": ["ads"], "recommendedFocus": ["content"]},
    "competitors": [{"name": "same-category DTC brand", "category": "same-category", "description": "similar", "confidenceLevel": 75, "dataSource": "inferred", "positioning": {"targetMarket": "same", "pricePosition": "similar", "brandPosition": "similar"}, "metrics": {"estimatedProductCount": "100-500", "estimatedPriceRange": "$20-100", "estimatedMarketShare": "unknown", "strengthScore": 70}, "comparison": {"advantages": ["reach"], "disadvantages": ["depth"], "differentiators": ["price"]}, "strategicInsights": {"whatToLearn": ["content"], "whatToAvoid": ["discounting"], "opportunities": ["niche"]}}]
  }
}`

func sampleContext() *models.AIContext {
	return &models.AIContext{
		StoreMeta: models.StoreMeta{Title: "Aurora Supply Co", Domain: "aurora.example"},
		Stats: models.PriceStats{
			TotalProducts: 120,
			AveragePrice:  54.2,
			MedianPrice:   49.0,
			MinPrice:      12,
			MaxPrice:      240,
			PriceCurrency: "USD",
		},
		TechAnalysis: models.TechAnalysis{Language: "en", Currency: "USD", PaymentMethods: []string{"Visa", "PayPal"}},
		SocialLinks:  models.SocialLinks{Instagram: "https://instagram.com/aurora"},
		SampleProducts: []models.ProductDetail{
			{Title: "Trail Jacket", Price: 89, Vendor: "Aurora", ProductType: "Outerwear"},
		},
		TopTags: []models.TagCount{{Tag: "outdoor", Count: 50}},
	}
}

func TestGenerateParsesFirstModelResponse(t *testing.T) {
	fake := &fakeGenerator{responses: map[string]string{"gemini-2.0-flash": minimalReportJSON}}
	gen := newTestGenerator(fake)

	report, err := gen.Generate(context.Background(), sampleContext())
	require.NoError(t, err)
	assert.Equal(t, []string{"gemini-2.0-flash"}, fake.calls)
	assert.Equal(t, "A focused outdoor gear store with healthy pricing.", report.ExecutiveSummary.Headline)
	assert.Equal(t, 85, report.ExecutiveSummary.ConfidenceScore)
	assert.Equal(t, "mid-range", report.MarketPosition.Positioning)
	assert.Equal(t, time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC), report.GeneratedAt)
}

func TestGenerateStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + minimalReportJSON + "\n```"
	fake := &fakeGenerator{responses: map[string]string{"gemini-2.0-flash": fenced}}
	gen := newTestGenerator(fake)

	report, err := gen.Generate(context.Background(), sampleContext())
	require.NoError(t, err)
	assert.NotEmpty(t, report.ExecutiveSummary.Headline)
}

func TestGenerateFallsBackOnModelNotFound(t *testing.T) {
	fake := &fakeGenerator{
		errs: map[string]error{
			"gemini-2.0-flash":       genai.APIError{Code: http.StatusNotFound, Message: "model not found"},
			"gemini-1.5-flash-latest": errors.New("404 model not found"),
		},
		responses: map[string]string{"gemini-1.5-flash-001": minimalReportJSON},
	}
	gen := newTestGenerator(fake)

	report, err := gen.Generate(context.Background(), sampleContext())
	require.NoError(t, err)
	assert.Equal(t, []string{"gemini-2.0-flash", "gemini-1.5-flash-latest", "gemini-1.5-flash-001"}, fake.calls)
	assert.NotNil(t, report)
}

func TestGenerateStopsOnTerminalError(t *testing.T) {
	fake := &fakeGenerator{
		errs: map[string]error{
			"gemini-2.0-flash": genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED", Message: "quota exceeded"},
		},
		responses: map[string]string{"gemini-1.5-flash-latest": minimalReportJSON},
	}
	gen := newTestGenerator(fake)

	_, err := gen.Generate(context.Background(), sampleContext())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExhausted)
	assert.Equal(t, []string{"gemini-2.0-flash"}, fake.calls)
}

func TestGenerateErrorClassification(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"invalid key", genai.APIError{Code: http.StatusUnauthorized, Message: "API key not valid"}, ErrInvalidAPIKey},
		{"key message", errors.New("the API key is broken"), ErrInvalidAPIKey},
		{"quota", errors.New("RESOURCE_EXHAUSTED: quota exceeded"), ErrQuotaExhausted},
		{"rate", genai.APIError{Code: http.StatusTooManyRequests, Message: "rate limit"}, ErrRateLimited},
		{"safety", errors.New("response blocked by safety settings"), ErrContentBlocked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeGenerator{errs: map[string]error{"gemini-2.0-flash": tc.err}}
			gen := newTestGenerator(fake)

			_, err := gen.Generate(context.Background(), sampleContext())
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGenerateRejectsMalformedJSON(t *testing.T) {
	fake := &fakeGenerator{responses: map[string]string{"gemini-2.0-flash": "this is not JSON"}}
	gen := newTestGenerator(fake)

	_, err := gen.Generate(context.Background(), sampleContext())
	assert.ErrorIs(t, err, ErrInvalidReportJSON)
}

func TestGenerateRejectsIncompleteReport(t *testing.T) {
	fake := &fakeGenerator{responses: map[string]string{"gemini-2.0-flash": `{"executiveSummary": {"headline": "x"}}`}}
	gen := newTestGenerator(fake)

	_, err := gen.Generate(context.Background(), sampleContext())
	assert.ErrorIs(t, err, ErrInvalidReportJSON)
}

func TestGenerateRejectsOutOfRangeScores(t *testing.T) {
	bad := strings.Replace(minimalReportJSON, `"confidenceScore": 85`, `"confidenceScore": 140`, 1)
	fake := &fakeGenerator{responses: map[string]string{"gemini-2.0-flash": bad}}
	gen := newTestGenerator(fake)

	_, err := gen.Generate(context.Background(), sampleContext())
	assert.ErrorIs(t, err, ErrInvalidReportJSON)
}

func TestGenerateEmptyResponse(t *testing.T) {
	fake := &fakeGenerator{responses: map[string]string{"gemini-2.0-flash": "   "}}
	gen := newTestGenerator(fake)

	_, err := gen.Generate(context.Background(), sampleContext())
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestTranslate(t *testing.T) {
	fake := &fakeGenerator{responses: map[string]string{"gemini-2.0-flash": " 高品质防水夹克 "}}
	gen := newTestGenerator(fake)

	out, err := gen.Translate(context.Background(), "High quality waterproof jacket")
	require.NoError(t, err)
	assert.Equal(t, "高品质防水夹克", out)

	_, err = gen.Translate(context.Background(), "   ")
	assert.Error(t, err)
}

func TestBuildPromptContainsCoreData(t *testing.T) {
	prompt := buildPrompt(sampleContext())
	assert.Contains(t, prompt, "Aurora Supply Co")
	assert.Contains(t, prompt, "aurora.example")
	assert.Contains(t, prompt, "Trail Jacket")
	assert.Contains(t, prompt, "$54.20")
	assert.Contains(t, prompt, "instagram")
	assert.Contains(t, prompt, "executiveSummary")
	assert.Contains(t, prompt, "emit JSON only")
	assert.NotContains(t, prompt, "%!")
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}

func TestSampleLineFormatting(t *testing.T) {
	compareAt := 120.0
	ctx := sampleContext()
	ctx.SampleProducts = []models.ProductDetail{
		{Title: "Trail Jacket", Price: 89, CompareAtPrice: &compareAt, Vendor: "Aurora", ProductType: "Outerwear"},
	}
	prompt := buildPrompt(ctx)
	assert.Contains(t, prompt, fmt.Sprintf("Trail Jacket | $%.2f (was $%.2f) | Aurora | Outerwear", 89.0, 120.0))
}
