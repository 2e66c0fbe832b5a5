// internal/report/generator.go
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/shoplens/shoplens-backend/internal/models"
)

// Models tried in order. The walk only advances past a model when the API
// reports it as unavailable; every other failure is terminal.
var defaultModels = []string{
	"gemini-2.0-flash",
	"gemini-1.5-flash-latest",
	"gemini-1.5-flash-001",
	"gemini-pro",
}

var (
	// ErrMissingAPIKey means no Gemini API key was configured.
	ErrMissingAPIKey = errors.New("gemini api key is not configured")
	// ErrInvalidAPIKey means the configured key was rejected upstream.
	ErrInvalidAPIKey = errors.New("gemini api key is invalid or expired")
	// ErrQuotaExhausted means the API quota is used up.
	ErrQuotaExhausted = errors.New("gemini api quota exhausted")
	// ErrRateLimited means the API asked us to slow down.
	ErrRateLimited = errors.New("gemini api rate limit exceeded")
	// ErrContentBlocked means the safety filter rejected the content.
	ErrContentBlocked = errors.New("content blocked by the safety policy")
	// ErrInvalidReportJSON means the model's answer could not be parsed.
	ErrInvalidReportJSON = errors.New("model returned malformed report JSON")
	// ErrEmptyResponse means the model answered with no text at all.
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// textGenerator is the single seam to the Gemini API, kept narrow so tests
// can substitute a fake.
type textGenerator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
}

func (g *genaiGenerator) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.3),
		TopP:            genai.Ptr[float32](0.8),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 8192,
	}
	result, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// Generator turns an aggregated store snapshot into a structured report by
// prompting Gemini, walking a model fallback chain.
type Generator struct {
	gen    textGenerator
	log    *logrus.Logger
	models []string
	now    func() time.Time
}

func NewGenerator(apiKey string, logger *logrus.Logger) (*Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Generator{
		gen:    &genaiGenerator{client: client},
		log:    logger,
		models: defaultModels,
		now:    time.Now,
	}, nil
}

// Generate prompts the model chain until one returns a parseable report.
func (g *Generator) Generate(ctx context.Context, aiCtx *models.AIContext) (*models.AIReport, error) {
	prompt := buildPrompt(aiCtx)

	var lastErr error
	for _, model := range g.models {
		g.log.WithField("model", model).Info("Requesting analysis report")

		text, err := g.gen.GenerateText(ctx, model, prompt)
		if err != nil {
			lastErr = err
			if modelUnavailable(err) {
				g.log.WithError(err).WithField("model", model).Warn("Model unavailable, trying next")
				continue
			}
			break
		}
		if strings.TrimSpace(text) == "" {
			lastErr = ErrEmptyResponse
			break
		}

		report, err := g.parseReport(text)
		if err != nil {
			g.log.WithError(err).WithField("model", model).Error("Failed to parse model response")
			return nil, err
		}
		g.log.WithField("model", model).Info("Report generated")
		return report, nil
	}

	return nil, classifyAPIError(lastErr)
}

// Translate renders English product copy into Chinese, preserving Markdown.
// It walks the same model fallback chain as Generate.
func (g *Generator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("nothing to translate")
	}

	prompt := fmt.Sprintf(`You are a professional e-commerce translator. Translate the following English product copy into Chinese.

Requirements:
1. Preserve the original Markdown structure (headings, lists, bold text, links).
2. The translation must read naturally in Chinese e-commerce style.
3. Keep technical terms accurate.
4. Output only the translated Chinese text, with no explanation or preamble.

Source text:
%s`, text)

	var lastErr error
	for _, model := range g.models {
		translated, err := g.gen.GenerateText(ctx, model, prompt)
		if err != nil {
			lastErr = err
			if modelUnavailable(err) {
				continue
			}
			break
		}
		if strings.TrimSpace(translated) == "" {
			lastErr = ErrEmptyResponse
			break
		}
		return strings.TrimSpace(translated), nil
	}
	return "", classifyAPIError(lastErr)
}

// stripCodeFence removes a surrounding Markdown code fence, which the model
// emits despite being told not to.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```json") {
		trimmed = trimmed[len("```json"):]
	} else if strings.HasPrefix(trimmed, "```") {
		trimmed = trimmed[len("```"):]
	}
	if strings.HasSuffix(trimmed, "```") {
		trimmed = trimmed[:len(trimmed)-len("```")]
	}
	return strings.TrimSpace(trimmed)
}

func (g *Generator) parseReport(text string) (*models.AIReport, error) {
	payload := stripCodeFence(text)

	var report models.AIReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReportJSON, err)
	}
	if err := validateReport(&report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReportJSON, err)
	}

	report.GeneratedAt = g.now().UTC()
	return &report, nil
}

// validateReport enforces the parts of the contract a JSON decode cannot:
// required narrative sections and score ranges.
func validateReport(report *models.AIReport) error {
	if report.ExecutiveSummary.Headline == "" {
		return fmt.Errorf("missing executive summary headline")
	}
	if report.ExecutiveSummary.Verdict == "" {
		return fmt.Errorf("missing executive summary verdict")
	}
	if len(report.StrategicRecommendations) == 0 {
		return fmt.Errorf("missing strategic recommendations")
	}

	scores := []struct {
		name  string
		value int
	}{
		{"executiveSummary.confidenceScore", report.ExecutiveSummary.ConfidenceScore},
		{"productStrategy.overallScore", report.ProductStrategy.OverallScore},
		{"productStrategy.skuDepthRating", report.ProductStrategy.SKUDepthRating},
		{"operationsAssessment.overallScore", report.OperationsAssessment.OverallScore},
		{"operationsAssessment.uxScore", report.OperationsAssessment.UXScore},
		{"operationsAssessment.trustScore", report.OperationsAssessment.TrustScore},
		{"operationsAssessment.conversionScore", report.OperationsAssessment.ConversionScore},
		{"marketingAnalysis.overallScore", report.MarketingAnalysis.OverallScore},
		{"marketingAnalysis.brandStrength", report.MarketingAnalysis.BrandStrength},
	}
	for _, s := range scores {
		if s.value < 0 || s.value > 100 {
			return fmt.Errorf("%s out of range: %d", s.name, s.value)
		}
	}
	return nil
}

// modelUnavailable reports whether the error means this particular model is
// missing, so the next model in the chain is worth trying.
func modelUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "404")
}

// classifyAPIError maps raw upstream failures onto the package's error
// taxonomy so the HTTP layer can answer with the right status and message.
func classifyAPIError(err error) error {
	if err == nil {
		return fmt.Errorf("report generation failed with no usable model")
	}
	if errors.Is(err, ErrEmptyResponse) || errors.Is(err, ErrInvalidReportJSON) {
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrInvalidAPIKey, err)
		case apiErr.Status == "RESOURCE_EXHAUSTED":
			return fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api_key") || strings.Contains(msg, "api key"):
		return fmt.Errorf("%w: %v", ErrInvalidAPIKey, err)
	case strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted"):
		return fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
	case strings.Contains(msg, "rate"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case strings.Contains(msg, "blocked") || strings.Contains(msg, "safety"):
		return fmt.Errorf("%w: %v", ErrContentBlocked, err)
	default:
		return fmt.Errorf("report generation failed: %w", err)
	}
}
