// internal/handlers/analyze.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoplens/shoplens-backend/internal/report"
	"github.com/shoplens/shoplens-backend/internal/scraper"
	"github.com/shoplens/shoplens-backend/internal/services"
	"github.com/shoplens/shoplens-backend/internal/utils"
)

type AnalyzeHandler struct {
	analysisService *services.AnalysisService
}

func NewAnalyzeHandler(analysisService *services.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisService: analysisService,
	}
}

// POST /analyze
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req services.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, meta, err := h.analysisService.Analyze(c.Request.Context(), req.URL, req.ForceRefresh)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, result, gin.H{
		"cached": meta.Cached,
		"age":    meta.Age,
	})
}

type TranslateRequest struct {
	Text string `json:"text" validate:"required"`
}

// POST /translate
func (h *AnalyzeHandler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	translated, err := h.analysisService.Translate(c.Request.Context(), req.Text)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"translated_text": translated})
}

// respondAnalysisError maps pipeline failures onto HTTP statuses. Detection
// failures are client errors carrying the platform evidence; upstream
// failures are gateway errors.
func respondAnalysisError(c *gin.Context, err error) {
	var notSupported *scraper.PlatformNotSupportedError
	if errors.As(err, &notSupported) {
		utils.ErrorResponse(c, http.StatusBadRequest, "PLATFORM_NOT_SUPPORTED",
			notSupported.Error(), gin.H{
				"errorType":    "platform_not_supported",
				"platformInfo": notSupported.Detection,
			})
		return
	}

	var apiDisabled *scraper.APIDisabledError
	if errors.As(err, &apiDisabled) {
		utils.ErrorResponse(c, http.StatusBadRequest, "PRODUCTS_API_DISABLED",
			apiDisabled.Error(), gin.H{
				"errorType":    "api_disabled",
				"platformInfo": apiDisabled.Detection,
			})
		return
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		utils.ErrorResponse(c, http.StatusGatewayTimeout, "ANALYSIS_TIMEOUT",
			"The store took too long to respond", nil)
	case errors.Is(err, scraper.ErrProductsNotFound):
		utils.BadRequestResponse(c, "This does not look like a Shopify store", gin.H{
			"errorType": "not_shopify",
		})
	case errors.Is(err, scraper.ErrProductsForbidden):
		utils.ForbiddenResponse(c, "The store's product feed is not publicly accessible")
	case errors.Is(err, scraper.ErrEmptyCatalog):
		utils.BadRequestResponse(c, "The store has no published products", gin.H{
			"errorType": "empty_catalog",
		})
	case errors.Is(err, report.ErrMissingAPIKey), errors.Is(err, report.ErrInvalidAPIKey):
		utils.ErrorResponse(c, http.StatusBadGateway, "REPORT_UNAVAILABLE",
			"The analysis engine is not configured correctly", nil)
	case errors.Is(err, report.ErrQuotaExhausted), errors.Is(err, report.ErrRateLimited):
		utils.ErrorResponse(c, http.StatusBadGateway, "REPORT_THROTTLED",
			"The analysis engine is over capacity, try again later", nil)
	case errors.Is(err, report.ErrContentBlocked):
		utils.ErrorResponse(c, http.StatusBadGateway, "REPORT_BLOCKED",
			"The analysis engine refused to process this store", nil)
	case errors.Is(err, report.ErrInvalidReportJSON), errors.Is(err, report.ErrEmptyResponse):
		utils.ErrorResponse(c, http.StatusBadGateway, "REPORT_MALFORMED",
			"The analysis engine returned an unusable report, try again", nil)
	default:
		if isInvalidURL(err) {
			utils.BadRequestResponse(c, err.Error(), gin.H{"errorType": "invalid_url"})
			return
		}
		utils.InternalErrorResponse(c, "Analysis failed")
	}
}

func isInvalidURL(err error) bool {
	return err != nil && errors.Is(err, scraper.ErrInvalidURL)
}
