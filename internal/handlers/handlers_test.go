// internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/shoplens/shoplens-backend/internal/cache"
	"github.com/shoplens/shoplens-backend/internal/config"
	"github.com/shoplens/shoplens-backend/internal/middleware"
	"github.com/shoplens/shoplens-backend/internal/models"
	"github.com/shoplens/shoplens-backend/internal/scraper"
	"github.com/shoplens/shoplens-backend/internal/services"
	"github.com/shoplens/shoplens-backend/internal/utils"
)

type fakeScraper struct {
	result *models.ScrapeResult
	err    error
	calls  int
}

func (f *fakeScraper) Scrape(_ context.Context, _ string) (*models.ScrapeResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeReporter struct {
	report *models.AIReport
	err    error
}

func (f *fakeReporter) Generate(_ context.Context, _ *models.AIContext) (*models.AIReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func (f *fakeReporter) Translate(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "高品质产品", nil
}

type HandlersTestSuite struct {
	suite.Suite
	router   *gin.Engine
	scraper  *fakeScraper
	reporter *fakeReporter
	cache    *cache.Cache
	token    string
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
	}

	suite.scraper = &fakeScraper{result: fixtureScrapeResult()}
	suite.reporter = &fakeReporter{report: fixtureReport()}
	suite.cache = cache.New(time.Hour, 10)

	authService := services.NewAuthService(cfg)
	analysisService := services.NewAnalysisService(suite.scraper, suite.reporter, suite.cache, log)

	authHandler := NewAuthHandler(authService)
	analyzeHandler := NewAnalyzeHandler(analysisService)
	healthHandler := NewHealthHandler(suite.cache)

	suite.router = gin.New()
	suite.router.GET("/health", healthHandler.Health)
	auth := suite.router.Group("/v1/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
	}
	protected := suite.router.Group("/v1")
	protected.Use(middleware.AuthRequired())
	{
		protected.POST("/analyze", analyzeHandler.Analyze)
		protected.POST("/translate", analyzeHandler.Translate)
	}

	token, err := utils.GenerateJWT("1", "admin@example.com", 1)
	suite.Require().NoError(err)
	suite.token = token
}

func fixtureScrapeResult() *models.ScrapeResult {
	return &models.ScrapeResult{
		Meta: models.StoreMeta{Title: "Aurora Supply Co", Domain: "aurora.example"},
		Products: []models.Product{
			{
				ID:    1,
				Title: "Trail Jacket",
				Variants: []models.ProductVariant{
					{ID: 10, Price: models.Money(89), Available: true},
				},
			},
		},
	}
}

func fixtureReport() *models.AIReport {
	return &models.AIReport{
		ExecutiveSummary: models.ExecutiveSummary{
			Headline:        "A compact outdoor gear store.",
			Verdict:         "Fundamentals are sound.",
			ConfidenceScore: 80,
		},
	}
}

func (suite *HandlersTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *HandlersTestSuite) TestLoginSuccess() {
	w := suite.request("POST", "/v1/auth/login", "", map[string]interface{}{
		"email":    "admin@example.com",
		"password": "admin123",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	response := suite.decode(w)
	assert.True(suite.T(), response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.NotEmpty(suite.T(), data["token"])
	assert.Equal(suite.T(), "Bearer", data["token_type"])
}

func (suite *HandlersTestSuite) TestLoginWrongPassword() {
	w := suite.request("POST", "/v1/auth/login", "", map[string]interface{}{
		"email":    "admin@example.com",
		"password": "wrong",
	})

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	response := suite.decode(w)
	assert.False(suite.T(), response["success"].(bool))
}

func (suite *HandlersTestSuite) TestLoginUnknownUser() {
	w := suite.request("POST", "/v1/auth/login", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "admin123",
	})

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestLoginValidation() {
	w := suite.request("POST", "/v1/auth/login", "", map[string]interface{}{
		"email": "not-an-email",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.decode(w)
	errObj := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "VALIDATION_ERROR", errObj["code"])
}

func (suite *HandlersTestSuite) TestMeRequiresToken() {
	w := suite.request("GET", "/v1/auth/me", "", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestMeReturnsUser() {
	w := suite.request("GET", "/v1/auth/me", suite.token, nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(suite.T(), "admin@example.com", user["email"])
}

func (suite *HandlersTestSuite) TestAnalyzeRequiresAuth() {
	w := suite.request("POST", "/v1/analyze", "", map[string]interface{}{
		"url": "https://aurora.example",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestAnalyzeSuccess() {
	w := suite.request("POST", "/v1/analyze", suite.token, map[string]interface{}{
		"url": "https://aurora.example",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	response := suite.decode(w)
	assert.True(suite.T(), response["success"].(bool))

	meta := response["meta"].(map[string]interface{})
	assert.False(suite.T(), meta["cached"].(bool))

	data := response["data"].(map[string]interface{})
	storeMeta := data["meta"].(map[string]interface{})
	assert.Equal(suite.T(), "Aurora Supply Co", storeMeta["title"])
}

func (suite *HandlersTestSuite) TestAnalyzeServesCachedResult() {
	first := suite.request("POST", "/v1/analyze", suite.token, map[string]interface{}{
		"url": "https://aurora.example",
	})
	suite.Require().Equal(http.StatusOK, first.Code)

	second := suite.request("POST", "/v1/analyze", suite.token, map[string]interface{}{
		"url": "https://aurora.example",
	})
	suite.Require().Equal(http.StatusOK, second.Code)

	meta := suite.decode(second)["meta"].(map[string]interface{})
	assert.True(suite.T(), meta["cached"].(bool))
	assert.Equal(suite.T(), 1, suite.scraper.calls)
}

func (suite *HandlersTestSuite) TestAnalyzeForceRefreshBypassesCache() {
	first := suite.request("POST", "/v1/analyze", suite.token, map[string]interface{}{
		"url": "https://aurora.example",
	})
	suite.Require().Equal(http.StatusOK, first.Code)

	second := suite.request("POST", "/v1/analyze", suite.token, map[string]interface{}{
		"url":           "https://aurora.example",
		"force_refresh": true,
	})
	suite.Require().Equal(http.StatusOK, second.Code)

	meta := suite.decode(second)["meta"].(map[string]interface{})
	assert.False(suite.T(), meta["cached"].(bool))
	assert.Equal(suite.T(), 2, suite.scraper.calls)
}

func (suite *HandlersTestSuite) TestAnalyzeMissingURL() {
	w := suite.request("POST", "/v1/analyze", suite.token, map[string]interface{}{})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestAnalyzePlatformNotSupported() {
	suite.scraper.err = &scraper.PlatformNotSupportedError{
		Detection: models.DetectionResult{
			Platform:   models.PlatformWooCommerce,
			Confidence: models.ConfidenceHigh,
		},
	}

	w := suite.request("POST", "/v1/analyze", suite.token, map[string]interface{}{
		"url": "https://woo.example",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	errObj := suite.decode(w)["error"].(map[string]interface{})
	assert.Equal(suite.T(), "PLATFORM_NOT_SUPPORTED", errObj["code"])

	details := errObj["details"].(map[string]interface{})
	assert.Equal(suite.T(), "platform_not_supported", details["errorType"])
	assert.NotNil(suite.T(), details["platformInfo"])
}

func (suite *HandlersTestSuite) TestAnalyzeAPIDisabled() {
	suite.scraper.err = &scraper.APIDisabledError{
		Detection: models.DetectionResult{
			Platform:  models.PlatformShopify,
			IsShopify: true,
		},
	}

	w := suite.request("POST", "/v1/analyze", suite.token, map[string]interface{}{
		"url": "https://locked.example",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	errObj := suite.decode(w)["error"].(map[string]interface{})
	assert.Equal(suite.T(), "PRODUCTS_API_DISABLED", errObj["code"])
}

func (suite *HandlersTestSuite) TestAnalyzeForbiddenFeed() {
	suite.scraper.err = scraper.ErrProductsForbidden

	w := suite.request("POST", "/v1/analyze", suite.token, map[string]interface{}{
		"url": "https://blocked.example",
	})

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *HandlersTestSuite) TestAnalyzeTimeout() {
	suite.scraper.err = context.DeadlineExceeded

	w := suite.request("POST", "/v1/analyze", suite.token, map[string]interface{}{
		"url": "https://slow.example",
	})

	assert.Equal(suite.T(), http.StatusGatewayTimeout, w.Code)
}

func (suite *HandlersTestSuite) TestHealthReportsCachedStores() {
	analyzed := suite.request("POST", "/v1/analyze", suite.token, map[string]interface{}{
		"url": "https://aurora.example",
	})
	suite.Require().Equal(http.StatusOK, analyzed.Code)

	w := suite.request("GET", "/health", "", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), "ok", data["status"])
	assert.Equal(suite.T(), float64(1), data["cached_stores"])

	urls := data["cached_urls"].([]interface{})
	suite.Require().Len(urls, 1)
	assert.Equal(suite.T(), "aurora.example", urls[0])
}

func (suite *HandlersTestSuite) TestTranslate() {
	w := suite.request("POST", "/v1/translate", suite.token, map[string]interface{}{
		"text": "High quality product",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), "高品质产品", data["translated_text"])
}

func (suite *HandlersTestSuite) TestTranslateRequiresText() {
	w := suite.request("POST", "/v1/translate", suite.token, map[string]interface{}{})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
