// internal/services/analysis_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shoplens/shoplens-backend/internal/aggregator"
	"github.com/shoplens/shoplens-backend/internal/cache"
	"github.com/shoplens/shoplens-backend/internal/models"
	"github.com/shoplens/shoplens-backend/internal/scraper"
)

// storeScraper and reportGenerator are the service's two upstream
// dependencies, kept as interfaces so handler tests can fake them.
type storeScraper interface {
	Scrape(ctx context.Context, domain string) (*models.ScrapeResult, error)
}

type reportGenerator interface {
	Generate(ctx context.Context, aiCtx *models.AIContext) (*models.AIReport, error)
	Translate(ctx context.Context, text string) (string, error)
}

type AnalysisService struct {
	scraper   storeScraper
	generator reportGenerator
	cache     *cache.Cache
	log       *logrus.Logger
	now       func() time.Time
}

type AnalyzeRequest struct {
	URL          string `json:"url" validate:"required"`
	ForceRefresh bool   `json:"force_refresh"`
}

// CacheMeta tells the client whether it got a stored result and how old
// that result is.
type CacheMeta struct {
	Cached bool   `json:"cached"`
	Age    string `json:"age,omitempty"`
}

func NewAnalysisService(sc storeScraper, gen reportGenerator, resultCache *cache.Cache, log *logrus.Logger) *AnalysisService {
	return &AnalysisService{
		scraper:   sc,
		generator: gen,
		cache:     resultCache,
		log:       log,
		now:       time.Now,
	}
}

// Analyze runs the full pipeline for one storefront: scrape, aggregate,
// generate the report, cache the combined result.
func (s *AnalysisService) Analyze(ctx context.Context, rawURL string, forceRefresh bool) (*models.AnalysisResult, CacheMeta, error) {
	domain, err := scraper.ExtractDomain(rawURL)
	if err != nil {
		return nil, CacheMeta{}, fmt.Errorf("invalid store URL: %w", err)
	}

	log := s.log.WithFields(logrus.Fields{"domain": domain, "force_refresh": forceRefresh})

	if forceRefresh {
		s.cache.Delete(domain)
	} else if value, age, ok := s.cache.Get(domain); ok {
		if result, ok := value.(*models.AnalysisResult); ok {
			log.WithField("age", cache.FormatAge(age)).Info("Serving cached analysis")
			return result, CacheMeta{Cached: true, Age: cache.FormatAge(age)}, nil
		}
	}

	log.Info("Starting store analysis")
	started := s.now()

	scraped, err := s.scraper.Scrape(ctx, domain)
	if err != nil {
		return nil, CacheMeta{}, err
	}

	aggregated := aggregator.Aggregate(scraped, s.now())

	aiReport, err := s.generator.Generate(ctx, &aggregated.AIContext)
	if err != nil {
		return nil, CacheMeta{}, err
	}

	result := &models.AnalysisResult{
		Data:         aggregated,
		Report:       *aiReport,
		Meta:         scraped.Meta,
		SocialLinks:  scraped.SocialLinks,
		TechAnalysis: scraped.TechAnalysis,
	}
	s.cache.Set(domain, result)

	log.WithFields(logrus.Fields{
		"products": aggregated.Stats.TotalProducts,
		"duration": s.now().Sub(started).Milliseconds(),
	}).Info("Store analysis complete")

	return result, CacheMeta{Cached: false}, nil
}

// Translate converts English product copy to Chinese through the report
// generator's model chain.
func (s *AnalysisService) Translate(ctx context.Context, text string) (string, error) {
	return s.generator.Translate(ctx, text)
}
