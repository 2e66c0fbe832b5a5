// internal/models/report.go
package models

import "time"

// The report schema mirrors the JSON structure the model is instructed to
// emit. Every field is part of the generator's output contract; deviations
// are rejected during validation rather than passed through.

type KeyMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Trend string `json:"trend"` // up, down, neutral
}

type ExecutiveSummary struct {
	Headline        string      `json:"headline"`
	KeyMetrics      []KeyMetric `json:"keyMetrics"`
	Verdict         string      `json:"verdict"`
	ConfidenceScore int         `json:"confidenceScore"`
}

type MarketPosition struct {
	Niche                 string   `json:"niche"`
	Positioning           string   `json:"positioning"` // budget, mid-range, premium, luxury
	TargetMarketSize      string   `json:"targetMarketSize"`
	CompetitiveAdvantages []string `json:"competitiveAdvantages"`
	MarketTrends          []string `json:"marketTrends"`
}

type PersonaDemographics struct {
	AgeRange     string `json:"ageRange"`
	Gender       string `json:"gender"`
	Income       string `json:"income"`
	Education    string `json:"education"`
	Occupation   string `json:"occupation"`
	Location     string `json:"location"`
	FamilyStatus string `json:"familyStatus"`
}

type PersonaLifestyle struct {
	DailyRoutine     string   `json:"dailyRoutine"`
	Hobbies          []string `json:"hobbies"`
	SocialActivities []string `json:"socialActivities"`
	MediaConsumption []string `json:"mediaConsumption"`
	TechnologyUsage  string   `json:"technologyUsage"`
}

type PersonaConsumption struct {
	SpendingPower           string   `json:"spendingPower"`
	PriceSensitivity        string   `json:"pricesSensitivity"`
	BrandLoyalty            string   `json:"brandLoyalty"`
	PurchaseFrequency       string   `json:"purchaseFrequency"`
	AverageOrderValue       string   `json:"averageOrderValue"`
	PreferredPaymentMethods []string `json:"preferredPaymentMethods"`
}

type PersonaPsychographics struct {
	CoreValues  []string `json:"coreValues"`
	Personality []string `json:"personality"`
	Aspirations []string `json:"aspirations"`
	Fears       []string `json:"fears"`
}

type PainPoint struct {
	Point     string `json:"point"`
	Intensity string `json:"intensity"`
}

type PersonaPainPoints struct {
	PrimaryPainPoints []PainPoint `json:"primaryPainPoints"`
	UnmetNeeds        []string    `json:"unmetNeeds"`
	DesiredOutcomes   []string    `json:"desiredOutcomes"`
}

type PersonaJourney struct {
	AwarenessChannels    []string `json:"awarenessChannels"`
	ResearchBehavior     string   `json:"researchBehavior"`
	EvaluationCriteria   []string `json:"evaluationCriteria"`
	PurchaseTriggers     []string `json:"purchaseTriggers"`
	PostPurchaseBehavior string   `json:"postPurchaseBehavior"`
}

type SocialMediaUsage struct {
	Platform  string `json:"platform"`
	Frequency string `json:"frequency"`
	Purpose   string `json:"purpose"`
}

type PersonaDigital struct {
	PreferredPlatforms   []string           `json:"preferredPlatforms"`
	ContentPreferences   []string           `json:"contentPreferences"`
	InfluencerTypes      []string           `json:"influencerTypes"`
	OnlineShoppingHabits string             `json:"onlineShoppingHabits"`
	SocialMediaUsage     []SocialMediaUsage `json:"socialMediaUsage"`
}

type PersonaMarketing struct {
	BestChannels    []string `json:"bestChannels"`
	MessagingTone   string   `json:"messagingTone"`
	ContentTypes    []string `json:"contentTypes"`
	PromotionTypes  []string `json:"promotionTypes"`
	BestTimeToReach string   `json:"bestTimeToReach"`
}

type PersonaProfile struct {
	Name                     string                `json:"name"`
	Avatar                   string                `json:"avatar"`
	Tagline                  string                `json:"tagline"`
	Demographics             PersonaDemographics   `json:"demographics"`
	Lifestyle                PersonaLifestyle      `json:"lifestyle"`
	ConsumptionProfile       PersonaConsumption    `json:"consumptionProfile"`
	Psychographics           PersonaPsychographics `json:"psychographics"`
	PainPointsAndNeeds       PersonaPainPoints     `json:"painPointsAndNeeds"`
	PurchaseJourney          PersonaJourney        `json:"purchaseJourney"`
	DigitalBehavior          PersonaDigital        `json:"digitalBehavior"`
	MarketingRecommendations PersonaMarketing      `json:"marketingRecommendations"`
}

type SegmentComparison struct {
	Dimension      string `json:"dimension"`
	PrimaryValue   string `json:"primaryValue"`
	SecondaryValue string `json:"secondaryValue"`
}

type MarketSizing struct {
	EstimatedTAM    string `json:"estimatedTAM"`
	EstimatedSAM    string `json:"estimatedSAM"`
	EstimatedSOM    string `json:"estimatedSOM"`
	GrowthPotential string `json:"growthPotential"`
}

type RecommendedChannel struct {
	Channel  string `json:"channel"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
}

type AcquisitionStrategy struct {
	RecommendedChannels []RecommendedChannel `json:"recommendedChannels"`
	EstimatedCAC        string               `json:"estimatedCAC"`
	RetentionStrategies []string             `json:"retentionStrategies"`
	LTVOptimization     []string             `json:"ltvOptimization"`
}

type PersonaOverview struct {
	TotalSegments       int    `json:"totalSegments"`
	PrimarySegmentShare string `json:"primarySegmentShare"`
	SegmentationBasis   string `json:"segmentationBasis"`
	ConfidenceLevel     int    `json:"confidenceLevel"`
}

type UserPersona struct {
	Overview            PersonaOverview     `json:"overview"`
	PrimaryPersona      PersonaProfile      `json:"primaryPersona"`
	SecondaryPersona    PersonaProfile      `json:"secondaryPersona"`
	SegmentComparison   []SegmentComparison `json:"segmentComparison"`
	MarketSizing        MarketSizing        `json:"marketSizing"`
	AcquisitionStrategy AcquisitionStrategy `json:"acquisitionStrategy"`
}

type PricingStrategy struct {
	Type            string   `json:"type"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}

type ProductStrategy struct {
	OverallScore       int             `json:"overallScore"`
	SKUDepthRating     int             `json:"skuDepthRating"`
	PricingStrategy    PricingStrategy `json:"pricingStrategy"`
	ProductMixInsights []string        `json:"productMixInsights"`
	GapAnalysis        []string        `json:"gapAnalysis"`
}

type OperationsAssessment struct {
	OverallScore    int      `json:"overallScore"`
	UXScore         int      `json:"uxScore"`
	TrustScore      int      `json:"trustScore"`
	ConversionScore int      `json:"conversionScore"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	QuickWins       []string `json:"quickWins"`
}

type MarketingChannel struct {
	Name   string `json:"name"`
	Status string `json:"status"` // active, inactive, potential
	Score  int    `json:"score"`
}

type MarketingAnalysis struct {
	OverallScore    int                `json:"overallScore"`
	Channels        []MarketingChannel `json:"channels"`
	ContentStrategy string             `json:"contentStrategy"`
	BrandStrength   int                `json:"brandStrength"`
	Recommendations []string           `json:"recommendations"`
}

type SWOTAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type StrategicRecommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Effort      string `json:"effort"`
	Priority    int    `json:"priority"`
	Category    string `json:"category"`
}

type CompetitorPositioning struct {
	TargetMarket  string `json:"targetMarket"`
	PricePosition string `json:"pricePosition"`
	BrandPosition string `json:"brandPosition"`
}

type CompetitorMetrics struct {
	EstimatedProductCount string `json:"estimatedProductCount"`
	EstimatedPriceRange   string `json:"estimatedPriceRange"`
	EstimatedMarketShare  string `json:"estimatedMarketShare"`
	StrengthScore         int    `json:"strengthScore"`
}

type CompetitorComparison struct {
	Advantages      []string `json:"advantages"`
	Disadvantages   []string `json:"disadvantages"`
	Differentiators []string `json:"differentiators"`
}

type CompetitorInsights struct {
	WhatToLearn   []string `json:"whatToLearn"`
	WhatToAvoid   []string `json:"whatToAvoid"`
	Opportunities []string `json:"opportunities"`
}

type CompetitorBenchmark struct {
	Name              string                `json:"name"`
	Category          string                `json:"category"`
	Description       string                `json:"description"`
	ConfidenceLevel   int                   `json:"confidenceLevel"`
	DataSource        string                `json:"dataSource"`
	Positioning       CompetitorPositioning `json:"positioning"`
	Metrics           CompetitorMetrics     `json:"metrics"`
	Comparison        CompetitorComparison  `json:"comparison"`
	StrategicInsights CompetitorInsights    `json:"strategicInsights"`
}

type CompetitorOverview struct {
	TotalCompetitorsAnalyzed int    `json:"totalCompetitorsAnalyzed"`
	MarketConcentration      string `json:"marketConcentration"`
	CompetitiveIntensity     string `json:"competitiveIntensity"`
	AnalysisConfidence       int    `json:"analysisConfidence"`
	DataSourceSummary        string `json:"dataSourceSummary"`
}

type MarketLandscape struct {
	LeaderBrands      []string `json:"leaderBrands"`
	EmergingBrands    []string `json:"emergingBrands"`
	NichePlayersCount int      `json:"nichePlayersCount"`
	MarketTrend       string   `json:"marketTrend"`
}

type MapPosition struct {
	X string `json:"x"`
	Y string `json:"y"`
}

type PositioningMap struct {
	XAxis               string      `json:"xAxis"`
	YAxis               string      `json:"yAxis"`
	CurrentPosition     MapPosition `json:"currentPosition"`
	RecommendedPosition MapPosition `json:"recommendedPosition"`
	PositioningGap      string      `json:"positioningGap"`
}

type CompetitiveAdvantage struct {
	CurrentAdvantages     []string `json:"currentAdvantages"`
	SustainableAdvantages []string `json:"sustainableAdvantages"`
	Vulnerabilities       []string `json:"vulnerabilities"`
	RecommendedFocus      []string `json:"recommendedFocus"`
}

type CompetitorAnalysis struct {
	Overview             CompetitorOverview    `json:"overview"`
	MarketLandscape      MarketLandscape       `json:"marketLandscape"`
	PositioningMap       PositioningMap        `json:"positioningMap"`
	CompetitiveAdvantage CompetitiveAdvantage  `json:"competitiveAdvantage"`
	Competitors          []CompetitorBenchmark `json:"competitors"`
}

// AIReport is the structured narrative produced by the report generator.
type AIReport struct {
	ExecutiveSummary         ExecutiveSummary          `json:"executiveSummary"`
	MarketPosition           MarketPosition            `json:"marketPosition"`
	UserPersona              UserPersona               `json:"userPersona"`
	ProductStrategy          ProductStrategy           `json:"productStrategy"`
	OperationsAssessment     OperationsAssessment      `json:"operationsAssessment"`
	MarketingAnalysis        MarketingAnalysis         `json:"marketingAnalysis"`
	SWOTAnalysis             SWOTAnalysis              `json:"swotAnalysis"`
	StrategicRecommendations []StrategicRecommendation `json:"strategicRecommendations"`
	CompetitorAnalysis       CompetitorAnalysis        `json:"competitorAnalysis"`
	GeneratedAt              time.Time                 `json:"generatedAt"`
}

// AnalysisResult is the combined response payload for a completed analysis.
type AnalysisResult struct {
	Data         AggregatedData `json:"data"`
	Report       AIReport       `json:"report"`
	Meta         StoreMeta      `json:"meta"`
	SocialLinks  SocialLinks    `json:"socialLinks"`
	TechAnalysis TechAnalysis   `json:"techAnalysis"`
}
