// internal/models/aggregate.go
package models

// PriceStats summarizes the catalog's price distribution. Only products
// with a positive price contribute to the statistics.
type PriceStats struct {
	TotalProducts     int     `json:"total_products"`
	AveragePrice      float64 `json:"average_price"`
	MedianPrice       float64 `json:"median_price"`
	MinPrice          float64 `json:"min_price"`
	MaxPrice          float64 `json:"max_price"`
	PriceCurrency     string  `json:"price_currency"`
	PriceStdDeviation float64 `json:"price_std_deviation"`
}

type TagCount struct {
	Tag        string  `json:"tag"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type PriceDistributionBucket struct {
	Range      string  `json:"range"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type VendorAnalysis struct {
	Vendor       string     `json:"vendor"`
	ProductCount int        `json:"productCount"`
	Percentage   float64    `json:"percentage"`
	AvgPrice     float64    `json:"avgPrice"`
	PriceRange   PriceRange `json:"priceRange"`
}

type ProductTypeAnalysis struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	AvgPrice   float64 `json:"avgPrice"`
}

type DiscountBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type DiscountAnalysis struct {
	TotalProductsWithDiscount int              `json:"totalProductsWithDiscount"`
	DiscountPercentage        float64          `json:"discountPercentage"`
	AverageDiscountPercent    float64          `json:"averageDiscountPercent"`
	MaxDiscountPercent        int              `json:"maxDiscountPercent"`
	DiscountDistribution      []DiscountBucket `json:"discountDistribution"`
}

type OptionTypeAnalysis struct {
	Name         string   `json:"name"`
	UniqueValues int      `json:"uniqueValues"`
	TopValues    []string `json:"topValues"`
}

type VariantAnalysis struct {
	TotalVariants                int                  `json:"totalVariants"`
	AvgVariantsPerProduct        float64              `json:"avgVariantsPerProduct"`
	ProductsWithMultipleVariants int                  `json:"productsWithMultipleVariants"`
	OptionTypes                  []OptionTypeAnalysis `json:"optionTypes"`
}

type ImageAnalysis struct {
	TotalImages           int     `json:"totalImages"`
	AvgImagesPerProduct   float64 `json:"avgImagesPerProduct"`
	ProductsWithoutImages int     `json:"productsWithoutImages"`
	ProductsWithAltText   int     `json:"productsWithAltText"`
	AltTextPercentage     float64 `json:"altTextPercentage"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type TimelineAnalysis struct {
	OldestProduct       string       `json:"oldestProduct,omitempty"`
	NewestProduct       string       `json:"newestProduct,omitempty"`
	PublishingFrequency []MonthCount `json:"publishingFrequency"`
	AvgProductsPerMonth float64      `json:"avgProductsPerMonth"`
}

type InventoryAnalysis struct {
	InStockProducts    int     `json:"inStockProducts"`
	OutOfStockProducts int     `json:"outOfStockProducts"`
	InStockPercentage  float64 `json:"inStockPercentage"`
}

// PriceTier buckets a product's price relative to the catalog average.
type PriceTier string

const (
	PriceTierBudget   PriceTier = "budget"
	PriceTierMidRange PriceTier = "mid-range"
	PriceTierPremium  PriceTier = "premium"
	PriceTierLuxury   PriceTier = "luxury"
)

// ProductInsights holds the rule-derived annotations for one product.
type ProductInsights struct {
	PriceTier           PriceTier `json:"price_tier"`
	TargetAudience      []string  `json:"target_audience"`
	ProductCategory     string    `json:"product_category"`
	Seasonality         string    `json:"seasonality,omitempty"`
	KeyFeatures         []string  `json:"key_features"`
	CompetitivePosition string    `json:"competitive_position"`
}

type VariantDetail struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compareAtPrice"`
	SKU            string   `json:"sku"`
	Available      bool     `json:"available"`
	Option1        *string  `json:"option1"`
	Option2        *string  `json:"option2"`
	Option3        *string  `json:"option3"`
}

type ImageDetail struct {
	Src string  `json:"src"`
	Alt *string `json:"alt"`
}

// ProductDetail is the enriched per-product view computed by the aggregator.
// It is owned by the aggregator's output and read-only downstream.
type ProductDetail struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	URL    string `json:"url"`

	Price           float64    `json:"price"`
	CompareAtPrice  *float64   `json:"compare_at_price"`
	DiscountPercent *int       `json:"discount_percent"`
	PriceRange      PriceRange `json:"price_range"`

	PrimaryImage string        `json:"primary_image,omitempty"`
	Images       []ImageDetail `json:"images"`
	ImageCount   int           `json:"image_count"`

	Vendor      string   `json:"vendor"`
	ProductType string   `json:"product_type"`
	Tags        []string `json:"tags"`

	Variants             []VariantDetail `json:"variants"`
	VariantCount         int             `json:"variant_count"`
	Options              []ProductOption `json:"options"`
	HasMultipleVariants  bool            `json:"has_multiple_variants"`

	Description       string `json:"description"`
	DescriptionLength int    `json:"description_length"`

	PublishedAt        string `json:"published_at"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
	DaysSincePublished int    `json:"days_since_published"`

	Available bool `json:"available"`

	Insights ProductInsights `json:"insights"`
}

// HealthCheck is one pass/fail item of the website health checklist.
type HealthCheck struct {
	Category string `json:"category"`
	Item     string `json:"item"`
	Passed   bool   `json:"passed"`
	Weight   int    `json:"weight"`
}

// WebsiteHealthScore is a weighted best-practice checklist rolled up per
// category. All scores are integers in [0, 100].
type WebsiteHealthScore struct {
	Overall   int           `json:"overall"`
	SEO       int           `json:"seo"`
	UX        int           `json:"ux"`
	Trust     int           `json:"trust"`
	Marketing int           `json:"marketing"`
	Details   []HealthCheck `json:"details"`
}

// ScoreItem is one auditable entry of a scoring rubric: the measured value
// and the threshold are reported alongside the boolean so every score can
// be traced back to the data.
type ScoreItem struct {
	Label     string `json:"label"`
	Passed    bool   `json:"passed"`
	Measured  string `json:"measured"`
	Threshold string `json:"threshold"`
	Weight    int    `json:"weight"`
	Rationale string `json:"rationale"`
}

// Rubric is an independently weighted checklist with an overall percentage
// and a static benchmark value for comparison display.
type Rubric struct {
	Overall   int         `json:"overall"`
	Benchmark int         `json:"benchmark"`
	Items     []ScoreItem `json:"items"`
}

// StoreScores groups the three scoring rubrics.
type StoreScores struct {
	Product    Rubric `json:"product"`
	Operations Rubric `json:"operations"`
	Marketing  Rubric `json:"marketing"`
}

// AIContext is the condensed snapshot handed to the report generator.
type AIContext struct {
	StoreMeta           StoreMeta             `json:"store_meta"`
	Stats               PriceStats            `json:"stats"`
	TopTags             []TagCount            `json:"top_tags"`
	VendorAnalysis      []VendorAnalysis      `json:"vendor_analysis"`
	ProductTypeAnalysis []ProductTypeAnalysis `json:"product_type_analysis"`
	DiscountAnalysis    DiscountAnalysis      `json:"discount_analysis"`
	VariantAnalysis     VariantAnalysis       `json:"variant_analysis"`
	ImageAnalysis       ImageAnalysis         `json:"image_analysis"`
	TimelineAnalysis    TimelineAnalysis      `json:"timeline_analysis"`
	InventoryAnalysis   InventoryAnalysis     `json:"inventory_analysis"`
	SocialLinks         SocialLinks           `json:"social_links"`
	TechAnalysis        TechAnalysis          `json:"tech_analysis"`
	SiteStructure       SiteStructure         `json:"site_structure"`
	SEOAnalysis         SEOAnalysis           `json:"seo_analysis"`
	WebsiteHealth       WebsiteHealthScore    `json:"website_health"`
	SampleProducts      []ProductDetail       `json:"sample_products"`
}

// AggregatedData is the complete statistical summary for one store.
type AggregatedData struct {
	Stats               PriceStats                `json:"stats"`
	TagCloud            []TagCount                `json:"tag_cloud"`
	PriceDistribution   []PriceDistributionBucket `json:"price_distribution"`
	VendorAnalysis      []VendorAnalysis          `json:"vendor_analysis"`
	ProductTypeAnalysis []ProductTypeAnalysis     `json:"product_type_analysis"`
	DiscountAnalysis    DiscountAnalysis          `json:"discount_analysis"`
	VariantAnalysis     VariantAnalysis           `json:"variant_analysis"`
	ImageAnalysis       ImageAnalysis             `json:"image_analysis"`
	TimelineAnalysis    TimelineAnalysis          `json:"timeline_analysis"`
	InventoryAnalysis   InventoryAnalysis         `json:"inventory_analysis"`
	WebsiteHealth       WebsiteHealthScore        `json:"website_health"`
	StoreScores         StoreScores               `json:"store_scores"`
	AllProducts         []ProductDetail           `json:"all_products"`
	AIContext           AIContext                 `json:"ai_context"`
}
