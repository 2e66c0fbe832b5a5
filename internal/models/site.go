// internal/models/site.go
package models

// Platform identifies the commerce platform a storefront runs on.
type Platform string

const (
	PlatformShopify     Platform = "shopify"
	PlatformWooCommerce Platform = "woocommerce"
	PlatformMagento     Platform = "magento"
	PlatformBigCommerce Platform = "bigcommerce"
	PlatformSquarespace Platform = "squarespace"
	PlatformWix         Platform = "wix"
	PlatformPrestaShop  Platform = "prestashop"
	PlatformOpenCart    Platform = "opencart"
	PlatformUnknown     Platform = "unknown"
)

// DisplayName is the user-facing name of the platform.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformShopify:
		return "Shopify"
	case PlatformWooCommerce:
		return "WooCommerce (WordPress)"
	case PlatformMagento:
		return "Magento"
	case PlatformBigCommerce:
		return "BigCommerce"
	case PlatformSquarespace:
		return "Squarespace"
	case PlatformWix:
		return "Wix"
	case PlatformPrestaShop:
		return "PrestaShop"
	case PlatformOpenCart:
		return "OpenCart"
	default:
		return "Unknown platform"
	}
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// DetectionResult carries the platform classification for a storefront and
// the heuristic indicators that led to it.
type DetectionResult struct {
	Platform     Platform   `json:"platform"`
	Confidence   Confidence `json:"confidence"`
	Indicators   []string   `json:"indicators"`
	IsShopify    bool       `json:"is_shopify"`
	APIAvailable bool       `json:"api_available"`
}

// StoreMeta holds the storefront identity extracted from the homepage.
type StoreMeta struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Domain      string   `json:"domain"`
	Favicon     string   `json:"favicon,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	OGImage     string   `json:"og_image,omitempty"`
	Keywords    []string `json:"keywords"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	Pinterest string `json:"pinterest,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// Count returns the number of platforms a profile link was found for.
func (s SocialLinks) Count() int {
	n := 0
	for _, link := range []string{s.Facebook, s.Instagram, s.Twitter, s.YouTube, s.TikTok, s.Pinterest, s.LinkedIn} {
		if link != "" {
			n++
		}
	}
	return n
}

// TechAnalysis captures technology and feature signals from the homepage.
type TechAnalysis struct {
	ShopifyTheme   string   `json:"shopify_theme,omitempty"`
	Currency       string   `json:"currency"`
	Language       string   `json:"language"`
	HasReviews     bool     `json:"has_reviews"`
	HasWishlist    bool     `json:"has_wishlist"`
	HasSearch      bool     `json:"has_search"`
	HasCart        bool     `json:"has_cart"`
	HasNewsletter  bool     `json:"has_newsletter"`
	HasChatWidget  bool     `json:"has_chat_widget"`
	PaymentMethods []string `json:"payment_methods"`
	ThirdPartyApps []string `json:"third_party_apps"`
}

type NavigationItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SiteStructure describes the navigable surface of the storefront.
type SiteStructure struct {
	MainNavigation    []NavigationItem `json:"main_navigation"`
	FooterLinks       []string         `json:"footer_links"`
	CollectionsCount  int              `json:"collections_count"`
	HasAboutPage      bool             `json:"has_about_page"`
	HasContactPage    bool             `json:"has_contact_page"`
	HasFAQPage        bool             `json:"has_faq_page"`
	HasBlogSection    bool             `json:"has_blog_section"`
	HasReturnPolicy   bool             `json:"has_return_policy"`
	HasShippingPolicy bool             `json:"has_shipping_policy"`
}

type SEOAnalysis struct {
	HasMetaDescription    bool   `json:"has_meta_description"`
	MetaDescriptionLength int    `json:"meta_description_length"`
	HasTitleTag           bool   `json:"has_title_tag"`
	TitleLength           int    `json:"title_length"`
	HasOGTags             bool   `json:"has_og_tags"`
	HasTwitterCards       bool   `json:"has_twitter_cards"`
	HasStructuredData     bool   `json:"has_structured_data"`
	CanonicalURL          string `json:"canonical_url,omitempty"`
	RobotsTxt             bool   `json:"robots_txt"`
	Sitemap               bool   `json:"sitemap"`
}

// ScrapeResult is everything the scraper learned about one storefront.
type ScrapeResult struct {
	Meta          StoreMeta     `json:"meta"`
	Products      []Product     `json:"products"`
	SocialLinks   SocialLinks   `json:"social_links"`
	TechAnalysis  TechAnalysis  `json:"tech_analysis"`
	SiteStructure SiteStructure `json:"site_structure"`
	SEOAnalysis   SEOAnalysis   `json:"seo_analysis"`
}
