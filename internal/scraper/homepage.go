// internal/scraper/homepage.go
package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shoplens/shoplens-backend/internal/models"
)

const (
	maxNavigationItems = 20
	maxFooterLinks     = 30
)

type homepageAnalysis struct {
	Meta          models.StoreMeta
	SocialLinks   models.SocialLinks
	TechAnalysis  models.TechAnalysis
	SiteStructure models.SiteStructure
	SEOAnalysis   models.SEOAnalysis
}

// analyzeHomepage extracts storefront identity, feature signals, navigation
// and SEO facts from the homepage document. robots.txt and sitemap flags are
// probed separately by the service.
func analyzeHomepage(domain, html string, doc *goquery.Document) homepageAnalysis {
	lowerHTML := strings.ToLower(html)
	return homepageAnalysis{
		Meta:          extractStoreMeta(domain, doc),
		SocialLinks:   extractSocialLinks(html, doc),
		TechAnalysis:  extractTechAnalysis(html, lowerHTML, doc),
		SiteStructure: extractSiteStructure(doc),
		SEOAnalysis:   extractSEOAnalysis(doc),
	}
}

func extractStoreMeta(domain string, doc *goquery.Document) models.StoreMeta {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = domain
	}

	description := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if description == "" {
		description = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}

	favicon := doc.Find(`link[rel="icon"]`).AttrOr("href", "")
	if favicon == "" {
		favicon = doc.Find(`link[rel="shortcut icon"]`).AttrOr("href", "")
	}

	var keywords []string
	for _, k := range strings.Split(doc.Find(`meta[name="keywords"]`).AttrOr("content", ""), ",") {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}

	return models.StoreMeta{
		Title:       title,
		Description: description,
		Domain:      domain,
		Favicon:     favicon,
		Logo:        doc.Find(`.header__logo img, .site-header__logo img, [class*="logo"] img`).First().AttrOr("src", ""),
		OGImage:     doc.Find(`meta[property="og:image"]`).AttrOr("content", ""),
		Keywords:    keywords,
	}
}

var socialPatterns = map[string]*regexp.Regexp{
	"facebook":  regexp.MustCompile(`https?://(www\.)?facebook\.com/[^\s"'<>]+`),
	"instagram": regexp.MustCompile(`https?://(www\.)?instagram\.com/[^\s"'<>]+`),
	"twitter":   regexp.MustCompile(`https?://(www\.)?(twitter|x)\.com/[^\s"'<>]+`),
	"youtube":   regexp.MustCompile(`https?://(www\.)?youtube\.com/[^\s"'<>]+`),
	"tiktok":    regexp.MustCompile(`https?://(www\.)?tiktok\.com/@[^\s"'<>]+`),
	"pinterest": regexp.MustCompile(`https?://(www\.)?pinterest\.com/[^\s"'<>]+`),
	"linkedin":  regexp.MustCompile(`https?://(www\.)?linkedin\.com/[^\s"'<>]+`),
}

// socialLink prefers an explicit anchor, falling back to a raw HTML match
// since many themes embed profile URLs in script blocks.
func socialLink(platform, html string, doc *goquery.Document) string {
	if link := doc.Find(`a[href*="` + platform + `"]`).First().AttrOr("href", ""); link != "" {
		return link
	}
	return socialPatterns[platform].FindString(html)
}

func extractSocialLinks(html string, doc *goquery.Document) models.SocialLinks {
	return models.SocialLinks{
		Facebook:  socialLink("facebook", html, doc),
		Instagram: socialLink("instagram", html, doc),
		Twitter:   socialLink("twitter", html, doc),
		YouTube:   socialLink("youtube", html, doc),
		TikTok:    socialLink("tiktok", html, doc),
		Pinterest: socialLink("pinterest", html, doc),
		LinkedIn:  socialLink("linkedin", html, doc),
	}
}

var (
	themeNameRe = regexp.MustCompile(`Shopify\.theme\s*=\s*\{[^}]*"name"\s*:\s*"([^"]+)"`)
	themeIDRe   = regexp.MustCompile(`theme_store_id['"]\s*:\s*(\d+)`)
	currencyRe  = regexp.MustCompile(`(?i)currency['"]\s*:\s*['"]([A-Z]{3})['"]`)
)

func extractShopifyTheme(html string) string {
	if m := themeNameRe.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	if m := themeIDRe.FindStringSubmatch(html); m != nil {
		return "Theme ID: " + m[1]
	}
	return ""
}

func extractCurrency(html string, doc *goquery.Document) string {
	if meta := doc.Find(`meta[property="og:price:currency"]`).AttrOr("content", ""); meta != "" {
		return meta
	}
	if m := currencyRe.FindStringSubmatch(html); m != nil {
		return strings.ToUpper(m[1])
	}
	switch {
	case strings.Contains(html, "€"):
		return "EUR"
	case strings.Contains(html, "£"):
		return "GBP"
	case strings.Contains(html, "¥"):
		return "CNY"
	default:
		return "USD"
	}
}

func detectFeature(lowerHTML string, doc *goquery.Document, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lowerHTML, keyword) {
			return true
		}
		if doc.Find(`[class*="`+keyword+`"], [id*="`+keyword+`"]`).Length() > 0 {
			return true
		}
	}
	return false
}

var paymentMarkers = []struct {
	name     string
	keywords []string
}{
	{"Visa", []string{"visa"}},
	{"Mastercard", []string{"mastercard", "master-card"}},
	{"American Express", []string{"amex", "american-express"}},
	{"PayPal", []string{"paypal"}},
	{"Apple Pay", []string{"apple-pay", "applepay"}},
	{"Google Pay", []string{"google-pay", "googlepay"}},
	{"Shop Pay", []string{"shop-pay", "shoppay"}},
	{"Klarna", []string{"klarna"}},
	{"Afterpay", []string{"afterpay"}},
	{"Affirm", []string{"affirm"}},
}

var appMarkers = []struct {
	name    string
	pattern string
}{
	{"Klaviyo", "klaviyo"},
	{"Judge.me", "judge.me"},
	{"Loox", "loox"},
	{"Yotpo", "yotpo"},
	{"Stamped.io", "stamped"},
	{"Privy", "privy"},
	{"Omnisend", "omnisend"},
	{"Smile.io", "smile.io"},
	{"Bold", "bold-"},
	{"ReCharge", "recharge"},
	{"Gorgias", "gorgias"},
	{"Zendesk", "zendesk"},
	{"Intercom", "intercom"},
	{"Hotjar", "hotjar"},
	{"Lucky Orange", "luckyorange"},
	{"Google Analytics", "google-analytics"},
	{"Facebook Pixel", "fbevents"},
	{"TikTok Pixel", "tiktok"},
	{"Pinterest Tag", "pintrk"},
	{"Shopify Analytics", "shopify-analytics"},
}

func extractTechAnalysis(html, lowerHTML string, doc *goquery.Document) models.TechAnalysis {
	var payments []string
	for _, marker := range paymentMarkers {
		for _, kw := range marker.keywords {
			if strings.Contains(lowerHTML, kw) {
				payments = append(payments, marker.name)
				break
			}
		}
	}

	var apps []string
	for _, marker := range appMarkers {
		if strings.Contains(lowerHTML, marker.pattern) {
			apps = append(apps, marker.name)
		}
	}

	language := doc.Find("html").AttrOr("lang", "")
	if language == "" {
		language = "en"
	}

	return models.TechAnalysis{
		ShopifyTheme:  extractShopifyTheme(html),
		Currency:      extractCurrency(html, doc),
		Language:      language,
		HasReviews:    detectFeature(lowerHTML, doc, "review", "rating", "star", "judge.me", "loox", "stamped", "yotpo"),
		HasWishlist:   detectFeature(lowerHTML, doc, "wishlist", "favorite", "save-for-later"),
		HasSearch:     doc.Find(`input[type="search"], .search-form, [class*="search"]`).Length() > 0,
		HasCart:       doc.Find(`[class*="cart"], .cart-icon, #cart`).Length() > 0,
		HasNewsletter: detectFeature(lowerHTML, doc, "newsletter", "subscribe", "mailchimp", "klaviyo"),
		HasChatWidget: detectFeature(lowerHTML, doc, "intercom", "zendesk", "tidio", "crisp", "drift", "livechat", "gorgias"),
		PaymentMethods: payments,
		ThirdPartyApps: apps,
	}
}

func extractNavigation(doc *goquery.Document) []models.NavigationItem {
	var items []models.NavigationItem
	seen := make(map[string]struct{})

	doc.Find(`nav a, .header a, .main-nav a, .site-nav a, [class*="navigation"] a`).
		EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			title := strings.TrimSpace(sel.Text())
			href := sel.AttrOr("href", "")
			if title == "" || href == "" || len(title) >= 50 ||
				strings.HasPrefix(href, "#") || strings.Contains(href, "javascript:") {
				return true
			}
			if _, ok := seen[href]; ok {
				return true
			}
			seen[href] = struct{}{}
			items = append(items, models.NavigationItem{Title: title, URL: href})
			return len(items) < maxNavigationItems
		})

	return items
}

func extractFooterLinks(doc *goquery.Document) []string {
	var links []string
	seen := make(map[string]struct{})

	doc.Find("footer a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text == "" || len(text) >= 50 {
			return true
		}
		if _, ok := seen[text]; ok {
			return true
		}
		seen[text] = struct{}{}
		links = append(links, text)
		return len(links) < maxFooterLinks
	})

	return links
}

func hasLinkContaining(doc *goquery.Document, keywords ...string) bool {
	for _, keyword := range keywords {
		if doc.Find(`a[href*="`+keyword+`"]`).Length() > 0 {
			return true
		}
	}
	return false
}

func extractSiteStructure(doc *goquery.Document) models.SiteStructure {
	return models.SiteStructure{
		MainNavigation:    extractNavigation(doc),
		FooterLinks:       extractFooterLinks(doc),
		CollectionsCount:  doc.Find(`a[href*="/collections/"]`).Length(),
		HasAboutPage:      hasLinkContaining(doc, "about", "about-us", "our-story"),
		HasContactPage:    hasLinkContaining(doc, "contact", "contact-us"),
		HasFAQPage:        hasLinkContaining(doc, "faq", "faqs", "help", "support"),
		HasBlogSection:    hasLinkContaining(doc, "blog", "blogs", "news", "articles"),
		HasReturnPolicy:   hasLinkContaining(doc, "return", "refund", "exchange"),
		HasShippingPolicy: hasLinkContaining(doc, "shipping", "delivery"),
	}
}

func extractSEOAnalysis(doc *goquery.Document) models.SEOAnalysis {
	title := doc.Find("title").First().Text()
	metaDescription := doc.Find(`meta[name="description"]`).AttrOr("content", "")

	return models.SEOAnalysis{
		HasMetaDescription:    metaDescription != "",
		MetaDescriptionLength: len(metaDescription),
		HasTitleTag:           title != "",
		TitleLength:           len(title),
		HasOGTags:             doc.Find(`meta[property^="og:"]`).Length() > 0,
		HasTwitterCards:       doc.Find(`meta[name^="twitter:"]`).Length() > 0,
		HasStructuredData:     doc.Find(`script[type="application/ld+json"]`).Length() > 0,
		CanonicalURL:          doc.Find(`link[rel="canonical"]`).AttrOr("href", ""),
	}
}
