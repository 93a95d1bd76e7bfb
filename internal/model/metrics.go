package model

// BasicInfo describes a single fetch of the page.
type BasicInfo struct {
	StatusCode      int     `json:"status_code"`
	ResponseTime    float64 `json:"response_time"`
	ContentLength   int     `json:"content_length"`
	ContentType     string  `json:"content_type"`
	Server          string  `json:"server"`
	Title           string  `json:"title"`
	MetaDescription string  `json:"meta_description"`
	Language        string  `json:"language"`
	Charset         string  `json:"charset"`
}

// SEOAnalysis holds the on-page search engine signals.
type SEOAnalysis struct {
	MetaTags  map[string]string   `json:"meta_tags"`
	Headings  map[string][]string `json:"headings"`
	Images    ImageStats          `json:"images"`
	Links     LinkStats           `json:"links"`
	RobotsTxt bool                `json:"robots_txt"`
	Sitemap   bool                `json:"sitemap"`
}

// ImageStats counts images and missing accessibility attributes.
type ImageStats struct {
	TotalImages        int `json:"total_images"`
	ImagesWithoutAlt   int `json:"images_without_alt"`
	ImagesWithoutTitle int `json:"images_without_title"`
}

// LinkStats breaks down the links found on a page. The lists hold at most
// MaxListedLinks entries while the counts cover every classified link.
type LinkStats struct {
	InternalCount int      `json:"internal_count"`
	ExternalCount int      `json:"external_count"`
	InternalLinks []string `json:"internal_links"`
	ExternalLinks []string `json:"external_links"`
}

// MaxListedLinks caps the internal and external link lists.
const MaxListedLinks = 10

// Performance holds response time sampling results. Times are in seconds.
type Performance struct {
	AvgResponseTime  float64   `json:"avg_response_time"`
	MinResponseTime  float64   `json:"min_response_time"`
	MaxResponseTime  float64   `json:"max_response_time"`
	ResponseTimes    []float64 `json:"response_times"`
	DNSLookupTime    float64   `json:"dns_lookup_time"`
	ContentSize      int       `json:"content_size"`
	Compression      bool      `json:"compression"`
	Caching          string    `json:"caching"`
	PerformanceScore float64   `json:"performance_score"`
}

// ContentAnalysis describes the visible text of the page.
type ContentAnalysis struct {
	WordCount        int          `json:"word_count"`
	CharacterCount   int          `json:"character_count"`
	ParagraphCount   int          `json:"paragraph_count"`
	ReadingEase      float64      `json:"reading_ease"`
	ReadingGrade     float64      `json:"reading_grade"`
	MostCommonWords  Pairs[int]   `json:"most_common_words"`
	ContentDensity   float64      `json:"content_density"`
	DetectedLanguage string       `json:"detected_language,omitempty"`
	Article          *ArticleInfo `json:"article,omitempty"`
}

// ArticleInfo is the main article metadata found by readability extraction.
type ArticleInfo struct {
	Title         string `json:"title"`
	Byline        string `json:"byline,omitempty"`
	Excerpt       string `json:"excerpt,omitempty"`
	SiteName      string `json:"site_name,omitempty"`
	Image         string `json:"image,omitempty"`
	PublishedTime string `json:"published_time,omitempty"`
	WordCount     int    `json:"word_count"`
}

// TechnicalAnalysis describes markup and the detected technology stack.
type TechnicalAnalysis struct {
	Doctype          string   `json:"doctype"`
	HTMLVersion      string   `json:"html_version"`
	HTML5            bool     `json:"html5"`
	JavaScriptFiles  int      `json:"javascript_files"`
	CSSFiles         int      `json:"css_files"`
	InlineScripts    int      `json:"inline_scripts"`
	InlineStyles     int      `json:"inline_styles"`
	SchemaMarkup     int      `json:"schema_markup"`
	ViewportMeta     bool     `json:"viewport_meta"`
	ResponsiveDesign bool     `json:"responsive_design"`
	Technologies     []string `json:"technologies"`
}

// SecurityAnalysis describes transport security and protective headers.
type SecurityAnalysis struct {
	HTTPS           bool            `json:"https"`
	SSLCertificate  Certificate     `json:"ssl_certificate"`
	SecurityHeaders SecurityHeaders `json:"security_headers"`
	MixedContent    bool            `json:"mixed_content"`
}

// Certificate is the peer certificate summary. It is empty for plain HTTP
// pages and holds only Error when the TLS probe failed.
type Certificate struct {
	Issuer        map[string]string `json:"issuer,omitempty"`
	Subject       map[string]string `json:"subject,omitempty"`
	Expires       string            `json:"expires,omitempty"`
	ExpiresInDays *int              `json:"expires_in_days,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// SecurityHeaders holds the raw header values; nil means the header was absent.
type SecurityHeaders struct {
	StrictTransportSecurity *string `json:"strict_transport_security"`
	ContentSecurityPolicy   *string `json:"content_security_policy"`
	XFrameOptions           *string `json:"x_frame_options"`
	XContentTypeOptions     *string `json:"x_content_type_options"`
}

// Count returns how many headers are present with a non-empty value.
func (h SecurityHeaders) Count() int {
	n := 0
	for _, v := range []*string{h.StrictTransportSecurity, h.ContentSecurityPolicy, h.XFrameOptions, h.XContentTypeOptions} {
		if v != nil && *v != "" {
			n++
		}
	}
	return n
}

// KeywordAnalysis holds keyword frequencies over title, description,
// headings and body text. KeywordDensity is in percent.
type KeywordAnalysis struct {
	TotalWords     int            `json:"total_words"`
	UniqueWords    int            `json:"unique_words"`
	KeywordDensity Pairs[float64] `json:"keyword_density"`
	TopKeywords    Pairs[int]     `json:"top_keywords"`
	TitleKeywords  Pairs[int]     `json:"title_keywords"`
	MetaKeywords   string         `json:"meta_keywords"`
}

// SocialMedia holds social sharing metadata and outbound social links.
type SocialMedia struct {
	OpenGraph          map[string]string `json:"open_graph"`
	TwitterCards       map[string]string `json:"twitter_cards"`
	SocialLinks        []SocialLink      `json:"social_links"`
	SocialShareButtons int               `json:"social_share_buttons"`
}

// SocialLink is an anchor pointing at a social platform.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// MobileAnalysis describes mobile friendliness signals.
type MobileAnalysis struct {
	ViewportMeta        bool   `json:"viewport_meta"`
	ViewportContent     string `json:"viewport_content"`
	MediaQueriesCount   int    `json:"media_queries_count"`
	ResponsiveImages    int    `json:"responsive_images"`
	MobileFriendlyScore int    `json:"mobile_friendly_score"`
}
