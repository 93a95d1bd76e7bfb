package model

import "time"

// Analysis modes.
const (
	ModeFull  = "full"
	ModeQuick = "quick"
)

// AnalysisReport is the result of analyzing one URL. In full mode every
// section is set, failed analyzers included. Quick mode sets only BasicInfo
// and Performance.
type AnalysisReport struct {
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
	Mode      string    `json:"mode"`

	BasicInfo         *Section[BasicInfo]         `json:"basic_info,omitempty"`
	SEOAnalysis       *Section[SEOAnalysis]       `json:"seo_analysis,omitempty"`
	Performance       *Section[Performance]       `json:"performance,omitempty"`
	ContentAnalysis   *Section[ContentAnalysis]   `json:"content_analysis,omitempty"`
	TechnicalAnalysis *Section[TechnicalAnalysis] `json:"technical_analysis,omitempty"`
	SecurityAnalysis  *Section[SecurityAnalysis]  `json:"security_analysis,omitempty"`
	KeywordAnalysis   *Section[KeywordAnalysis]   `json:"keyword_analysis,omitempty"`
	SocialMedia       *Section[SocialMedia]       `json:"social_media,omitempty"`
	MobileAnalysis    *Section[MobileAnalysis]    `json:"mobile_analysis,omitempty"`
}

// Failures returns the analyzer name and message of every failed section.
func (r *AnalysisReport) Failures() map[string]string {
	out := make(map[string]string)
	add := func(name string, failed bool, msg string) {
		if failed {
			out[name] = msg
		}
	}
	add("basic_info", r.BasicInfo.Failed(), r.BasicInfo.Err())
	add("seo_analysis", r.SEOAnalysis.Failed(), r.SEOAnalysis.Err())
	add("performance", r.Performance.Failed(), r.Performance.Err())
	add("content_analysis", r.ContentAnalysis.Failed(), r.ContentAnalysis.Err())
	add("technical_analysis", r.TechnicalAnalysis.Failed(), r.TechnicalAnalysis.Err())
	add("security_analysis", r.SecurityAnalysis.Failed(), r.SecurityAnalysis.Err())
	add("keyword_analysis", r.KeywordAnalysis.Failed(), r.KeywordAnalysis.Err())
	add("social_media", r.SocialMedia.Failed(), r.SocialMedia.Err())
	add("mobile_analysis", r.MobileAnalysis.Failed(), r.MobileAnalysis.Err())
	return out
}
