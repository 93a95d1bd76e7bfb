// Package report derives display views from an AnalysisReport and renders
// it as text, JSON or YAML. Nothing here fetches or mutates the report.
package report

import (
	"math"

	"github.com/Bahjat/site-audit/internal/model"
)

const dashboardKeywords = 15

// Summarize flattens report into the fields shown at a glance. Basic fields
// fall back to model.NotAvailable when basic info is missing or failed;
// every other failed section contributes zero values.
func Summarize(r *model.AnalysisReport) model.Summary {
	perf := r.Performance.Get()
	seo := r.SEOAnalysis.Get()
	content := r.ContentAnalysis.Get()
	security := r.SecurityAnalysis.Get()
	mobile := r.MobileAnalysis.Get()

	s := model.Summary{
		URL:              r.URL,
		StatusCode:       model.NotAvailable,
		Title:            model.NotAvailable,
		Server:           model.NotAvailable,
		PerformanceScore: round(perf.PerformanceScore, 1),
		AvgResponseTime:  round(perf.AvgResponseTime, 2),
		InternalLinks:    seo.Links.InternalCount,
		ExternalLinks:    seo.Links.ExternalCount,
		TotalImages:      seo.Images.TotalImages,
		ImagesWithoutAlt: seo.Images.ImagesWithoutAlt,
		WordCount:        content.WordCount,
		ParagraphCount:   content.ParagraphCount,
		ReadingEase:      round(content.ReadingEase, 1),
		HTTPSEnabled:     security.HTTPS,
		SecurityHeaders:  security.SecurityHeaders.Count(),
		MobileFriendly:   mobile.MobileFriendlyScore,
		ViewportMeta:     mobile.ViewportMeta,
	}

	if basic, ok := r.BasicInfo.Value(); ok {
		s.StatusCode = basic.StatusCode
		s.Title = basic.Title
		s.Server = basic.Server
		s.ResponseTime = round(basic.ResponseTime, 2)
		s.ContentSize = basic.ContentLength
	}
	return s
}

// BuildDashboard derives the chart data of the dashboard. The stats are
// illustrative values scaled from real metrics.
func BuildDashboard(r *model.AnalysisReport) model.DashboardData {
	perf := r.Performance.Get()
	seo := r.SEOAnalysis.Get()

	keywords := []model.KeywordCount{}
	for _, kv := range r.KeywordAnalysis.Get().TopKeywords.Head(dashboardKeywords) {
		keywords = append(keywords, model.KeywordCount{Word: kv.Key, Count: kv.Value})
	}

	security := 45
	if r.SecurityAnalysis.Get().HTTPS {
		security = 85
	}

	return model.DashboardData{
		Stats: model.DashboardStats{
			TotalVisitors: perf.PerformanceScore * 23,
			PageViews:     r.ContentAnalysis.Get().WordCount,
			Clicks:        seo.Links.InternalCount * 10,
			AvgSession:    perf.AvgResponseTime * 100,
		},
		Keywords: keywords,
		PerformanceData: model.PerformanceData{
			ResponseTimes: []float64{perf.MinResponseTime, perf.AvgResponseTime, perf.MaxResponseTime},
			Scores: model.Scores{
				SEO:         len(seo.MetaTags) * 10,
				Performance: perf.PerformanceScore,
				Security:    security,
				Mobile:      r.MobileAnalysis.Get().MobileFriendlyScore,
			},
		},
	}
}

// round rounds half away from zero to the given number of decimal places.
func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
