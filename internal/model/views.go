package model

import (
	"encoding/json"
	"fmt"
)

// NotAvailable replaces basic fields that could not be collected.
const NotAvailable = "N/A"

// Summary is a flat, display-oriented view of an AnalysisReport.
// StatusCode holds an int, or NotAvailable when basic info is missing.
type Summary struct {
	URL              string  `json:"url"`
	StatusCode       any     `json:"status_code"`
	Title            string  `json:"title"`
	ResponseTime     float64 `json:"response_time"`
	ContentSize      int     `json:"content_size"`
	Server           string  `json:"server"`
	PerformanceScore float64 `json:"performance_score"`
	AvgResponseTime  float64 `json:"avg_response_time"`
	InternalLinks    int     `json:"internal_links"`
	ExternalLinks    int     `json:"external_links"`
	TotalImages      int     `json:"total_images"`
	ImagesWithoutAlt int     `json:"images_without_alt"`
	WordCount        int     `json:"word_count"`
	ParagraphCount   int     `json:"paragraph_count"`
	ReadingEase      float64 `json:"reading_ease"`
	HTTPSEnabled     bool    `json:"https_enabled"`
	SecurityHeaders  int     `json:"security_headers"`
	MobileFriendly   int     `json:"mobile_friendly"`
	ViewportMeta     bool    `json:"viewport_meta"`
}

// DashboardData feeds the dashboard charts. Stats are illustrative values
// scaled from real metrics, not measurements.
type DashboardData struct {
	Stats           DashboardStats  `json:"stats"`
	Keywords        []KeywordCount  `json:"keywords"`
	PerformanceData PerformanceData `json:"performance_data"`
}

// DashboardStats are the synthetic headline numbers.
type DashboardStats struct {
	TotalVisitors float64 `json:"total_visitors"`
	PageViews     int     `json:"page_views"`
	Clicks        int     `json:"clicks"`
	AvgSession    float64 `json:"avg_session"`
}

// PerformanceData holds the [min, avg, max] response times and score axes.
type PerformanceData struct {
	ResponseTimes []float64 `json:"response_times"`
	Scores        Scores    `json:"scores"`
}

// Scores are the four composite 0-100 axes. SEO is not capped.
type Scores struct {
	SEO         int     `json:"seo"`
	Performance float64 `json:"performance"`
	Security    int     `json:"security"`
	Mobile      int     `json:"mobile"`
}

// KeywordCount marshals as a two element JSON array: ["word", count].
type KeywordCount struct {
	Word  string
	Count int
}

func (k KeywordCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{k.Word, k.Count})
}

func (k *KeywordCount) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("keyword entry: want 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &k.Word); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &k.Count)
}

// AnalyzeResponse is the envelope returned by the analyze endpoint.
type AnalyzeResponse struct {
	Success       bool            `json:"success"`
	Results       *AnalysisReport `json:"results,omitempty"`
	DashboardData *DashboardData  `json:"dashboard_data,omitempty"`
	Summary       *Summary        `json:"summary,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// QuickTestResponse is the envelope returned by the quick-test endpoint.
// StatusCode and ResponseTime are null when the page could not be fetched.
type QuickTestResponse struct {
	Success      bool     `json:"success"`
	URL          string   `json:"url,omitempty"`
	StatusCode   *int     `json:"status_code"`
	ResponseTime *float64 `json:"response_time"`
	Title        string   `json:"title"`
	Error        string   `json:"error,omitempty"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
