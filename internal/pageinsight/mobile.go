package pageinsight

import (
	"strings"

	"github.com/Bahjat/site-audit/internal/model"
)

// AnalyzeMobile checks the viewport, media queries and responsive images.
// Media queries are counted as raw "@media" occurrences in the page text.
func AnalyzeMobile(p *Page) model.MobileAnalysis {
	viewport := p.Doc.Find(`meta[name="viewport"]`).First()
	content := viewport.AttrOr("content", "")
	mediaQueries := strings.Count(p.Text, "@media")

	return model.MobileAnalysis{
		ViewportMeta:        viewport.Length() > 0,
		ViewportContent:     content,
		MediaQueriesCount:   mediaQueries,
		ResponsiveImages:    p.Doc.Find("img[srcset]").Length(),
		MobileFriendlyScore: MobileScore(content, mediaQueries),
	}
}

// MobileScore awards 40 points for viewport content, 30 more when it sets
// width=device-width and 30 for any media query, capped at 100.
func MobileScore(viewportContent string, mediaQueries int) int {
	score := 0
	if viewportContent != "" {
		score += 40
		if strings.Contains(viewportContent, "width=device-width") {
			score += 30
		}
	}
	if mediaQueries > 0 {
		score += 30
	}
	return min(score, 100)
}
