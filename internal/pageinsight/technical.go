package pageinsight

import (
	"strings"

	"github.com/Bahjat/site-audit/internal/model"
	"github.com/PuerkitoBio/goquery"
)

// scriptFingerprints map script src fragments to technology names. Order
// matters: the first matching fragment names the script.
var scriptFingerprints = []struct {
	fragment string
	name     string
}{
	{fragment: "react", name: "React"},
	{fragment: "vue", name: "Vue.js"},
	{fragment: "angular", name: "Angular"},
	{fragment: "jquery", name: "jQuery"},
}

// AnalyzeTechnical inspects markup structure and fingerprints the stack.
func AnalyzeTechnical(p *Page) model.TechnicalAnalysis {
	doc := p.Doc
	hasViewport := doc.Find(`meta[name="viewport"]`).Length() > 0

	return model.TechnicalAnalysis{
		Doctype:          p.Doctype,
		HTMLVersion:      p.HTMLVersion,
		HTML5:            strings.Contains(strings.ToUpper(p.Text), "<!DOCTYPE HTML>"),
		JavaScriptFiles:  doc.Find("script[src]").Length(),
		CSSFiles:         doc.Find(`link[rel~="stylesheet"]`).Length(),
		InlineScripts:    doc.Find("script:not([src])").Length(),
		InlineStyles:     doc.Find("style").Length(),
		SchemaMarkup:     doc.Find(`script[type="application/ld+json"]`).Length(),
		ViewportMeta:     hasViewport,
		ResponsiveDesign: hasViewport && hasInlineMediaQuery(doc),
		Technologies:     detectTechnologies(p.Result.Header.Get("Server"), doc),
	}
}

// hasInlineMediaQuery reports whether any <style> block contains @media.
// Linked stylesheets are not fetched.
func hasInlineMediaQuery(doc *goquery.Document) bool {
	found := false
	doc.Find("style").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = strings.Contains(s.Text(), "@media")
		return !found
	})
	return found
}

func detectTechnologies(server string, doc *goquery.Document) []string {
	techs := []string{}

	server = strings.ToLower(server)
	switch {
	case strings.Contains(server, "nginx"):
		techs = append(techs, "Nginx")
	case strings.Contains(server, "apache"):
		techs = append(techs, "Apache")
	}

	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src := strings.ToLower(s.AttrOr("src", ""))
		for _, fp := range scriptFingerprints {
			if strings.Contains(src, fp.fragment) {
				techs = append(techs, fp.name)
				break
			}
		}
	})
	return techs
}
