package pageinsight

import (
	"net/url"
	"strings"

	"github.com/Bahjat/site-audit/internal/model"
	"github.com/PuerkitoBio/goquery"
)

var headingLevels = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// AnalyzeSEO collects meta tags, headings, image and link statistics.
// robotsTxt and sitemap are the results of the existence probes.
func AnalyzeSEO(p *Page, robotsTxt, sitemap bool) model.SEOAnalysis {
	doc := p.Doc

	metaTags := make(map[string]string)
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		if name == "" {
			name = s.AttrOr("property", "")
		}
		content := s.AttrOr("content", "")
		if name != "" && content != "" {
			metaTags[name] = content
		}
	})

	headings := make(map[string][]string, len(headingLevels))
	for _, level := range headingLevels {
		texts := []string{}
		doc.Find(level).Each(func(_ int, s *goquery.Selection) {
			texts = append(texts, strings.TrimSpace(s.Text()))
		})
		headings[level] = texts
	}

	var images model.ImageStats
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		images.TotalImages++
		if s.AttrOr("alt", "") == "" {
			images.ImagesWithoutAlt++
		}
		if s.AttrOr("title", "") == "" {
			images.ImagesWithoutTitle++
		}
	})

	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		hrefs = append(hrefs, s.AttrOr("href", ""))
	})

	return model.SEOAnalysis{
		MetaTags:  metaTags,
		Headings:  headings,
		Images:    images,
		Links:     ClassifyLinks(hrefs, p.URL),
		RobotsTxt: robotsTxt,
		Sitemap:   sitemap,
	}
}

// ClassifyLinks splits hrefs into internal and external links relative to
// page. Absolute http(s) links are internal when their host contains the
// page host. Root-relative links are resolved and always internal. Every
// other href (mailto:, javascript:, fragments, relative paths) is ignored.
// Only the first model.MaxListedLinks links of each kind are listed.
func ClassifyLinks(hrefs []string, page *url.URL) model.LinkStats {
	stats := model.LinkStats{InternalLinks: []string{}, ExternalLinks: []string{}}

	for _, href := range hrefs {
		switch {
		case strings.HasPrefix(href, "http"):
			host := href
			if u, err := url.Parse(href); err == nil && u.Host != "" {
				host = u.Host
			}
			if strings.Contains(host, page.Host) {
				stats.InternalCount++
				stats.InternalLinks = appendCapped(stats.InternalLinks, href)
			} else {
				stats.ExternalCount++
				stats.ExternalLinks = appendCapped(stats.ExternalLinks, href)
			}

		case strings.HasPrefix(href, "/"):
			resolved := page.Scheme + "://" + page.Host + href
			if ref, err := url.Parse(href); err == nil {
				resolved = page.ResolveReference(ref).String()
			}
			stats.InternalCount++
			stats.InternalLinks = appendCapped(stats.InternalLinks, resolved)
		}
	}
	return stats
}

func appendCapped(list []string, link string) []string {
	if len(list) >= model.MaxListedLinks {
		return list
	}
	return append(list, link)
}
