package pageinsight

import (
	"regexp"
	"strings"

	"github.com/Bahjat/site-audit/internal/model"
	"github.com/PuerkitoBio/goquery"
)

var socialDomains = []string{
	"facebook.com", "twitter.com", "instagram.com", "linkedin.com",
	"youtube.com", "tiktok.com", "pinterest.com",
}

var shareIntent = regexp.MustCompile(`(facebook|twitter|linkedin)\.com/share`)

// AnalyzeSocial collects Open Graph and Twitter Card tags, links to social
// platforms and share buttons. An href naming several platforms is listed
// once per platform.
func AnalyzeSocial(p *Page) model.SocialMedia {
	doc := p.Doc
	out := model.SocialMedia{
		OpenGraph:    make(map[string]string),
		TwitterCards: make(map[string]string),
		SocialLinks:  []model.SocialLink{},
	}

	doc.Find(`meta[property^="og:"]`).Each(func(_ int, s *goquery.Selection) {
		out.OpenGraph[s.AttrOr("property", "")] = s.AttrOr("content", "")
	})
	doc.Find(`meta[name^="twitter:"]`).Each(func(_ int, s *goquery.Selection) {
		out.TwitterCards[s.AttrOr("name", "")] = s.AttrOr("content", "")
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		for _, domain := range socialDomains {
			if strings.Contains(href, domain) {
				out.SocialLinks = append(out.SocialLinks, model.SocialLink{Platform: domain, URL: href})
			}
		}
		if shareIntent.MatchString(href) {
			out.SocialShareButtons++
		}
	})
	return out
}
