package textkit

import (
	"net/url"
	"strings"
	"time"

	"github.com/Bahjat/site-audit/internal/model"
	"github.com/Bahjat/site-audit/internal/platform/errs"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// ArticleExtractor finds the main article of an HTML document.
type ArticleExtractor interface {
	Extract(html string, pageURL *url.URL) (*model.ArticleInfo, error)
}

// ReadabilityExtractor extracts articles with the Readability algorithm.
type ReadabilityExtractor struct{}

// Extract returns a CapabilityUnavailable error when no article is found.
func (ReadabilityExtractor) Extract(html string, pageURL *url.URL) (*model.ArticleInfo, error) {
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), pageURL)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.CapabilityUnavailable, Message: "no readable article", Cause: err}
	}

	title := strings.TrimSpace(article.Title)
	if title == "" && strings.TrimSpace(article.Excerpt) == "" {
		return nil, &errs.AppError{Kind: errs.CapabilityUnavailable, Message: "no readable article"}
	}

	info := &model.ArticleInfo{
		Title:     title,
		Byline:    strings.TrimSpace(article.Byline),
		Excerpt:   strings.TrimSpace(article.Excerpt),
		SiteName:  strings.TrimSpace(article.SiteName),
		Image:     article.Image,
		WordCount: countWords(article.Content),
	}
	if article.PublishedTime != nil {
		info.PublishedTime = article.PublishedTime.UTC().Format(time.RFC3339)
	}
	return info, nil
}

func countWords(content string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return 0
	}
	return len(strings.Fields(doc.Text()))
}
