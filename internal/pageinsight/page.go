package pageinsight

import (
	"bytes"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/Bahjat/site-audit/internal/platform/errs"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// boilerplateSelector matches elements removed before visible text is read.
const boilerplateSelector = "script, style, nav, header, footer"

// Page is a fetched document ready for analysis: the response, its text
// decoded to UTF-8 and the parsed tree. Analyzers must not modify Doc;
// CleanDocument returns a private copy for destructive work.
type Page struct {
	URL         *url.URL
	Result      *FetchResult
	Text        string
	Doc         *goquery.Document
	Doctype     string
	HTMLVersion string
}

// NewPage decodes and parses res. pageURL is the URL that was requested.
func NewPage(pageURL *url.URL, res *FetchResult) (*Page, error) {
	text := decodeBody(res.Body, res.ContentType)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, &errs.AppError{Kind: errs.ParsingFailed, Message: "failed to parse the HTML content", Cause: err}
	}

	doctype, version := leadingDoctype(text)
	return &Page{
		URL:         pageURL,
		Result:      res,
		Text:        text,
		Doc:         doc,
		Doctype:     doctype,
		HTMLVersion: version,
	}, nil
}

// decodeBody converts body to UTF-8 using the Content-Type charset, a BOM
// or a <meta charset> declaration, in that order of precedence. Without any
// declaration a body that is valid UTF-8 is kept as is.
func decodeBody(body []byte, contentType string) string {
	if len(body) == 0 {
		return ""
	}
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" || enc == nil || (!certain && utf8.Valid(body)) {
		return string(body)
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}

// CleanDocument parses a fresh copy of the page with script, style, nav,
// header and footer elements removed.
func (p *Page) CleanDocument() (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.Text))
	if err != nil {
		return nil, &errs.AppError{Kind: errs.ParsingFailed, Message: "failed to parse the HTML content", Cause: err}
	}
	doc.Find(boilerplateSelector).Remove()
	return doc, nil
}

// leadingDoctype returns the doctype declaration when it is the first node
// of the document, ignoring leading whitespace, and its HTML version.
func leadingDoctype(text string) (string, string) {
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		switch tt {
		case html.TextToken:
			if len(bytes.TrimSpace(z.Text())) == 0 {
				continue
			}
			return "", "Unknown"
		case html.DoctypeToken:
			token := z.Token()
			return token.String(), detectHTMLVersion(token)
		default:
			return "", "Unknown"
		}
	}
}

func detectHTMLVersion(token html.Token) string {
	// The tokenizer stores the full doctype in token.Data.
	// HTML5: Data = "html"
	// Legacy: Data = `HTML PUBLIC "-//W3C//DTD HTML 4.01//EN" "..."`
	// https://www.w3.org/QA/2002/04/valid-dtd-list.html
	data := strings.ToLower(token.Data)

	if !strings.Contains(data, "public") {
		if strings.TrimSpace(data) == "html" {
			return "HTML5"
		}
		return "Unknown"
	}

	switch {
	case strings.Contains(data, "xhtml 1.1") || strings.Contains(data, "xhtml basic 1.1"):
		return "XHTML 1.1"
	case strings.Contains(data, "xhtml 1.0"):
		return "XHTML 1.0"
	case strings.Contains(data, "html 4.01"):
		return "HTML 4.01"
	default:
		return "Unknown"
	}
}

// pageTitle returns the first non-empty <title> text, trimmed.
func pageTitle(doc *goquery.Document) string {
	var title string
	doc.Find("title").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title = strings.TrimSpace(s.Text())
		return title == ""
	})
	return title
}

// metaContent returns the content of the first meta tag whose name, or
// failing that property, equals name.
func metaContent(doc *goquery.Document, name string) string {
	sel := doc.Find(`meta[name="` + name + `"]`).First()
	if sel.Length() == 0 {
		sel = doc.Find(`meta[property="` + name + `"]`).First()
	}
	return sel.AttrOr("content", "")
}
