package pageinsight

import (
	"strings"

	"github.com/Bahjat/site-audit/internal/model"
)

// ExtractBasicInfo reads the response metadata and the page's title,
// description, language and charset.
func ExtractBasicInfo(p *Page) model.BasicInfo {
	res := p.Result
	return model.BasicInfo{
		StatusCode:      res.StatusCode,
		ResponseTime:    res.Elapsed.Seconds(),
		ContentLength:   len(res.Body),
		ContentType:     res.ContentType,
		Server:          res.Header.Get("Server"),
		Title:           pageTitle(p.Doc),
		MetaDescription: metaContent(p.Doc, "description"),
		Language:        p.Doc.Find("html").First().AttrOr("lang", ""),
		Charset:         ExtractCharset(res.ContentType),
	}
}

// ExtractCharset returns the text after "charset=" up to the next ";", or ""
// when contentType declares no charset.
func ExtractCharset(contentType string) string {
	_, after, found := strings.Cut(contentType, "charset=")
	if !found {
		return ""
	}
	value, _, _ := strings.Cut(after, ";")
	return value
}
