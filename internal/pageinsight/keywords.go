package pageinsight

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Bahjat/site-audit/internal/model"
	"github.com/Bahjat/site-audit/internal/textkit"
	"github.com/PuerkitoBio/goquery"
)

const densityWordCount = 20

// AnalyzeKeywords counts words over the title, meta description, h1-h3
// headings and boilerplate-free body text. It always uses the plain word
// tokenizer. Densities cover the first 20 filtered words in order of first
// appearance, not the most frequent ones.
func AnalyzeKeywords(p *Page, tk *textkit.Toolkit) (model.KeywordAnalysis, error) {
	clean, err := p.CleanDocument()
	if err != nil {
		return model.KeywordAnalysis{}, err
	}

	title := pageTitle(clean)
	var headings []string
	clean.Find("h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, strings.TrimSpace(s.Text()))
	})

	corpus := strings.ToLower(fmt.Sprintf("%s %s %s %s",
		title, metaContent(clean, "description"), strings.Join(headings, " "), clean.Text()))
	corpus = strings.Join(strings.Fields(corpus), " ")

	out := model.KeywordAnalysis{
		KeywordDensity: model.Pairs[float64]{},
		TopKeywords:    model.Pairs[int]{},
		TitleKeywords:  model.Pairs[int]{},
		MetaKeywords:   metaContent(p.Doc, "keywords"),
	}
	if corpus == "" {
		return out, nil
	}

	var simple textkit.SimpleTokenizer
	words := simple.Tokenize(corpus)
	freq := textkit.Frequencies(words)

	var filtered model.Pairs[int]
	for _, kv := range freq {
		if tk.IsKeyword(kv.Key) {
			filtered = append(filtered, kv)
		}
	}

	out.TotalWords = len(words)
	out.UniqueWords = len(freq)
	if out.TotalWords > 0 {
		for _, kv := range filtered.Head(densityWordCount) {
			out.KeywordDensity = append(out.KeywordDensity, model.Pair[float64]{
				Key:   kv.Key,
				Value: float64(kv.Value) / float64(out.TotalWords) * 100,
			})
		}
	}
	if top := textkit.MostCommon(filtered, topWordCount); top != nil {
		out.TopKeywords = top
	}

	var titleWords []string
	for _, w := range simple.Tokenize(title) {
		if !tk.StopWords.Contains(w) && utf8.RuneCountInString(w) > 2 {
			titleWords = append(titleWords, w)
		}
	}
	if tw := textkit.Frequencies(titleWords); tw != nil {
		out.TitleKeywords = tw
	}
	return out, nil
}
