package pageinsight

import (
	"strings"
	"unicode/utf8"

	"github.com/Bahjat/site-audit/internal/model"
	"github.com/Bahjat/site-audit/internal/textkit"
)

const topWordCount = 20

// AnalyzeContent measures the visible text of the page: boilerplate is
// stripped, whitespace collapsed and the remaining words filtered through
// the toolkit's tokenizer and stop words. A page without visible text
// yields the zero result without tokenizing anything.
func AnalyzeContent(p *Page, tk *textkit.Toolkit) (model.ContentAnalysis, error) {
	clean, err := p.CleanDocument()
	if err != nil {
		return model.ContentAnalysis{}, err
	}

	text := strings.Join(strings.Fields(clean.Text()), " ")
	if text == "" {
		return model.ContentAnalysis{MostCommonWords: model.Pairs[int]{}}, nil
	}

	words := tk.Keywords(tk.Tokenizer.Tokenize(text))
	ease, grade := tk.Readability.Score(text)

	var density float64
	if n := len(p.Result.Body); n > 0 {
		density = float64(len(words)) / float64(n) * 1000
	}

	out := model.ContentAnalysis{
		WordCount:       len(words),
		CharacterCount:  utf8.RuneCountInString(text),
		ParagraphCount:  clean.Find("p").Length(),
		ReadingEase:     ease,
		ReadingGrade:    grade,
		MostCommonWords: textkit.MostCommon(textkit.Frequencies(words), topWordCount),
		ContentDensity:  density,
	}
	if out.MostCommonWords == nil {
		out.MostCommonWords = model.Pairs[int]{}
	}

	if tk.Language != nil {
		if lang, ok := tk.Language.Detect(text); ok {
			out.DetectedLanguage = lang
		}
	}
	if tk.Article != nil {
		if article, err := tk.Article.Extract(p.Text, p.URL); err == nil {
			out.Article = article
		}
	}
	return out, nil
}
