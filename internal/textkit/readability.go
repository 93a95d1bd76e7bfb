package textkit

import (
	"math"

	"github.com/jdkato/prose/summarize"
)

// Readability scores how easy a text is to read.
type Readability interface {
	// Score returns the Flesch reading ease and Flesch-Kincaid grade level.
	Score(text string) (ease, grade float64)
}

// FleschReadability computes the Flesch formulas over sentence, word and
// syllable counts.
type FleschReadability struct{}

// Score returns 0, 0 for empty text or text without countable sentences.
func (FleschReadability) Score(text string) (float64, float64) {
	if text == "" {
		return 0, 0
	}
	doc := summarize.NewDocument(text)
	if doc.NumWords == 0 || doc.NumSentences == 0 {
		return 0, 0
	}
	return finite(doc.FleschReadingEase()), finite(doc.FleschKincaid())
}

// NoReadability is used when readability scoring is turned off.
type NoReadability struct{}

// Score always returns zeros.
func (NoReadability) Score(string) (float64, float64) { return 0, 0 }

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
