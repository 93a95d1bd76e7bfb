package textkit

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// LanguageDetector guesses the natural language of a text.
type LanguageDetector interface {
	// Detect returns a lowercase ISO 639-1 code and whether detection succeeded.
	Detect(text string) (string, bool)
}

// LinguaDetector detects languages with n-gram models. The models are built
// on first use.
type LinguaDetector struct {
	languages []lingua.Language

	once     sync.Once
	detector lingua.LanguageDetector
}

// NewLinguaDetector returns a detector restricted to languages. Fewer than
// two languages means every supported language.
func NewLinguaDetector(languages ...lingua.Language) *LinguaDetector {
	return &LinguaDetector{languages: languages}
}

func (d *LinguaDetector) build() {
	var builder lingua.LanguageDetectorBuilder
	if len(d.languages) >= 2 {
		builder = lingua.NewLanguageDetectorBuilder().FromLanguages(d.languages...)
	} else {
		builder = lingua.NewLanguageDetectorBuilder().FromAllLanguages()
	}
	d.detector = builder.WithLowAccuracyMode().Build()
}

// Detect implements LanguageDetector.
func (d *LinguaDetector) Detect(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	d.once.Do(d.build)

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
