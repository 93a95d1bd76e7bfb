// Package textkit holds the text capabilities the analyzers depend on:
// tokenizing, stop-word filtering, readability, language detection and
// article extraction. Each capability has a built-in default and is chosen
// once, when the Toolkit is built.
package textkit

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Bahjat/site-audit/internal/platform/errs"
)

// Tokenizer and stop word names accepted by Options.
const (
	TokenizerSimple   = "simple"
	TokenizerTreebank = "treebank"

	StopWordsBuiltin  = "builtin"
	StopWordsExtended = "extended"
)

// Options selects the capabilities of a Toolkit.
type Options struct {
	Tokenizer      string
	StopWords      string
	Readability    bool
	DetectLanguage bool
	ExtractArticle bool
}

// Toolkit is an immutable bundle of text capabilities. Language and Article
// are nil when turned off.
type Toolkit struct {
	Tokenizer   Tokenizer
	StopWords   StopWords
	Readability Readability
	Language    LanguageDetector
	Article     ArticleExtractor
}

// New builds a Toolkit from opts. Empty names select the simple tokenizer
// and the builtin stop words.
func New(opts Options) (*Toolkit, error) {
	tk := &Toolkit{Readability: NoReadability{}}

	switch strings.ToLower(opts.Tokenizer) {
	case "", TokenizerSimple:
		tk.Tokenizer = SimpleTokenizer{}
	case TokenizerTreebank:
		tk.Tokenizer = NewTreebankTokenizer()
	default:
		return nil, &errs.AppError{Kind: errs.CapabilityUnavailable, Message: fmt.Sprintf("unknown tokenizer %q", opts.Tokenizer)}
	}

	switch strings.ToLower(opts.StopWords) {
	case "", StopWordsBuiltin:
		tk.StopWords = BuiltinStopWords()
	case StopWordsExtended:
		tk.StopWords = ExtendedStopWords()
	default:
		return nil, &errs.AppError{Kind: errs.CapabilityUnavailable, Message: fmt.Sprintf("unknown stop word set %q", opts.StopWords)}
	}

	if opts.Readability {
		tk.Readability = FleschReadability{}
	}
	if opts.DetectLanguage {
		tk.Language = NewLinguaDetector()
	}
	if opts.ExtractArticle {
		tk.Article = ReadabilityExtractor{}
	}
	return tk, nil
}

// Basic returns the fallback Toolkit: simple tokenizer, builtin stop words,
// no readability and no optional capabilities.
func Basic() *Toolkit {
	return &Toolkit{
		Tokenizer:   SimpleTokenizer{},
		StopWords:   BuiltinStopWords(),
		Readability: NoReadability{},
	}
}

// IsKeyword reports whether a lowercase token counts as a content word:
// longer than two characters, letters only and not a stop word.
func (tk *Toolkit) IsKeyword(word string) bool {
	if utf8.RuneCountInString(word) <= 2 || tk.StopWords.Contains(word) {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Keywords returns the lowercased tokens that pass IsKeyword, in order.
func (tk *Toolkit) Keywords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if tk.IsKeyword(tok) {
			out = append(out, tok)
		}
	}
	return out
}
