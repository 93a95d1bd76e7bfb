package textkit

import (
	"regexp"
	"strings"

	"github.com/jdkato/prose/tokenize"
)

// Tokenizer splits text into lowercase word tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// SimpleTokenizer extracts runs of letters, digits and underscores.
type SimpleTokenizer struct{}

// Tokenize lowercases text and returns every word-character run.
func (SimpleTokenizer) Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// TreebankTokenizer splits text the way the Penn Treebank does: punctuation
// and clitics such as "n't" become tokens of their own.
type TreebankTokenizer struct {
	tok *tokenize.TreebankWordTokenizer
}

// NewTreebankTokenizer returns a ready TreebankTokenizer.
func NewTreebankTokenizer() *TreebankTokenizer {
	return &TreebankTokenizer{tok: tokenize.NewTreebankWordTokenizer()}
}

// Tokenize lowercases text before splitting it.
func (t *TreebankTokenizer) Tokenize(text string) []string {
	return t.tok.Tokenize(strings.ToLower(text))
}
