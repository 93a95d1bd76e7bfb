package textkit

import (
	"slices"

	"github.com/Bahjat/site-audit/internal/model"
)

// Frequencies counts words, keeping the order in which each word first
// appeared.
func Frequencies(words []string) model.Pairs[int] {
	index := make(map[string]int, len(words))
	var out model.Pairs[int]
	for _, w := range words {
		if i, ok := index[w]; ok {
			out[i].Value++
			continue
		}
		index[w] = len(out)
		out = append(out, model.Pair[int]{Key: w, Value: 1})
	}
	return out
}

// MostCommon returns the n highest counts. Equal counts keep their original
// order.
func MostCommon(freq model.Pairs[int], n int) model.Pairs[int] {
	sorted := slices.Clone(freq)
	slices.SortStableFunc(sorted, func(a, b model.Pair[int]) int {
		return b.Value - a.Value
	})
	return sorted.Head(n)
}
