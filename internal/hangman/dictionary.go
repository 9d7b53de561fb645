// internal/hangman/dictionary.go
//
// Dictionary is the read-only word corpus rounds are drawn from.
// It is built once and may be shared by any number of engines.

package hangman

import (
	"slices"
	"unicode/utf8"

	"github.com/samber/lo"
)

// Dictionary holds distinct non-empty words indexed by length in runes.
type Dictionary struct {
	words    []string
	byLength map[int][]string
}

// NewDictionary de-duplicates words (keeping first occurrence order) and
// drops empty strings. It fails with ErrEmptyDictionary when nothing is left.
func NewDictionary(words []string) (*Dictionary, error) {
	uniq := lo.Uniq(lo.Filter(words, func(w string, _ int) bool { return w != "" }))
	if len(uniq) == 0 {
		return nil, ErrEmptyDictionary
	}
	return &Dictionary{
		words:    uniq,
		byLength: lo.GroupBy(uniq, utf8.RuneCountInString),
	}, nil
}

// Size is the number of distinct words.
func (d *Dictionary) Size() int { return len(d.words) }

// CountByLength counts words of exactly n runes. Any n is accepted.
func (d *Dictionary) CountByLength(n int) int {
	return len(d.byLength[n])
}

// Lengths lists the word lengths present, ascending.
func (d *Dictionary) Lengths() []int {
	ls := lo.Keys(d.byLength)
	slices.Sort(ls)
	return ls
}

// WordsOfLength returns a copy of the words with n runes.
func (d *Dictionary) WordsOfLength(n int) []string {
	return slices.Clone(d.byLength[n])
}

// Words returns a copy of every word in load order.
func (d *Dictionary) Words() []string {
	return slices.Clone(d.words)
}
