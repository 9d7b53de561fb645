// internal/hangman/family.go
//
// A Family is one group of live words that share a reveal pattern for the
// current guess history. Families are ranked by how hard they leave the
// round for the guesser:
//
//  1. more words is harder;
//  2. on equal size, more wildcards (fewer letters shown) is harder;
//  3. on equal size and wildcards, the lexicographically smaller pattern
//     is harder.
//
// Rule 3 is an arbitrary but fixed tie-break. Reversing it changes which
// family is adopted on ties, so it is covered by dedicated tests.

package hangman

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Wildcard marks an unrevealed position in a pattern.
const Wildcard = '-'

// Family pairs a reveal pattern with the live words producing it.
// Words keep the order they had in the live set.
type Family struct {
	Pattern string
	Words   []string
}

// Size is the number of words in the family.
func (f Family) Size() int { return len(f.Words) }

// Wildcards counts unrevealed positions in the family's pattern.
func (f Family) Wildcards() int {
	return strings.Count(f.Pattern, string(Wildcard))
}

// Harder reports whether f ranks strictly harder than o.
func (f Family) Harder(o Family) bool {
	return compareFamilies(f, o) > 0
}

// compareFamilies orders families by ascending hardness: it is negative
// when a is easier than b and positive when a is harder.
func compareFamilies(a, b Family) int {
	if d := a.Size() - b.Size(); d != 0 {
		return d
	}
	if d := a.Wildcards() - b.Wildcards(); d != 0 {
		return d
	}
	// Smaller pattern is harder, so the comparison is reversed.
	return strings.Compare(b.Pattern, a.Pattern)
}

// Families turns a partition into a slice sorted by ascending hardness:
// the hardest family is last, the second hardest is next to last.
// Pattern keys are unique, so the order is total and deterministic.
func Families(partition map[string][]string) []Family {
	fams := lo.MapToSlice(partition, func(pattern string, words []string) Family {
		return Family{Pattern: pattern, Words: words}
	})
	slices.SortFunc(fams, compareFamilies)
	return fams
}
