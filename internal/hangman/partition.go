// internal/hangman/partition.go

package hangman

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Partition groups live words by their reveal pattern under guessed.
// Within a group, words keep the relative order they had in live.
// Letters are matched exactly; no case folding is applied.
func Partition(live []string, guessed mapset.Set[rune]) map[string][]string {
	out := make(map[string][]string)
	for _, w := range live {
		p := RevealPattern(w, guessed)
		out[p] = append(out[p], w)
	}
	return out
}

// RevealPattern replaces every rune of word that is not in guessed by Wildcard.
func RevealPattern(word string, guessed mapset.Set[rune]) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if guessed.Contains(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(Wildcard)
		}
	}
	return b.String()
}

// blankPattern is the pattern of a round before any guess.
func blankPattern(length int) string {
	return strings.Repeat(string(Wildcard), length)
}
