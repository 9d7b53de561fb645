// internal/hangman/selector.go

package hangman

// SelectFamily picks the family a round adopts after its g-th guess.
//
// families must be non-empty and sorted by ascending hardness, as returned
// by Families. With a single family the second hardest is the hardest.
func SelectFamily(families []Family, d Difficulty, g int) (Family, Pick) {
	hardest := len(families) - 1
	if d.wantsHardest(g) {
		return families[hardest], PickHardest
	}
	if len(families) < 2 {
		return families[hardest], PickOnlyFamily
	}
	return families[hardest-1], PickSecondHardest
}
