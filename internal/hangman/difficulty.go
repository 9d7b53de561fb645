// internal/hangman/difficulty.go
//
// Difficulty tiers and the policy that maps a tier and a guess number to
// the family rank (hardest or second hardest) the engine adopts.

package hangman

import (
	"fmt"
	"strings"
)

// Difficulty is the adversarial tier of a round.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

const (
	mediumPeriod = 4 // MEDIUM yields on every 4th guess
	easyPeriod   = 2 // EASY yields on every even guess
)

// Valid reports whether d is one of the three tiers.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty maps "easy", "medium" or "hard" (any case) to a tier.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRoundConfig, s)
}

// Pick says which ranked family a guess adopted.
type Pick int

const (
	PickHardest Pick = iota
	PickSecondHardest
	// PickOnlyFamily: the policy asked for the second hardest family but
	// the partition had a single family.
	PickOnlyFamily
)

func (p Pick) String() string {
	switch p {
	case PickHardest:
		return "hardest"
	case PickSecondHardest:
		return "second"
	case PickOnlyFamily:
		return "only"
	}
	return fmt.Sprintf("pick(%d)", int(p))
}

// wantsHardest applies the tier policy for the g-th guess of a round
// (g counts the current guess).
func (d Difficulty) wantsHardest(g int) bool {
	switch d {
	case Medium:
		return g%mediumPeriod != 0
	case Easy:
		return g%easyPeriod == 1
	}
	return true
}
