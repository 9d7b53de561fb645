// internal/hangman/secret.go

package hangman

import "math/rand/v2"

// RandSource supplies the randomness used to resolve a secret word.
// *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// globalRand uses the math/rand/v2 top-level generator.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// ResolveSecret picks a concrete word from the live set. A singleton live
// set always resolves to its word; otherwise the word is drawn from the
// engine's RandSource, so repeated calls may differ. Callers that need a
// stable answer must keep the first result.
func (e *Engine) ResolveSecret() (string, error) {
	if e.round == nil {
		return "", ErrNoRound
	}
	live := e.round.live
	switch len(live) {
	case 0:
		return "", ErrNoLiveWords
	case 1:
		return live[0], nil
	}
	return live[e.rand.IntN(len(live))], nil
}
