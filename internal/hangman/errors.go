// internal/hangman/errors.go
//
// Error values returned by the engine. Callers match them with errors.Is;
// most are wrapped with extra detail via fmt.Errorf("%w: ...").

package hangman

import "errors"

var (
	// ErrEmptyDictionary is returned by New/NewDictionary when no words are given.
	ErrEmptyDictionary = errors.New("hangman: empty dictionary")

	// ErrInvalidRoundConfig is returned by StartRound for a length with no
	// words, a non-positive wrong-guess budget or an unknown difficulty.
	ErrInvalidRoundConfig = errors.New("hangman: invalid round config")

	// ErrDuplicateGuess is returned by MakeGuess for a letter already guessed this round.
	ErrDuplicateGuess = errors.New("hangman: letter already guessed")

	// ErrNoLiveWords is returned by ResolveSecret when the live set is empty.
	ErrNoLiveWords = errors.New("hangman: no live words")

	// ErrNoRound is returned by round operations before the first StartRound.
	ErrNoRound = errors.New("hangman: no round in progress")
)
