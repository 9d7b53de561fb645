// internal/hangman/engine.go
//
// Engine runs rounds of Evil Hangman against a fixed Dictionary.
// Responsibilities:
//   - Start rounds (length, wrong-guess budget, difficulty).
//   - Process guesses: partition the live words by reveal pattern, pick a
//     family with the difficulty policy, adopt it as the new live set.
//   - Score a guess as wrong exactly when the adopted pattern equals the
//     previous one.
//   - Expose read-only round state and resolve a secret word on demand.
//
// Notes:
//   - An Engine is not safe for concurrent use; callers serialize guesses.
//   - The engine does no I/O. Diagnostics go to an optional Observer.
//   - Every mutating call either commits fully or returns an error with no
//     state change.
package hangman

import (
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
)

// Report describes the outcome of one guess, for observers.
type Report struct {
	Letter     rune
	Number     int // guesses made this round, including this one
	Difficulty Difficulty
	Pick       Pick
	Pattern    string
	LiveWords  int
	Families   int
	Wrong      bool
}

// Observer is notified after every accepted guess.
type Observer func(Report)

// Option configures an Engine.
type Option func(*Engine)

// WithObserver installs an observer called after each guess.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithRand sets the randomness used by ResolveSecret.
func WithRand(r RandSource) Option {
	return func(e *Engine) {
		if r != nil {
			e.rand = r
		}
	}
}

// Engine is the adversarial game engine.
type Engine struct {
	dict     *Dictionary
	observer Observer
	rand     RandSource
	round    *round
}

// round is the mutable state of the round in progress.
type round struct {
	length     int
	maxWrong   int
	remaining  int
	difficulty Difficulty
	guesses    mapset.Set[rune]
	live       []string
	pattern    string
}

// New builds a Dictionary from words and an Engine over it.
// It fails with ErrEmptyDictionary when words is empty.
func New(words []string, opts ...Option) (*Engine, error) {
	d, err := NewDictionary(words)
	if err != nil {
		return nil, err
	}
	return NewEngine(d, opts...), nil
}

// NewEngine returns an Engine over an existing Dictionary.
func NewEngine(d *Dictionary, opts ...Option) *Engine {
	e := &Engine{dict: d, rand: globalRand{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CountByLength counts dictionary words of exactly n runes.
func (e *Engine) CountByLength(n int) int { return e.dict.CountByLength(n) }

// StartRound resets the engine for a new round. The live set becomes every
// dictionary word of the given length and the pattern is all wildcards.
func (e *Engine) StartRound(length, maxWrongGuesses int, d Difficulty) error {
	switch {
	case e.dict.CountByLength(length) == 0:
		return fmt.Errorf("%w: no words of length %d", ErrInvalidRoundConfig, length)
	case maxWrongGuesses < 1:
		return fmt.Errorf("%w: max wrong guesses %d < 1", ErrInvalidRoundConfig, maxWrongGuesses)
	case !d.Valid():
		return fmt.Errorf("%w: %s", ErrInvalidRoundConfig, d)
	}
	e.round = &round{
		length:     length,
		maxWrong:   maxWrongGuesses,
		remaining:  maxWrongGuesses,
		difficulty: d,
		guesses:    mapset.NewThreadUnsafeSet[rune](),
		live:       e.dict.WordsOfLength(length),
		pattern:    blankPattern(length),
	}
	return nil
}

// MakeGuess processes letter and returns every family of this guess as
// pattern -> word count, whichever family was adopted.
func (e *Engine) MakeGuess(letter rune) (map[string]int, error) {
	r := e.round
	if r == nil {
		return nil, ErrNoRound
	}
	if r.guesses.Contains(letter) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateGuess, letter)
	}
	if len(r.live) == 0 {
		return nil, ErrNoLiveWords
	}

	r.guesses.Add(letter)
	g := r.guesses.Cardinality()
	partition := Partition(r.live, r.guesses)
	fams := Families(partition)
	chosen, pick := SelectFamily(fams, r.difficulty, g)

	wrong := chosen.Pattern == r.pattern
	if wrong {
		r.remaining--
	}
	r.live = chosen.Words
	r.pattern = chosen.Pattern

	if e.observer != nil {
		e.observer(Report{
			Letter:     letter,
			Number:     g,
			Difficulty: r.difficulty,
			Pick:       pick,
			Pattern:    r.pattern,
			LiveWords:  len(r.live),
			Families:   len(fams),
			Wrong:      wrong,
		})
	}

	return lo.MapValues(partition, func(ws []string, _ string) int { return len(ws) }), nil
}

// InRound reports whether StartRound has succeeded at least once.
func (e *Engine) InRound() bool { return e.round != nil }

// Length is the word length of the current round.
func (e *Engine) Length() int {
	if e.round == nil {
		return 0
	}
	return e.round.length
}

// MaxWrongGuesses is the wrong-guess budget the round started with.
func (e *Engine) MaxWrongGuesses() int {
	if e.round == nil {
		return 0
	}
	return e.round.maxWrong
}

// Difficulty is the tier of the current round.
func (e *Engine) Difficulty() Difficulty {
	if e.round == nil {
		return 0
	}
	return e.round.difficulty
}

// LiveWordCount is the number of words still consistent with the round.
func (e *Engine) LiveWordCount() int {
	if e.round == nil {
		return 0
	}
	return len(e.round.live)
}

// LiveWords returns a copy of the live word set.
func (e *Engine) LiveWords() []string {
	if e.round == nil {
		return nil
	}
	return slices.Clone(e.round.live)
}

// RemainingWrongGuesses is how many more wrong guesses the round allows.
func (e *Engine) RemainingWrongGuesses() int {
	if e.round == nil {
		return 0
	}
	return e.round.remaining
}

// Pattern is the current reveal pattern, Wildcard for hidden positions.
func (e *Engine) Pattern() string {
	if e.round == nil {
		return ""
	}
	return e.round.pattern
}

// HasGuessed reports whether letter was guessed this round.
func (e *Engine) HasGuessed(letter rune) bool {
	return e.round != nil && e.round.guesses.Contains(letter)
}

// Guesses returns the guessed letters in ascending order.
func (e *Engine) Guesses() []rune {
	if e.round == nil {
		return []rune{}
	}
	gs := e.round.guesses.ToSlice()
	slices.Sort(gs)
	return gs
}

// GuessedLetters formats the guessed letters as "[a, c, e]".
func (e *Engine) GuessedLetters() string {
	letters := lo.Map(e.Guesses(), func(r rune, _ int) string { return string(r) })
	return "[" + strings.Join(letters, ", ") + "]"
}
