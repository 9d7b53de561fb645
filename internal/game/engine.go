// internal/game/engine.go
//
// Session logic around one hangman.Engine round.
// Responsibilities:
//   - Start a round with validated settings.
//   - Validate raw guess input (exactly one letter) before the engine sees it.
//   - Track state transitions: playing → won (no wildcard left) or
//     lost (no wrong guesses left).
//   - Resolve the secret exactly once, when the game finishes.
//
// Notes:
//   - The engine is not concurrency-safe; Game serializes access with a mutex.
//   - randomID() is a compact hex identifier for correlating server state.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/robalobadob/evilhangman/internal/hangman"
)

// New starts a game over dict.
func New(dict *hangman.Dictionary, s Settings) (*Game, error) {
	var opts []hangman.Option
	if s.Rand != nil {
		opts = append(opts, hangman.WithRand(s.Rand))
	}
	if s.Observer != nil {
		opts = append(opts, hangman.WithObserver(s.Observer))
	}
	eng := hangman.NewEngine(dict, opts...)
	if err := eng.StartRound(s.Length, s.MaxWrong, s.Difficulty); err != nil {
		return nil, err
	}
	return &Game{
		ID:        randomID(),
		DailyDate: s.DailyDate,
		StartedAt: time.Now().UTC(),
		engine:    eng,
		foldCase:  s.FoldCase,
		state:     StatePlaying,
	}, nil
}

// ApplyGuess validates input and plays it.
//
// Validation rules:
//   - Game must not be finished.
//   - Input must be exactly one letter (surrounding spaces are ignored).
//   - The letter must not have been guessed (hangman.ErrDuplicateGuess).
func (g *Game) ApplyGuess(input string) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StatePlaying {
		return Outcome{}, ErrFinished
	}
	letter, err := g.parseLetter(input)
	if err != nil {
		return Outcome{}, err
	}

	before := g.engine.RemainingWrongGuesses()
	families, err := g.engine.MakeGuess(letter)
	if err != nil {
		return Outcome{}, err
	}

	switch {
	case !strings.ContainsRune(g.engine.Pattern(), hangman.Wildcard):
		g.finish(StateWon)
	case g.engine.RemainingWrongGuesses() <= 0:
		g.finish(StateLost)
	}
	if err := g.resolveIfFinished(); err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Letter:   string(letter),
		Wrong:    g.engine.RemainingWrongGuesses() < before,
		Families: families,
		View:     g.view(),
	}, nil
}

// View returns a snapshot of the game.
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view()
}

// State reports the lifecycle state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) view() View {
	v := View{
		ID:         g.ID,
		Length:     g.engine.Length(),
		Difficulty: g.engine.Difficulty().String(),
		MaxWrong:   g.engine.MaxWrongGuesses(),
		Remaining:  g.engine.RemainingWrongGuesses(),
		Pattern:    g.engine.Pattern(),
		Guessed:    g.engine.GuessedLetters(),
		Guesses:    len(g.engine.Guesses()),
		LiveWords:  g.engine.LiveWordCount(),
		State:      g.state,
		DailyDate:  g.DailyDate,
		StartedAt:  g.StartedAt,
	}
	if g.state != StatePlaying {
		v.Secret = g.secret
		at := g.finishedAt
		v.FinishedAt = &at
	}
	return v
}

func (g *Game) finish(s State) {
	g.state = s
	g.finishedAt = time.Now().UTC()
}

// resolveIfFinished fixes the secret the first time the game ends.
func (g *Game) resolveIfFinished() error {
	if g.state == StatePlaying || g.secret != "" {
		return nil
	}
	w, err := g.engine.ResolveSecret()
	if err != nil {
		return fmt.Errorf("resolve secret: %w", err)
	}
	g.secret = w
	return nil
}

// parseLetter accepts exactly one letter, optionally lowercased.
func (g *Game) parseLetter(input string) (rune, error) {
	s := strings.TrimSpace(input)
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLetter, input)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(r) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLetter, input)
	}
	if g.foldCase {
		r = unicode.ToLower(r)
	}
	return r, nil
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
