// internal/game/types.go
//
// Core type definitions for a playable Evil Hangman session.
// Defines:
//   - State: coarse lifecycle of a game (playing/won/lost).
//   - Settings: parameters a game is started with.
//   - Game: one round of the engine plus session bookkeeping.
//   - View/Outcome: read models handed to transports.

package game

import (
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/evilhangman/internal/hangman"
)

var (
	// ErrFinished is returned when guessing in a game that is over.
	ErrFinished = errors.New("game finished")
	// ErrInvalidLetter is returned for input that is not exactly one letter.
	ErrInvalidLetter = errors.New("invalid letter")
)

// State is the lifecycle of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Settings configure a new game.
type Settings struct {
	Length     int
	MaxWrong   int
	Difficulty hangman.Difficulty
	FoldCase   bool   // lowercase guesses before they reach the engine
	DailyDate  string // YYYY-MM-DD for daily rounds, "" otherwise

	Rand     hangman.RandSource // nil: math/rand/v2 global source
	Observer hangman.Observer
}

// Game is a single round in progress or finished.
// All methods are safe for concurrent use; guesses are serialized.
type Game struct {
	ID        string
	DailyDate string
	StartedAt time.Time

	mu         sync.Mutex
	engine     *hangman.Engine
	foldCase   bool
	state      State
	secret     string // resolved once, when the game finishes
	finishedAt time.Time
}

// View is a snapshot of a game for clients.
type View struct {
	ID         string     `json:"id"`
	Length     int        `json:"length"`
	Difficulty string     `json:"difficulty"`
	MaxWrong   int        `json:"maxWrong"`
	Remaining  int        `json:"remaining"`
	Pattern    string     `json:"pattern"`
	Guessed    string     `json:"guessed"` // "[a, c, e]"
	Guesses    int        `json:"guesses"`
	LiveWords  int        `json:"liveWords"`
	State      State      `json:"state"`
	Secret     string     `json:"secret,omitempty"` // only once finished
	DailyDate  string     `json:"dailyDate,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// Outcome is the result of one accepted guess.
type Outcome struct {
	Letter   string         `json:"letter"`
	Wrong    bool           `json:"wrong"`
	Families map[string]int `json:"families"` // pattern -> word count
	View     View           `json:"round"`
}
