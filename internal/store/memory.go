// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Holds live *game.Game sessions keyed by ID; state is lost on restart.
// Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/evilhangman/internal/game"
)

// ErrNotFound is returned by Get for an unknown game ID.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete drops a game; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[string]*game.Game
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

// Save adds or updates the game in the map.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

// Get looks up a game by ID, returning ErrNotFound if missing.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

// Delete removes the game from the map; unknown IDs are a no-op.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}
