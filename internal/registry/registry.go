// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, so the CLI and the SSH
// server can list and start them by ID.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-roids/internal/core"
)

// Game is the interface the terminal host drives. Implementations keep
// Bubble Tea out of their logic; the host maps keys, paces ticks and
// prints the screen.
type Game interface {
	// ID identifies the game in the CLI and in score storage.
	ID() string
	Title() string

	// Reset starts a new session for the given screen and seed. The host
	// calls it once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame. The screen size may change between
	// calls without a Reset.
	Render(dst *core.Screen)

	State() core.GameState
}

// Optional capabilities a host checks for with a type assertion.
type (
	// Suspender is implemented by games that pause when the terminal
	// loses focus. HostResume must not undo a pause the player asked for.
	Suspender interface {
		HostSuspend()
		HostResume()
	}

	// Describer supplies a one-line description for listings.
	Describer interface {
		Description() string
	}

	// Themed names the color theme the host should print the game in.
	Themed interface {
		Theme() string
	}
)

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory to the registry. The factory is called
// once here to read the game's metadata, so it must be cheap.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	entries[id] = entry{info: info, factory: f}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
