// Package registry provides a global registry for board apps.
// Apps register themselves in init() functions, allowing the CLI
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/dso-arcade/internal/board"
	"github.com/vovakirdan/dso-arcade/internal/config"
)

// ErrUnknownApp is returned by Create for an ID nobody registered.
var ErrUnknownApp = errors.New("unknown app")

// AppInfo contains metadata about a registered app.
type AppInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of an app from the board configuration.
type Factory func(cfg config.Config) board.App

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an app factory to the registry.
// Typically called from an app package's init() function.
// Panics if an app with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: app %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	a := f(config.DefaultConfig())
	titles[id] = a.Title()
}

// List returns information about all registered apps, sorted by ID.
func List() []AppInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]AppInfo, 0, len(factories))
	for id := range factories {
		result = append(result, AppInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new app by its ID.
// Returns an error if the app ID is not registered.
func Create(id string, cfg config.Config) (board.App, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownApp, id)
	}

	return f(cfg), nil
}

// Exists checks if an app with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
