// Package registry provides a global registry of scene factories.
// Scenes register themselves in init() functions, allowing the engine
// to install them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/pixel-island/internal/scene"
)

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	Name  string
	Title string
}

type entry struct {
	title   string
	factory scene.Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from a scene package's init() function.
// Panics if a scene with the same name is already registered.
func Register(name, title string, f scene.Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[name]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", name))
	}
	entries[name] = entry{title: title, factory: f}
}

// List returns information about all registered scenes, sorted by name.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(entries))
	for name, e := range entries {
		result = append(result, SceneInfo{Name: name, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Factory returns the factory registered under name.
// Returns an error if the name is not registered.
func Factory(name string) (scene.Factory, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[name]
	if !ok {
		return nil, fmt.Errorf("registry: %w: %q", scene.ErrUnknownScene, name)
	}
	return e.factory, nil
}

// Exists checks if a scene with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[name]
	return ok
}

// Install registers every known scene with m.
func Install(m *scene.Manager) {
	mu.RLock()
	defer mu.RUnlock()

	for name, e := range entries {
		m.Register(name, e.factory)
	}
}
