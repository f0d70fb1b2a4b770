package commands

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	primary []Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds c under its name and every alias.
// Nothing is registered if any of them is taken or blank.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, name := range names {
		if strings.TrimSpace(name) == "" || strings.HasPrefix(name, "-") {
			return fmt.Errorf("invalid command name: %q", name)
		}
		if existing, taken := r.byName[name]; taken {
			return fmt.Errorf("command name %s already registered by %s", name, existing.Name())
		}
	}

	for _, name := range names {
		r.byName[name] = c
	}
	r.primary = append(r.primary, c)
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// All returns each registered command once, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	all := slices.Clone(r.primary)
	r.mu.RUnlock()

	slices.SortFunc(all, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return all
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
// Panics on conflicts; registration happens in init.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
