package sources

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formvalue/pkg/form"
)

// Source names registered by default.
const (
	NameTimezones = "timezones"
)

// ErrUnknownSource is returned by Lookup for unregistered names.
var ErrUnknownSource = errors.New("sources: unknown source")

// Factory builds an item source narrowed by query and limit.
type Factory func(query string, limit int) form.ItemSource

// Registry maps source names to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in sources.
func NewRegistry() *Registry {
	r := &Registry{factories: map[string]Factory{}}
	r.Register(NameTimezones, Timezones)
	return r
}

// Register adds or replaces a named factory. Names are case-insensitive.
func (r *Registry) Register(name string, factory Factory) {
	name = normalize(name)
	if r == nil || name == "" || factory == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Lookup builds the named source.
func (r *Registry) Lookup(name, query string, limit int) (form.ItemSource, error) {
	if r == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, name)
	}
	r.mu.RLock()
	factory, ok := r.factories[normalize(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, name)
	}
	return factory(query, limit), nil
}

// Names lists the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Default is the registry consulted by form definitions.
var Default = NewRegistry()
