// Package registry holds the closed vocabularies of the DSL: command
// names, rendering-function names, and data-series names. Registries are
// populated once at startup and read-only for the lifetime of a render.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
)

// Registry is the set of vocabularies for a single application instance.
type Registry struct {
	commands  map[string]string // name -> description
	functions map[string]string // name -> description
	dataNames map[string]struct{}
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		commands:  make(map[string]string),
		functions: make(map[string]string),
		dataNames: make(map[string]struct{}),
	}
}

// RegisterCommand adds a calculation command to the vocabulary.
// Registering the same name twice is a programmer error.
func (r *Registry) RegisterCommand(name, description string) {
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("command %q already registered", name))
	}
	slog.Debug("Registering command.", "name", name)
	r.commands[name] = description
}

// RegisterFunction adds a rendering function to the vocabulary.
func (r *Registry) RegisterFunction(name, description string) {
	if _, exists := r.functions[name]; exists {
		panic(fmt.Sprintf("function %q already registered", name))
	}
	slog.Debug("Registering function.", "name", name)
	r.functions[name] = description
}

// PopulateDataNames records the valid data-series names, normally the
// metric store's contents.
func (r *Registry) PopulateDataNames(names []string) {
	for _, name := range names {
		r.dataNames[name] = struct{}{}
	}
}

// HasCommand reports whether name is a registered command.
func (r *Registry) HasCommand(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// HasFunction reports whether name is a registered rendering function.
func (r *Registry) HasFunction(name string) bool {
	_, ok := r.functions[name]
	return ok
}

// HasDataName reports whether name is a known data series.
func (r *Registry) HasDataName(name string) bool {
	_, ok := r.dataNames[name]
	return ok
}

// Commands returns the registered command names in lexical order.
func (r *Registry) Commands() []string {
	return sortedKeys(r.commands)
}

// Functions returns the registered function names in lexical order.
func (r *Registry) Functions() []string {
	return sortedKeys(r.functions)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
