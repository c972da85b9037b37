// Package calc is the calculation engine: it turns a fully merged
// selection into a computed, rendered figure, keyed by the selection's
// command. It is read-only over the metric store and reentrant.
package calc

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/reportgridgo/internal/ctxlog"
	"github.com/vk/reportgridgo/internal/metricstore"
	"github.com/vk/reportgridgo/internal/registry"
	"github.com/vk/reportgridgo/internal/selection"
)

// ErrUnknownCommand means the selection's command has no engine handler.
var ErrUnknownCommand = errors.New("unknown command")

// command binds a handler to its registry description.
type command struct {
	description string
	fn          func(ctx context.Context, e *Engine, sel *selection.Selection) (string, error)
}

// Engine evaluates selections against the metric store.
type Engine struct {
	store    *metricstore.Store
	commands map[string]command
}

// New returns an Engine over the given store with the built-in command
// set: fig, change, avg_freq, name, and description.
func New(store *metricstore.Store) *Engine {
	return &Engine{
		store: store,
		commands: map[string]command{
			"fig": {
				description: "the datapoint value at the selected date",
				fn:          evalFig,
			},
			"change": {
				description: "relative change against the previous period of the selected frequency",
				fn:          evalChange,
			},
			"avg_freq": {
				description: "the value rescaled from the metric's native frequency to the selected one",
				fn:          evalAvgFreq,
			},
			"name": {
				description: "the metric's long name",
				fn:          evalName,
			},
			"description": {
				description: "the metric's description",
				fn:          evalDescription,
			},
		},
	}
}

// Register adds the engine's command vocabulary to the registry, in the
// manner of a module registering its handlers.
func (e *Engine) Register(r *registry.Registry) {
	for name, cmd := range e.commands {
		r.RegisterCommand(name, cmd.description)
	}
}

// HandlerNames returns the names of all commands the engine can
// evaluate. Used by registry validation.
func (e *Engine) HandlerNames() []string {
	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	return names
}

// Evaluate computes and renders the figure for sel, dispatching on its
// command. Evaluation is fail-fast; errors carry the selection context.
func (e *Engine) Evaluate(ctx context.Context, sel *selection.Selection) (string, error) {
	name, ok := sel.Command()
	if !ok {
		return "", fmt.Errorf("selection %s has no command", sel)
	}
	cmd, ok := e.commands[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	ctxlog.FromContext(ctx).Debug("Evaluating selection.", "selection", sel.String())
	out, err := cmd.fn(ctx, e, sel)
	if err != nil {
		return "", fmt.Errorf("command %s (%s): %w", name, sel, err)
	}
	return out, nil
}
