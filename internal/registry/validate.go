package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/reportgridgo/internal/ctxlog"
)

// Validate performs a strict parity check between the command vocabulary
// and the calculation engine's handler set. Every registered command
// must have a handler, and every handler must be registered, so that a
// template can never resolve a command the engine cannot evaluate.
func (r *Registry) Validate(ctx context.Context, handlerNames []string) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	handlers := make(map[string]struct{}, len(handlerNames))
	for _, name := range handlerNames {
		handlers[name] = struct{}{}
	}

	for name := range r.commands {
		if _, ok := handlers[name]; !ok {
			errs = append(errs, fmt.Sprintf("command %q: registered but no engine handler exists", name))
		}
	}
	for _, name := range handlerNames {
		if !r.HasCommand(name) {
			errs = append(errs, fmt.Sprintf("command %q: engine handler exists but is not registered", name))
		}
	}

	if len(r.functions) == 0 {
		errs = append(errs, "no rendering functions registered")
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validation passed.", "commands", len(r.commands), "functions", len(r.functions), "data_names", len(r.dataNames))
	return nil
}
