// Package render holds the scope tree: the renderable components a
// lowered clause tree is made of, and the top-down selection inheritance
// that runs while they render.
package render

import (
	"context"

	"github.com/vk/reportgridgo/internal/selection"
)

// Evaluator is the external calculation engine. It turns a fully merged
// selection into a rendered figure, keyed by the selection's command.
// Implementations must be reentrant; the renderer may evaluate many
// selections during one walk.
type Evaluator interface {
	Evaluate(ctx context.Context, sel *selection.Selection) (string, error)
}

// Component is one renderable element of the scope tree. Render receives
// the ambient selection cascading down from enclosing blocks and returns
// the component's text fragment.
//
// Clone must return a deep, independent copy: block replication renders
// the same subtree once per block selection, and one replica's inherited
// fields must never leak into another.
type Component interface {
	Render(ctx context.Context, ambient *selection.Selection) (string, error)
	Clone() Component
}
