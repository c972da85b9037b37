package render

import (
	"context"
	"strings"

	"github.com/vk/reportgridgo/internal/selection"
)

// FuncCall is a leaf holding the selections an expression clause expanded
// into. Each selection, completed by the ambient context, is handed to
// the calculation engine; the rendered figures are joined with a single
// space.
type FuncCall struct {
	selections []*selection.Selection
	eval       Evaluator
}

// NewFuncCall returns a leaf over the given expanded selections.
func NewFuncCall(selections []*selection.Selection, eval Evaluator) *FuncCall {
	return &FuncCall{selections: selections, eval: eval}
}

// Render evaluates each selection under the ambient context. The lowered
// selections stay untouched; inheritance happens on per-render copies.
func (f *FuncCall) Render(ctx context.Context, ambient *selection.Selection) (string, error) {
	fragments := make([]string, 0, len(f.selections))
	for _, sel := range f.selections {
		merged := sel.Clone()
		merged.Inherit(ambient)
		fragment, err := f.eval.Evaluate(ctx, merged)
		if err != nil {
			return "", err
		}
		fragments = append(fragments, fragment)
	}
	return strings.Join(fragments, " "), nil
}

// Clone copies the leaf. Selections are cloned so replicas stay
// independent; the evaluator is shared, it is stateless by contract.
func (f *FuncCall) Clone() Component {
	selections := make([]*selection.Selection, len(f.selections))
	for i, sel := range f.selections {
		selections[i] = sel.Clone()
	}
	return &FuncCall{selections: selections, eval: f.eval}
}
