package render

import (
	"context"

	"github.com/vk/reportgridgo/internal/selection"
)

// Text is a literal pass-through fragment. It ignores the ambient
// selection entirely.
type Text string

// Render returns the literal content.
func (t Text) Render(_ context.Context, _ *selection.Selection) (string, error) {
	return string(t), nil
}

// Clone returns the text itself; literals are immutable.
func (t Text) Clone() Component {
	return t
}
