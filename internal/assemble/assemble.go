// Package assemble stitches the rendered fragments of the top-level
// clauses into the final report document, in document order.
package assemble

import (
	"context"
	"strings"

	"github.com/vk/reportgridgo/internal/render"
	"github.com/vk/reportgridgo/internal/selection"
)

// Document renders every component under the root ambient selection and
// concatenates the fragments. Any component failure aborts the document.
func Document(ctx context.Context, components []render.Component, root *selection.Selection) (string, error) {
	if root == nil {
		root = selection.New()
	}
	var out strings.Builder
	for _, component := range components {
		fragment, err := component.Render(ctx, root)
		if err != nil {
			return "", err
		}
		out.WriteString(fragment)
	}
	return out.String(), nil
}
