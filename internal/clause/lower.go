package clause

import (
	"errors"
	"fmt"

	"github.com/vk/reportgridgo/internal/crosstab"
	"github.com/vk/reportgridgo/internal/expand"
	"github.com/vk/reportgridgo/internal/render"
	"github.com/vk/reportgridgo/internal/selection"
	"github.com/vk/reportgridgo/internal/token"
)

// Names of the built-in rendering functions.
const (
	FuncExpression = "expression"
	FuncTable      = "table"
)

// Axis names the table function correlates its collections by.
const (
	AxisRows = "rows"
	AxisCols = "cols"
)

// ErrUnknownFunction means a named-function clause referenced a name
// outside the function registry.
var ErrUnknownFunction = errors.New("unknown function")

// Lowerer converts parsed clauses into renderable components. Lowering
// is fail-fast: the first bad token or group aborts the whole clause.
type Lowerer struct {
	resolver *token.Resolver
	eval     render.Evaluator
}

// NewLowerer returns a Lowerer resolving tokens through resolver and
// delegating leaf evaluation to eval.
func NewLowerer(resolver *token.Resolver, eval render.Evaluator) *Lowerer {
	return &Lowerer{resolver: resolver, eval: eval}
}

// Lower converts one clause, recursively, into its renderable component.
func (l *Lowerer) Lower(c Clause) (render.Component, error) {
	switch c := c.(type) {
	case Text:
		return render.Text(c.Content), nil
	case Function:
		return l.lowerExpression(c.Groups)
	case NamedFunction:
		switch c.Name {
		case FuncExpression:
			return l.lowerExpression(c.Groups)
		case FuncTable:
			return l.lowerTable(c.Groups)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, c.Name)
		}
	case Block:
		return l.lowerBlock(c)
	}
	return nil, fmt.Errorf("unhandled clause kind %T", c)
}

// lowerExpression expands the groups into selections and wraps them in a
// calculation leaf.
func (l *Lowerer) lowerExpression(groups []RawGroup) (render.Component, error) {
	resolved, err := l.resolveGroups(groups)
	if err != nil {
		return nil, err
	}
	selections, err := expand.Expand(resolved)
	if err != nil {
		return nil, err
	}
	return render.NewFuncCall(selections, l.eval), nil
}

// lowerBlock expands the block's own groups into the selections shared
// by every child, lowers the children once, then replicates the child
// subtree under one scope node per selection, in declared order.
func (l *Lowerer) lowerBlock(b Block) (render.Component, error) {
	resolved, err := l.resolveGroups(b.Groups)
	if err != nil {
		return nil, fmt.Errorf("block header: %w", err)
	}
	selections, err := expand.Expand(resolved)
	if err != nil {
		return nil, fmt.Errorf("block header: %w", err)
	}

	base := render.NewNode(nil)
	for _, child := range b.Children {
		component, err := l.Lower(child)
		if err != nil {
			return nil, err
		}
		base.AddChild(component)
	}

	parent := render.NewNode(nil)
	for _, sel := range selections {
		parent.AddChild(base.WithSelection(sel))
	}
	return parent, nil
}

// lowerTable extracts the rows and cols axes and folds every remaining
// group into the table's base selection.
func (l *Lowerer) lowerTable(groups []RawGroup) (render.Component, error) {
	resolved, err := l.resolveGroups(groups)
	if err != nil {
		return nil, fmt.Errorf("table clause: %w", err)
	}

	var rows, cols []token.Arg
	base := selection.New()
	for _, group := range resolved {
		switch group.Name {
		case AxisRows:
			if rows != nil {
				return nil, fmt.Errorf("table clause: duplicate %s axis", AxisRows)
			}
			rows = group.Args
		case AxisCols:
			if cols != nil {
				return nil, fmt.Errorf("table clause: duplicate %s axis", AxisCols)
			}
			cols = group.Args
		default:
			if group.Collection {
				return nil, fmt.Errorf("table clause: collection %q is neither a %s nor a %s axis",
					group.Name, AxisRows, AxisCols)
			}
			group.Args[0].Fill(base)
		}
	}
	if rows == nil || cols == nil {
		return nil, fmt.Errorf("table clause: both %s and %s axes are required", AxisRows, AxisCols)
	}

	return crosstab.New(rows, cols, base, l.eval), nil
}

// resolveGroups resolves every raw group's tokens into typed arguments.
// A collection labelled with an argument label resolves each member by
// that label and keeps the label as its axis name; any other label names
// the axis and its members resolve bare.
func (l *Lowerer) resolveGroups(groups []RawGroup) ([]token.Group, error) {
	resolved := make([]token.Group, 0, len(groups))
	for _, group := range groups {
		if !group.Collection {
			if len(group.Values) != 1 {
				return nil, fmt.Errorf("argument group %q: expected a single value", group.Label)
			}
			arg, err := l.resolver.Resolve(group.Label, group.Values[0])
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, token.Single(arg))
			continue
		}

		memberLabel := ""
		if token.IsArgLabel(group.Label) {
			memberLabel = group.Label
		}
		args := make([]token.Arg, 0, len(group.Values))
		for _, value := range group.Values {
			arg, err := l.resolver.Resolve(memberLabel, value)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		if group.Label == "" {
			resolved = append(resolved, token.NewCollection(args))
		} else {
			resolved = append(resolved, token.NamedCollection(group.Label, args))
		}
	}
	return resolved, nil
}
