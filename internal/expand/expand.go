// Package expand turns the argument groups of a clause into the full,
// deterministically ordered set of selections the clause must be
// evaluated under.
//
// Single arguments apply to every produced selection. Each unlabelled
// collection is an independent axis and multiplies the result. Named
// collections sharing a name form one axis iterated in parallel, so
// their members stay aligned across combinations.
package expand

import (
	"errors"
	"fmt"

	"github.com/vk/reportgridgo/internal/selection"
	"github.com/vk/reportgridgo/internal/token"
)

// ErrExpansionMismatch means named collections bound to the same axis
// have differing lengths and cannot be zipped.
var ErrExpansionMismatch = errors.New("expansion mismatch")

// axis is one independent branching dimension of the cross product.
type axis struct {
	name   string // empty for unlabelled collections
	length int
}

// Expand produces one selection per combination of the groups' members.
// Combination order is lexicographic in declaration order: the first
// collection group declared varies slowest, and within a combination
// arguments fill the selection in group order. The order is what fixes
// the left-to-right order of rendered report fragments.
func Expand(groups []token.Group) ([]*selection.Selection, error) {
	axes, slots, err := partition(groups)
	if err != nil {
		return nil, err
	}

	count := 1
	for _, ax := range axes {
		count *= ax.length
	}

	selections := make([]*selection.Selection, 0, count)
	indices := make([]int, len(axes))
	for {
		sel := selection.New()
		for i, group := range groups {
			if group.Collection {
				group.Args[indices[slots[i]]].Fill(sel)
			} else {
				group.Args[0].Fill(sel)
			}
		}
		selections = append(selections, sel)

		// Advance the index vector, last axis fastest.
		pos := len(indices) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < axes[pos].length {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}

	return selections, nil
}

// partition assigns each group a slot pointing at its axis. Named
// collections reuse the axis of an earlier group with the same name.
func partition(groups []token.Group) ([]axis, []int, error) {
	var axes []axis
	slots := make([]int, len(groups))
	byName := make(map[string]int)

	for i, group := range groups {
		if group.Collection && len(group.Args) == 0 {
			return nil, nil, fmt.Errorf("argument group %d: collection has no members", i)
		}
		if !group.Collection {
			slots[i] = -1
			if len(group.Args) != 1 {
				return nil, nil, fmt.Errorf("argument group %d: single group must hold exactly one argument", i)
			}
			continue
		}
		if group.Name != "" {
			if slot, ok := byName[group.Name]; ok {
				if axes[slot].length != len(group.Args) {
					return nil, nil, fmt.Errorf("%w: collections named %q have %d and %d members",
						ErrExpansionMismatch, group.Name, axes[slot].length, len(group.Args))
				}
				slots[i] = slot
				continue
			}
			byName[group.Name] = len(axes)
		}
		slots[i] = len(axes)
		axes = append(axes, axis{name: group.Name, length: len(group.Args)})
	}

	return axes, slots, nil
}
