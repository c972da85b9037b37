// Package token resolves raw clause tokens into the closed, typed
// vocabulary of arguments: commands, functions, frequencies, data-series
// names, dates, and display styles.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/vk/reportgridgo/internal/selection"
	"github.com/vk/reportgridgo/internal/timeseries"
)

// Resolution errors, per kind. Callers match with errors.Is.
var (
	// ErrUnknownLabel means a labelled token used a label outside the
	// recognized set.
	ErrUnknownLabel = errors.New("unknown argument label")
	// ErrInvalidValue means a labelled token's value failed to parse as,
	// or is absent from the registry of, the label's variant.
	ErrInvalidValue = errors.New("invalid argument value")
	// ErrUnresolvedToken means a bare token matched none of the variants.
	ErrUnresolvedToken = errors.New("unresolved token")
)

// Kind identifies an Arg variant.
type Kind int

const (
	KindCommand Kind = iota
	KindFunction
	KindFrequency
	KindDataName
	KindDate
	KindDisplay
)

var kindLabels = map[string]Kind{
	"command":   KindCommand,
	"function":  KindFunction,
	"frequency": KindFrequency,
	"name":      KindDataName,
	"date":      KindDate,
	"display":   KindDisplay,
}

// IsArgLabel reports whether s is one of the recognized argument labels.
// Collection labels outside this set name an expansion axis instead.
func IsArgLabel(s string) bool {
	_, ok := kindLabels[s]
	return ok
}

// Arg is one resolved argument. Exactly the fields of its Kind are valid.
type Arg struct {
	Kind Kind

	Command   string
	Function  string
	Frequency timeseries.Frequency
	DataName  string
	Date      time.Time
	Display   selection.DisplayStyle
}

// Fill applies the argument to a selection, setting the corresponding
// field only if it is unset. A Function argument carries no selection
// field and is a no-op.
func (a Arg) Fill(sel *selection.Selection) {
	switch a.Kind {
	case KindCommand:
		sel.FillCommand(a.Command)
	case KindFrequency:
		sel.FillFrequency(a.Frequency)
	case KindDataName:
		sel.FillDataName(a.DataName)
	case KindDate:
		sel.FillDate(a.Date)
	case KindDisplay:
		sel.FillDisplay(a.Display)
	case KindFunction:
		// Functions select a renderer, not a selection field.
	}
}

// String renders the argument the way it appears in table headings.
func (a Arg) String() string {
	switch a.Kind {
	case KindCommand:
		return a.Command
	case KindFunction:
		return a.Function
	case KindFrequency:
		return a.Frequency.String()
	case KindDataName:
		return a.DataName
	case KindDate:
		return timeseries.FormatDate(a.Date)
	case KindDisplay:
		return a.Display.String()
	}
	return fmt.Sprintf("Arg(%d)", int(a.Kind))
}

// Vocab is the read-only view of the closed registries the resolver
// checks names against.
type Vocab interface {
	HasCommand(name string) bool
	HasFunction(name string) bool
	HasDataName(name string) bool
}

// Resolver maps raw tokens onto Args using the injected vocabularies.
type Resolver struct {
	vocab Vocab
}

// NewResolver returns a Resolver backed by the given vocabularies.
func NewResolver(vocab Vocab) *Resolver {
	return &Resolver{vocab: vocab}
}

// resolveOrder is the fixed priority order bare tokens are tried in. An
// ambiguous token always resolves to the earliest matching variant.
var resolveOrder = [...]Kind{
	KindCommand,
	KindFunction,
	KindFrequency,
	KindDataName,
	KindDate,
	KindDisplay,
}

// Resolve maps a raw token to an Arg. A non-empty label dispatches
// directly to that label's variant; a bare token is tried against each
// variant in priority order and the first match wins.
func (r *Resolver) Resolve(label, raw string) (Arg, error) {
	if label != "" {
		kind, ok := kindLabels[label]
		if !ok {
			return Arg{}, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
		}
		arg, ok := r.tryKind(kind, raw)
		if !ok {
			return Arg{}, fmt.Errorf("%w: %q is not a valid %s", ErrInvalidValue, raw, label)
		}
		return arg, nil
	}

	for _, kind := range resolveOrder {
		if arg, ok := r.tryKind(kind, raw); ok {
			return arg, nil
		}
	}
	return Arg{}, fmt.Errorf("%w: %q", ErrUnresolvedToken, raw)
}

func (r *Resolver) tryKind(kind Kind, raw string) (Arg, bool) {
	switch kind {
	case KindCommand:
		if r.vocab.HasCommand(raw) {
			return Arg{Kind: KindCommand, Command: raw}, true
		}
	case KindFunction:
		if r.vocab.HasFunction(raw) {
			return Arg{Kind: KindFunction, Function: raw}, true
		}
	case KindFrequency:
		if freq, err := timeseries.ParseFrequency(raw); err == nil {
			return Arg{Kind: KindFrequency, Frequency: freq}, true
		}
	case KindDataName:
		if r.vocab.HasDataName(raw) {
			return Arg{Kind: KindDataName, DataName: raw}, true
		}
	case KindDate:
		if date, err := timeseries.ParseDate(raw); err == nil {
			return Arg{Kind: KindDate, Date: date}, true
		}
	case KindDisplay:
		if style, err := selection.ParseDisplayStyle(raw); err == nil {
			return Arg{Kind: KindDisplay, Display: style}, true
		}
	}
	return Arg{}, false
}
