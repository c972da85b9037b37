// Package clause models parsed DSL clauses and lowers them into the
// renderable scope tree.
package clause

// RawGroup is one comma-separated argument group of a clause, still in
// raw string form. Label is the `label:` prefix, if any; for collections
// it is either one of the five argument labels or a free axis name.
type RawGroup struct {
	Label      string
	Values     []string
	Collection bool
}

// Clause is one parsed unit of DSL source. The set of kinds is closed:
// Function, NamedFunction, Block, and Text.
type Clause interface {
	isClause()
}

// Function is an inline expression clause: one set of argument groups to
// expand, evaluate, and render in place.
type Function struct {
	Groups []RawGroup
}

// NamedFunction is a clause evaluated through a specific named rendering
// function, e.g. the cross-section table.
type NamedFunction struct {
	Name   string
	Groups []RawGroup
}

// Block carries its own partial selections plus nested child clauses
// that are evaluated once per selection.
type Block struct {
	Groups   []RawGroup
	Children []Clause
}

// Text is literal pass-through content.
type Text struct {
	Content string
}

func (Function) isClause()      {}
func (NamedFunction) isClause() {}
func (Block) isClause()         {}
func (Text) isClause()          {}
