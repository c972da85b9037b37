package token

// Group is one argument group of a clause: a single argument, an
// unlabelled collection, or a named collection. Named collections carry
// the name the expander and the table builder correlate axes by.
type Group struct {
	// Name is non-empty for named collections.
	Name string
	// Args holds the group's members in declaration order.
	Args []Arg
	// Collection distinguishes a one-element collection from a single
	// argument: singles apply to every expanded selection, collections
	// branch.
	Collection bool
}

// Single wraps one argument.
func Single(arg Arg) Group {
	return Group{Args: []Arg{arg}}
}

// NewCollection wraps an unlabelled ordered collection.
func NewCollection(args []Arg) Group {
	return Group{Args: args, Collection: true}
}

// NamedCollection wraps an ordered collection under an axis name.
func NamedCollection(name string, args []Arg) Group {
	return Group{Name: name, Args: args, Collection: true}
}
