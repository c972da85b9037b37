package selection

import "fmt"

// DisplayStyle controls how the calculation engine renders a figure.
type DisplayStyle int

const (
	// DisplayNumbers renders the bare figure, e.g. "25.0%".
	DisplayNumbers DisplayStyle = iota
	// DisplayWords renders a prose fragment, e.g. "up 25.0% on the previous week".
	DisplayWords
)

var displayNames = [...]string{
	DisplayNumbers: "numbers",
	DisplayWords:   "words",
}

// ParseDisplayStyle maps a display token to its DisplayStyle value.
func ParseDisplayStyle(s string) (DisplayStyle, error) {
	for style, name := range displayNames {
		if name == s {
			return DisplayStyle(style), nil
		}
	}
	return 0, fmt.Errorf("unknown display style %q", s)
}

func (d DisplayStyle) String() string {
	if int(d) < len(displayNames) {
		return displayNames[d]
	}
	return fmt.Sprintf("DisplayStyle(%d)", int(d))
}
