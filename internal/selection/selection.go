// Package selection defines the bag of resolved parameters a figure is
// computed under: command, frequency, data name, date, and display style.
//
// Every field is optional and set-once: filling an already-set field is a
// no-op. This is the property the scope tree relies on, since inherited
// context must never overwrite what a clause set explicitly.
package selection

import (
	"strings"
	"time"

	"github.com/vk/reportgridgo/internal/timeseries"
)

// Selection is the unit of context passed down the scope tree and into
// the calculation engine at a leaf. The zero value has no fields set.
type Selection struct {
	command   string
	frequency *timeseries.Frequency
	dataName  string
	date      *time.Time
	display   *DisplayStyle
}

// New returns an empty Selection.
func New() *Selection {
	return &Selection{}
}

// FillCommand sets the command if it is unset.
func (s *Selection) FillCommand(name string) {
	if s.command == "" {
		s.command = name
	}
}

// FillFrequency sets the frequency if it is unset.
func (s *Selection) FillFrequency(freq timeseries.Frequency) {
	if s.frequency == nil {
		s.frequency = &freq
	}
}

// FillDataName sets the data-series name if it is unset.
func (s *Selection) FillDataName(name string) {
	if s.dataName == "" {
		s.dataName = name
	}
}

// FillDate sets the date if it is unset.
func (s *Selection) FillDate(date time.Time) {
	if s.date == nil {
		s.date = &date
	}
}

// FillDisplay sets the display style if it is unset.
func (s *Selection) FillDisplay(style DisplayStyle) {
	if s.display == nil {
		s.display = &style
	}
}

// Command returns the selected command, if set.
func (s *Selection) Command() (string, bool) {
	return s.command, s.command != ""
}

// Frequency returns the selected frequency, if set.
func (s *Selection) Frequency() (timeseries.Frequency, bool) {
	if s.frequency == nil {
		return 0, false
	}
	return *s.frequency, true
}

// DataName returns the selected data-series name, if set.
func (s *Selection) DataName() (string, bool) {
	return s.dataName, s.dataName != ""
}

// Date returns the selected date, if set.
func (s *Selection) Date() (time.Time, bool) {
	if s.date == nil {
		return time.Time{}, false
	}
	return *s.date, true
}

// Display returns the selected display style, or DisplayNumbers when unset.
func (s *Selection) Display() DisplayStyle {
	if s.display == nil {
		return DisplayNumbers
	}
	return *s.display
}

// Inherit copies each field that is set in ambient and unset here. Fields
// already set are untouched.
func (s *Selection) Inherit(ambient *Selection) {
	if ambient == nil {
		return
	}
	if cmd, ok := ambient.Command(); ok {
		s.FillCommand(cmd)
	}
	if freq, ok := ambient.Frequency(); ok {
		s.FillFrequency(freq)
	}
	if name, ok := ambient.DataName(); ok {
		s.FillDataName(name)
	}
	if date, ok := ambient.Date(); ok {
		s.FillDate(date)
	}
	if ambient.display != nil {
		s.FillDisplay(*ambient.display)
	}
}

// Clone returns an independent copy. Mutating the copy never affects the
// original, which block replication depends on.
func (s *Selection) Clone() *Selection {
	out := &Selection{command: s.command, dataName: s.dataName}
	if s.frequency != nil {
		freq := *s.frequency
		out.frequency = &freq
	}
	if s.date != nil {
		date := *s.date
		out.date = &date
	}
	if s.display != nil {
		style := *s.display
		out.display = &style
	}
	return out
}

// String renders the set fields for error messages and logs.
func (s *Selection) String() string {
	var parts []string
	if cmd, ok := s.Command(); ok {
		parts = append(parts, "command="+cmd)
	}
	if freq, ok := s.Frequency(); ok {
		parts = append(parts, "frequency="+freq.String())
	}
	if name, ok := s.DataName(); ok {
		parts = append(parts, "name="+name)
	}
	if date, ok := s.Date(); ok {
		parts = append(parts, "date="+timeseries.FormatDate(date))
	}
	if s.display != nil {
		parts = append(parts, "display="+s.display.String())
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, " ")
}
