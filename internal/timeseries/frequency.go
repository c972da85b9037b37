// Package timeseries provides the calendar vocabulary of the report
// engine: reporting frequencies, the spans they induce around a date,
// and date literal parsing.
package timeseries

import (
	"fmt"
	"time"
)

// Frequency is how often a metric is recorded or reported.
type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

var frequencyNames = map[Frequency]string{
	Daily:     "Daily",
	Weekly:    "Weekly",
	Monthly:   "Monthly",
	Quarterly: "Quarterly",
	Yearly:    "Yearly",
}

// ParseFrequency maps a frequency token to its Frequency value. The set of
// accepted names is closed; matching is exact.
func ParseFrequency(s string) (Frequency, error) {
	for freq, name := range frequencyNames {
		if name == s {
			return freq, nil
		}
	}
	return 0, fmt.Errorf("unknown frequency %q", s)
}

func (f Frequency) String() string {
	name, ok := frequencyNames[f]
	if !ok {
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
	return name
}

// Noun returns the period noun for prose rendering, e.g. Weekly → "week".
func (f Frequency) Noun() string {
	switch f {
	case Daily:
		return "day"
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	case Yearly:
		return "year"
	}
	panic(fmt.Sprintf("timeseries: Noun on invalid frequency %d", int(f)))
}

// PerYear reports how many periods of this frequency make up one year.
// Weekly uses 52 so that frequency conversions stay whole-numbered.
func (f Frequency) PerYear() float64 {
	switch f {
	case Daily:
		return 365
	case Weekly:
		return 52
	case Monthly:
		return 12
	case Quarterly:
		return 4
	case Yearly:
		return 1
	}
	panic(fmt.Sprintf("timeseries: PerYear on invalid frequency %d", int(f)))
}

// Shift moves date by n periods of this frequency. Negative n moves into
// the past.
func (f Frequency) Shift(date time.Time, n int) time.Time {
	switch f {
	case Daily:
		return date.AddDate(0, 0, n)
	case Weekly:
		return date.AddDate(0, 0, 7*n)
	case Monthly:
		return date.AddDate(0, n, 0)
	case Quarterly:
		return date.AddDate(0, 3*n, 0)
	case Yearly:
		return date.AddDate(n, 0, 0)
	}
	panic(fmt.Sprintf("timeseries: Shift on invalid frequency %d", int(f)))
}

// DateLayout is the accepted format for date literals.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO date literal (2006-01-02) in UTC.
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", s, DateLayout)
	}
	return date, nil
}

// FormatDate renders a date in the same layout ParseDate accepts.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}
