package timeseries

import "time"

// Span is the calendar period of a given frequency that contains a date.
// Weekly spans run Monday through Sunday; monthly, quarterly, and yearly
// spans are calendar-aligned.
type Span struct {
	Freq Frequency
	date time.Time
}

// NewSpan returns the span of freq containing date.
func NewSpan(date time.Time, freq Frequency) Span {
	return Span{Freq: freq, date: date}
}

// Start returns the first day of the span.
func (s Span) Start() time.Time {
	d := s.date
	switch s.Freq {
	case Daily:
		return d
	case Weekly:
		// Monday-based week.
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case Monthly:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	case Quarterly:
		month := ((int(d.Month())-1)/3)*3 + 1
		return time.Date(d.Year(), time.Month(month), 1, 0, 0, 0, 0, d.Location())
	case Yearly:
		return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, d.Location())
	}
	panic("timeseries: Start on invalid frequency")
}

// End returns the last day of the span, inclusive.
func (s Span) End() time.Time {
	return s.Freq.Shift(s.Start(), 1).AddDate(0, 0, -1)
}

// Prev returns the span one period earlier.
func (s Span) Prev() Span {
	return NewSpan(s.Freq.Shift(s.Start(), -1), s.Freq)
}

// Contains reports whether date falls inside the span, bounds inclusive.
func (s Span) Contains(date time.Time) bool {
	return !date.Before(s.Start()) && !date.After(s.End())
}

func (s Span) String() string {
	return FormatDate(s.Start()) + ".." + FormatDate(s.End())
}
