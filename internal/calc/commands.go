package calc

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vk/reportgridgo/internal/metricstore"
	"github.com/vk/reportgridgo/internal/selection"
)

// metricFor resolves the selection's data-series name against the store.
func (e *Engine) metricFor(sel *selection.Selection) (*metricstore.Metric, error) {
	name, ok := sel.DataName()
	if !ok {
		return nil, fmt.Errorf("selection has no data name")
	}
	metric, ok := e.store.Metric(name)
	if !ok {
		return nil, fmt.Errorf("no metric named %q", name)
	}
	return metric, nil
}

func dateFor(sel *selection.Selection) (time.Time, error) {
	date, ok := sel.Date()
	if !ok {
		return time.Time{}, fmt.Errorf("selection has no date")
	}
	return date, nil
}

// evalFig renders the raw datapoint value at the selection's date.
func evalFig(_ context.Context, e *Engine, sel *selection.Selection) (string, error) {
	metric, err := e.metricFor(sel)
	if err != nil {
		return "", err
	}
	date, err := dateFor(sel)
	if err != nil {
		return "", err
	}
	value, err := metric.ValueAt(date)
	if err != nil {
		return "", err
	}

	if sel.Display() == selection.DisplayWords {
		return fmt.Sprintf("%s of %s", metric.LongName, formatFigure(value)), nil
	}
	return formatFigure(value), nil
}

// evalChange renders the relative change between the value at the
// selection's date and the value one period of the selected frequency
// earlier.
func evalChange(_ context.Context, e *Engine, sel *selection.Selection) (string, error) {
	metric, err := e.metricFor(sel)
	if err != nil {
		return "", err
	}
	date, err := dateFor(sel)
	if err != nil {
		return "", err
	}
	freq, ok := sel.Frequency()
	if !ok {
		return "", fmt.Errorf("selection has no frequency")
	}

	current, err := metric.ValueAt(date)
	if err != nil {
		return "", err
	}
	previous, err := metric.ValueAt(freq.Shift(date, -1))
	if err != nil {
		return "", err
	}
	if previous == 0 {
		return "", fmt.Errorf("previous %s value is zero, change is undefined", freq.Noun())
	}
	change := (current - previous) / previous

	if sel.Display() == selection.DisplayWords {
		direction := "up"
		if change < 0 {
			direction = "down"
		}
		return fmt.Sprintf("%s %s on the previous %s", direction, formatPercent(math.Abs(change)), freq.Noun()), nil
	}
	return formatPercent(change), nil
}

// evalAvgFreq rescales the value at the selection's date from the
// metric's native frequency to the selected one, e.g. a Weekly figure of
// 10 becomes 130.0 Quarterly.
func evalAvgFreq(_ context.Context, e *Engine, sel *selection.Selection) (string, error) {
	metric, err := e.metricFor(sel)
	if err != nil {
		return "", err
	}
	date, err := dateFor(sel)
	if err != nil {
		return "", err
	}
	freq, ok := sel.Frequency()
	if !ok {
		return "", fmt.Errorf("selection has no frequency")
	}

	value, err := metric.ValueAt(date)
	if err != nil {
		return "", err
	}
	scaled := value * metric.Frequency.PerYear() / freq.PerYear()

	if sel.Display() == selection.DisplayWords {
		return fmt.Sprintf("%s per %s", formatFigure(scaled), freq.Noun()), nil
	}
	return formatFigure(scaled), nil
}

// evalName renders the metric's long name; display style is irrelevant.
func evalName(_ context.Context, e *Engine, sel *selection.Selection) (string, error) {
	metric, err := e.metricFor(sel)
	if err != nil {
		return "", err
	}
	return metric.LongName, nil
}

// evalDescription renders the metric's description.
func evalDescription(_ context.Context, e *Engine, sel *selection.Selection) (string, error) {
	metric, err := e.metricFor(sel)
	if err != nil {
		return "", err
	}
	if metric.Description == "" {
		return "", fmt.Errorf("metric %q has no description", metric.Name)
	}
	return metric.Description, nil
}

func formatFigure(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
