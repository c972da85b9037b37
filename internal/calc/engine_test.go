package calc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/reportgridgo/internal/metricstore"
	"github.com/vk/reportgridgo/internal/registry"
	"github.com/vk/reportgridgo/internal/selection"
	"github.com/vk/reportgridgo/internal/timeseries"
)

const purrsSource = `
metric "cat_purrs" {
  long_name   = "Cat purrs"
  description = "Purrs recorded by the office cat"
  frequency   = "Weekly"

  point {
    date  = "2021-11-04"
    value = 3
  }

  point {
    date  = "2022-01-28"
    value = 8
  }

  point {
    date  = "2022-02-04"
    value = 10
  }
}
`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store, err := metricstore.LoadSource(context.Background(), map[string]string{"purrs.hcl": purrsSource})
	require.NoError(t, err)
	return New(store)
}

// sel builds a selection for cat_purrs at the reference date.
func sel(t *testing.T, command string, freq timeseries.Frequency, display selection.DisplayStyle) *selection.Selection {
	t.Helper()
	date, err := timeseries.ParseDate("2022-02-04")
	require.NoError(t, err)

	s := selection.New()
	s.FillCommand(command)
	s.FillFrequency(freq)
	s.FillDataName("cat_purrs")
	s.FillDate(date)
	s.FillDisplay(display)
	return s
}

func TestEvaluateNumbers(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	testCases := []struct {
		name     string
		command  string
		freq     timeseries.Frequency
		expected string
	}{
		{name: "weekly change", command: "change", freq: timeseries.Weekly, expected: "25.0%"},
		{name: "quarterly change", command: "change", freq: timeseries.Quarterly, expected: "233.3%"},
		{name: "weekly avg_freq", command: "avg_freq", freq: timeseries.Weekly, expected: "10.0"},
		{name: "quarterly avg_freq", command: "avg_freq", freq: timeseries.Quarterly, expected: "130.0"},
		{name: "fig", command: "fig", freq: timeseries.Weekly, expected: "10.0"},
		{name: "name", command: "name", freq: timeseries.Weekly, expected: "Cat purrs"},
		{name: "description", command: "description", freq: timeseries.Weekly, expected: "Purrs recorded by the office cat"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := e.Evaluate(ctx, sel(t, tc.command, tc.freq, selection.DisplayNumbers))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestEvaluateWords(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	out, err := e.Evaluate(ctx, sel(t, "change", timeseries.Weekly, selection.DisplayWords))
	require.NoError(t, err)
	assert.Equal(t, "up 25.0% on the previous week", out)

	out, err = e.Evaluate(ctx, sel(t, "avg_freq", timeseries.Quarterly, selection.DisplayWords))
	require.NoError(t, err)
	assert.Equal(t, "130.0 per quarter", out)

	out, err = e.Evaluate(ctx, sel(t, "fig", timeseries.Weekly, selection.DisplayWords))
	require.NoError(t, err)
	assert.Equal(t, "Cat purrs of 10.0", out)
}

func TestEvaluateDownwardChange(t *testing.T) {
	store, err := metricstore.LoadSource(context.Background(), map[string]string{"m.hcl": `
metric "cat_purrs" {
  frequency = "Weekly"

  point {
    date  = "2022-01-28"
    value = 20
  }

  point {
    date  = "2022-02-04"
    value = 10
  }
}
`})
	require.NoError(t, err)
	e := New(store)

	out, err := e.Evaluate(context.Background(), sel(t, "change", timeseries.Weekly, selection.DisplayWords))
	require.NoError(t, err)
	assert.Equal(t, "down 50.0% on the previous week", out)

	out, err = e.Evaluate(context.Background(), sel(t, "change", timeseries.Weekly, selection.DisplayNumbers))
	require.NoError(t, err)
	assert.Equal(t, "-50.0%", out)
}

func TestEvaluateErrors(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Evaluate(ctx, selection.New())
	assert.ErrorContains(t, err, "no command")

	s := selection.New()
	s.FillCommand("median")
	_, err = e.Evaluate(ctx, s)
	assert.ErrorIs(t, err, ErrUnknownCommand)

	// change without a frequency
	s = selection.New()
	s.FillCommand("change")
	s.FillDataName("cat_purrs")
	date, err := timeseries.ParseDate("2022-02-04")
	require.NoError(t, err)
	s.FillDate(date)
	_, err = e.Evaluate(ctx, s)
	assert.ErrorContains(t, err, "no frequency")

	// unknown metric
	s = selection.New()
	s.FillCommand("fig")
	s.FillDataName("dog_barks")
	_, err = e.Evaluate(ctx, s)
	assert.ErrorContains(t, err, "no metric named")

	// fig without a data name
	s = selection.New()
	s.FillCommand("fig")
	_, err = e.Evaluate(ctx, s)
	assert.ErrorContains(t, err, "no data name")
}

func TestMissingDatapointFailsFast(t *testing.T) {
	e := newTestEngine(t)

	date, err := timeseries.ParseDate("2020-01-01")
	require.NoError(t, err)
	s := selection.New()
	s.FillCommand("fig")
	s.FillDataName("cat_purrs")
	s.FillDate(date)

	_, err = e.Evaluate(context.Background(), s)
	assert.ErrorContains(t, err, "no datapoint covering")
}

func TestRegisterPopulatesRegistry(t *testing.T) {
	e := newTestEngine(t)
	r := registry.New()
	e.Register(r)

	assert.Equal(t, []string{"avg_freq", "change", "description", "fig", "name"}, r.Commands())
	assert.ElementsMatch(t, r.Commands(), e.HandlerNames())
}
