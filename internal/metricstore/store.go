// Package metricstore loads metric definitions and their datapoints from
// HCL files and serves read-only lookups to the calculation engine.
package metricstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/reportgridgo/internal/ctxlog"
	"github.com/vk/reportgridgo/internal/fsutil"
	"github.com/vk/reportgridgo/internal/timeseries"
)

// Point is one recorded observation of a metric.
type Point struct {
	Date  time.Time
	Value float64
}

// Metric is a named series of datapoints recorded at a native frequency.
type Metric struct {
	Name        string
	LongName    string
	Description string
	Frequency   timeseries.Frequency

	// points are kept sorted by date, oldest first.
	points []Point
}

// ValueAt returns the value of the datapoint whose native-frequency span
// contains date.
func (m *Metric) ValueAt(date time.Time) (float64, error) {
	for _, p := range m.points {
		if timeseries.NewSpan(p.Date, m.Frequency).Contains(date) {
			return p.Value, nil
		}
	}
	return 0, fmt.Errorf("metric %q has no datapoint covering %s", m.Name, timeseries.FormatDate(date))
}

// Points returns the metric's datapoints in date order.
func (m *Metric) Points() []Point {
	return m.points
}

// Store is an immutable collection of metrics, loaded once at startup.
type Store struct {
	metrics map[string]*Metric
}

// Load reads every .hcl file under path (a file or a directory) into a
// new Store. Duplicate metric names across files, and duplicate points
// covering the same span within a metric, are load errors.
func Load(ctx context.Context, path string) (*Store, error) {
	logger := ctxlog.FromContext(ctx)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to walk metrics path %s: %w", path, err)
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl metric files found in path.", "path", path)
	}

	parser := hclparse.NewParser()
	store := &Store{metrics: make(map[string]*Metric)}
	for _, filePath := range filePaths {
		file, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse metric file %s: %s", filePath, diags.Error())
		}
		if err := store.addFile(file, filePath); err != nil {
			return nil, err
		}
		logger.Debug("Loaded metric file.", "path", filePath)
	}

	logger.Info("Metric store loaded.", "metrics", len(store.metrics))
	return store, nil
}

// LoadSource builds a Store from in-memory HCL source, keyed by a synthetic
// filename. Used by tests and the integration harness.
func LoadSource(ctx context.Context, sources map[string]string) (*Store, error) {
	parser := hclparse.NewParser()
	store := &Store{metrics: make(map[string]*Metric)}

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		file, diags := parser.ParseHCL([]byte(sources[name]), name)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse metric source %s: %s", name, diags.Error())
		}
		if err := store.addFile(file, name); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (s *Store) addFile(file *hcl.File, filePath string) error {
	var config fileConfig
	diags := gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode metric file %s: %s", filePath, diags.Error())
	}

	for _, mc := range config.Metrics {
		metric, err := newMetric(mc)
		if err != nil {
			return fmt.Errorf("%s: %w", filePath, err)
		}
		if _, exists := s.metrics[metric.Name]; exists {
			return fmt.Errorf("%s: metric %q is already defined", filePath, metric.Name)
		}
		s.metrics[metric.Name] = metric
	}
	return nil
}

func newMetric(mc *metricConfig) (*Metric, error) {
	freq, err := timeseries.ParseFrequency(mc.Frequency)
	if err != nil {
		return nil, fmt.Errorf("metric %q: %w", mc.Name, err)
	}

	metric := &Metric{
		Name:        mc.Name,
		LongName:    mc.LongName,
		Description: mc.Description,
		Frequency:   freq,
	}
	if metric.LongName == "" {
		metric.LongName = mc.Name
	}

	for _, pc := range mc.Points {
		date, err := timeseries.ParseDate(pc.Date)
		if err != nil {
			return nil, fmt.Errorf("metric %q: %w", mc.Name, err)
		}

		var value float64
		if err := gocty.FromCtyValue(pc.Value, &value); err != nil {
			return nil, fmt.Errorf("metric %q, point %s: value is not a number: %w", mc.Name, pc.Date, err)
		}

		span := timeseries.NewSpan(date, freq)
		for _, existing := range metric.points {
			if span.Contains(existing.Date) {
				return nil, fmt.Errorf("metric %q: duplicate datapoint for span %s", mc.Name, span)
			}
		}
		metric.points = append(metric.points, Point{Date: date, Value: value})
	}

	sort.Slice(metric.points, func(i, j int) bool {
		return metric.points[i].Date.Before(metric.points[j].Date)
	})
	return metric, nil
}

// Metric returns the named metric, if it exists.
func (s *Store) Metric(name string) (*Metric, bool) {
	m, ok := s.metrics[name]
	return m, ok
}

// Names returns all metric names in lexical order. This feeds the
// data-name registry.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.metrics))
	for name := range s.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
