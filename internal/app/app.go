package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/reportgridgo/internal/calc"
	"github.com/vk/reportgridgo/internal/clause"
	"github.com/vk/reportgridgo/internal/ctxlog"
	"github.com/vk/reportgridgo/internal/metricstore"
	"github.com/vk/reportgridgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: logger, metric store, registries, and calculation engine.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	store    *metricstore.Store
	engine   *calc.Engine
}

// NewApp is the constructor for the main application. It loads the
// metric store and populates and validates the registries. A failure to
// load or validate is a fatal startup error and panics; the CLI boundary
// recovers it into a clean exit.
func NewApp(ctx context.Context, outW, logW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	store, err := metricstore.Load(ctx, config.MetricsPath)
	if err != nil {
		panic(fmt.Errorf("failed to load metric store: %w", err))
	}

	engine := calc.New(store)
	reg := registry.New()
	engine.Register(reg)
	reg.RegisterFunction(clause.FuncExpression, "expand argument groups and render each figure inline")
	reg.RegisterFunction(clause.FuncTable, "render a rows x cols cross-section grid")
	reg.PopulateDataNames(store.Names())
	logger.Debug("Registries populated.", "data_names", len(store.Names()))

	if err := reg.Validate(ctx, engine.HandlerNames()); err != nil {
		// A mismatch between vocabulary and handlers is a programmer error.
		panic(err)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   config,
		registry: reg,
		store:    store,
		engine:   engine,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
