package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/reportgridgo/internal/assemble"
	"github.com/vk/reportgridgo/internal/clause"
	"github.com/vk/reportgridgo/internal/ctxlog"
	"github.com/vk/reportgridgo/internal/render"
	"github.com/vk/reportgridgo/internal/selection"
	"github.com/vk/reportgridgo/internal/template"
	"github.com/vk/reportgridgo/internal/timeseries"
	"github.com/vk/reportgridgo/internal/token"
)

// Run parses the report template, lowers it into the scope tree, renders
// it against the metric store, and writes the assembled document.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	src, err := os.ReadFile(a.config.TemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	doc, err := a.RenderSource(ctx, string(src))
	if err != nil {
		return err
	}

	if a.config.OutputPath != "" {
		if err := os.WriteFile(a.config.OutputPath, []byte(doc), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		a.logger.Info("Report written.", "path", a.config.OutputPath)
		return nil
	}
	if _, err := fmt.Fprint(a.outW, doc); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// RenderSource runs the full pipeline over in-memory template source and
// returns the assembled document.
func (a *App) RenderSource(ctx context.Context, src string) (string, error) {
	clauses, err := template.Parse(src, a.registry)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}
	a.logger.Debug("Template parsed.", "top_level_clauses", len(clauses))

	lowerer := clause.NewLowerer(token.NewResolver(a.registry), a.engine)
	components := make([]render.Component, 0, len(clauses))
	for _, c := range clauses {
		component, err := lowerer.Lower(c)
		if err != nil {
			return "", fmt.Errorf("failed to lower template: %w", err)
		}
		components = append(components, component)
	}
	a.logger.Debug("Template lowered.", "components", len(components))

	root := selection.New()
	if a.config.Date != "" {
		date, err := timeseries.ParseDate(a.config.Date)
		if err != nil {
			return "", err
		}
		root.FillDate(date)
	}

	doc, err := assemble.Document(ctx, components, root)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	a.logger.Debug("App.Run pipeline finished.")
	return doc, nil
}
