package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/PaoloLupo/rcsection/internal/config"
	"github.com/PaoloLupo/rcsection/internal/corpus"
	"github.com/PaoloLupo/rcsection/internal/fixture"
	"github.com/PaoloLupo/rcsection/internal/report"
)

func writeReports(cfg config.Config, summary report.Summary, files []report.FileItem) error {
	if cfg.ReportJSON != "" {
		if err := report.WriteJSON(cfg.ReportJSON, report.NewJSONReport(summary, files)); err != nil {
			return err
		}
	}
	if cfg.ReportCSV != "" {
		if err := report.WriteCSV(cfg.ReportCSV, files); err != nil {
			return err
		}
	}
	return nil
}

func newWriter(cfg config.Config) *fixture.Writer {
	return fixture.NewWriter(cfg.In, cfg.Out, cfg.OutputName, cfg.Template, cfg.Policy())
}

// runGenerate writes (or checks, with cfg.Check) one fixture per example.
// A missing examples directory is reported and treated as success.
func runGenerate(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return generate(ctx, cfg, newWriter(cfg))
}

// generate runs one pass with writer, whose collision registry carries over to
// later passes such as watch mode. cfg must already be validated.
func generate(ctx context.Context, cfg config.Config, writer *fixture.Writer) error {
	examples, err := corpus.Scan(cfg.In, cfg.Pattern())
	if err != nil {
		if errors.Is(err, corpus.ErrRootNotFound) {
			slog.Warn("examples directory not found, nothing generated", "path", cfg.In)
			return nil
		}
		return err
	}

	var (
		summary   report.Summary
		fileItems []report.FileItem
		stopErr   error
	)

	for ex, scanErr := range examples {
		if err := ctx.Err(); err != nil {
			return err
		}
		if scanErr != nil {
			stopErr = scanErr
			break
		}
		summary.Discovered++

		item := report.FileItem{
			Example:  ex.Source(),
			Identity: corpus.Identity(ex),
		}

		var res fixture.Result
		if cfg.Check {
			res, err = writer.Check(ex)
		} else {
			res, err = writer.Write(ex)
		}
		if err != nil {
			summary.Failed++
			item.Status = report.StatusFailed
			item.Diagnostics = []report.DiagnosticItem{report.ToDiagnosticItem(ex.Source(), err)}
			fileItems = append(fileItems, item)
			stopErr = fmt.Errorf("generate fixture for %s: %w", ex.Source(), err)
			break
		}

		item.Fixture = res.Fixture.Path
		item.Status = report.FileStatus(res.Status)
		item.Collision = res.Collision
		if res.Collision {
			summary.Collisions++
		}
		switch res.Status {
		case fixture.StatusCreated, fixture.StatusUpdated:
			summary.Written++
		case fixture.StatusUnchanged:
			summary.Written++
			summary.Unchanged++
		case fixture.StatusStale:
			summary.Stale++
			slog.Warn("fixture out of date", "example", ex.Source(), "fixture", res.Fixture.Path)
		}
		fileItems = append(fileItems, item)
	}

	if stopErr == nil {
		orphans, err := fixture.Orphans(cfg.Out, cfg.OutputName, writer.Identities())
		if err != nil {
			return err
		}
		summary.Orphans = orphans
		for _, o := range orphans {
			slog.Warn("fixture has no matching example", "fixture", filepath.Join(cfg.Out, o))
		}
	}

	slog.Info(
		"generation summary",
		"discovered",
		summary.Discovered,
		"written",
		summary.Written,
		"unchanged",
		summary.Unchanged,
		"stale",
		summary.Stale,
		"collisions",
		summary.Collisions,
		"orphans",
		len(summary.Orphans),
		"input",
		cfg.In,
		"output",
		cfg.Out,
	)

	if err := writeReports(cfg, summary, fileItems); err != nil {
		return fmt.Errorf("write report artifacts: %w", err)
	}

	if stopErr != nil {
		return newExitError(ExitCodeGenerationFailed, stopErr)
	}
	if cfg.Check && (summary.Stale > 0 || len(summary.Orphans) > 0) {
		return newExitError(ExitCodeStale, fmt.Errorf("fixtures out of date: stale=%d orphans=%d", summary.Stale, len(summary.Orphans)))
	}
	return nil
}
