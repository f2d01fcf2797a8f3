package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"schemagen/internal/config"
	"schemagen/internal/ctxlog"
	"schemagen/internal/diagnostic"
	"schemagen/internal/gen"
	"schemagen/internal/output"
	"schemagen/internal/resolve"
	"schemagen/internal/schema"
)

// App runs the pipeline for one configuration.
type App struct {
	logger *slog.Logger
	config *config.Config
	sink   output.Sink
}

// New creates an App logging to logW. A nil sink writes below the
// configured output directory.
func New(logW io.Writer, cfg *config.Config, sink output.Sink) *App {
	if sink == nil {
		sink = output.NewFilesystemSink(cfg.OutDir)
	}

	return &App{
		logger: NewLogger(cfg.Log.Level, cfg.Log.Format, logW),
		config: cfg,
		sink:   sink,
	}
}

// Context returns ctx carrying the App's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Resolve loads the schema, applies the manual-update patches and
// resolves it. Diagnostics are logged; the error is non-nil when any of
// them is an error.
func (a *App) Resolve(ctx context.Context) (*resolve.Plan, error) {
	logger := ctxlog.FromContext(ctx)

	sc, err := schema.Load(a.config.Schema)
	if err != nil {
		return nil, err
	}

	logger.Debug("Schema loaded.",
		"path", a.config.Schema,
		"compounds", len(sc.Compounds()),
		"blocks", len(sc.Blocks()),
		"enums", len(sc.Enums()))

	if err := a.config.ApplyManualUpdates(sc); err != nil {
		return nil, err
	}

	plan, err := resolve.NewResolver(sc, a.config.ResolverConfig()).Resolve()
	if plan != nil {
		logDiagnostics(logger, plan.Diagnostics)
	}

	if err != nil {
		return plan, err
	}

	return plan, nil
}

func logDiagnostics(logger *slog.Logger, d diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		attrs := []any{"code", diag.Code}
		if diag.TypeName != "" {
			attrs = append(attrs, "type", diag.TypeName)
		}

		if diag.FieldName != "" {
			attrs = append(attrs, "field", diag.FieldName)
		}

		if len(diag.Suggestions) > 0 {
			attrs = append(attrs, "did_you_mean", diag.Suggestions)
		}

		switch diag.Severity {
		case diagnostic.SeverityError:
			logger.Error(diag.Message, attrs...)
		case diagnostic.SeverityWarning:
			logger.Warn(diag.Message, attrs...)
		default:
			logger.Info(diag.Message, attrs...)
		}
	}
}

// Check resolves the schema without generating anything.
func (a *App) Check(ctx context.Context) error {
	plan, err := a.Resolve(ctx)
	if err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("Schema is valid.",
		"types", len(plan.Types),
		"warnings", len(plan.Diagnostics.Warnings))

	return nil
}

// Generate resolves the schema and writes every generated file whose
// content changed. Custom code regions are read back from the files
// already in the sink. Nothing is written when resolution or generation
// fails.
func (a *App) Generate(ctx context.Context) (gen.WriteSummary, error) {
	logger := ctxlog.FromContext(ctx)

	plan, err := a.Resolve(ctx)
	if err != nil {
		return gen.WriteSummary{}, err
	}

	files, err := gen.NewGenerator(a.config.GeneratorConfig()).Generate(plan, gen.SinkPrior(ctx, a.sink))
	if err != nil {
		return gen.WriteSummary{}, fmt.Errorf("generation failed: %w", err)
	}

	sum, err := gen.WriteFiles(ctx, a.sink, files)
	if err != nil {
		return sum, err
	}

	for _, name := range sum.Created {
		logger.Debug("File created.", "file", name)
	}

	for _, name := range sum.Updated {
		logger.Debug("File updated.", "file", name)
	}

	logger.Info("Generation complete.",
		"created", len(sum.Created),
		"updated", len(sum.Updated),
		"unchanged", len(sum.Unchanged))

	return sum, nil
}
