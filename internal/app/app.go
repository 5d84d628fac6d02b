package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/expandgo/internal/config"
	"github.com/vk/expandgo/internal/ctxlog"
	"github.com/vk/expandgo/internal/eval"
	"github.com/vk/expandgo/internal/expand"
	"github.com/vk/expandgo/internal/render"
	"github.com/vk/expandgo/internal/value"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp is the constructor for the main application. Rendered results go to
// outW; logs go to errW through the App's own isolated logger.
func NewApp(outW, errW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}

// Run executes the full pipeline: load configuration, bind variables,
// evaluate outputs, expand dynamic blocks, and render the result.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Run started.", "path", a.config.ConfigPath)

	doc, err := a.loader.Load(ctx, a.config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	env, err := a.bindVariables(doc)
	if err != nil {
		return err
	}

	result := &render.Document{}

	for _, out := range doc.Outputs {
		v, err := eval.Evaluate(out.Value, env)
		if err != nil {
			return fmt.Errorf("output %q: %w", out.Name, err)
		}
		result.Outputs = append(result.Outputs, render.Output{Name: out.Name, Value: v})
	}

	for _, tmpl := range doc.Blocks {
		blocks, err := expand.Expand(expand.ForEachExpand{
			Collection: tmpl.ForEach,
			Body:       tmpl.Body,
		}, env)
		if err != nil {
			return fmt.Errorf("block %q %q: %w", tmpl.Type, tmpl.Name, err)
		}
		result.BlockSets = append(result.BlockSets, render.BlockSet{
			Type:   tmpl.Type,
			Name:   tmpl.Name,
			Blocks: blocks,
		})
	}
	a.logger.Debug("Evaluation complete.",
		"outputs", len(result.Outputs),
		"block_sets", len(result.BlockSets))

	switch a.config.Format {
	case "json":
		encoded, err := render.JSON(result)
		if err != nil {
			return fmt.Errorf("failed to render JSON: %w", err)
		}
		if _, err := a.outW.Write(append(encoded, '\n')); err != nil {
			return err
		}
	default:
		if _, err := io.WriteString(a.outW, render.HCL(result)); err != nil {
			return err
		}
	}
	return nil
}

// bindVariables builds the root evaluation scope. Command-line overrides win
// over declared defaults; overrides bind as strings. Declared variables with
// neither stay unbound and surface as undefined when referenced, not before.
func (a *App) bindVariables(doc *config.Document) (*eval.Environment, error) {
	vars := make(map[string]value.Value)
	defaults := eval.NewEnvironment(nil)

	for _, decl := range doc.Variables {
		if raw, ok := a.config.Vars[decl.Name]; ok {
			vars[decl.Name] = value.StringVal(raw)
			continue
		}
		if decl.Default == nil {
			continue
		}
		v, err := eval.Evaluate(decl.Default, defaults)
		if err != nil {
			return nil, fmt.Errorf("default for variable %q: %w", decl.Name, err)
		}
		vars[decl.Name] = v
	}

	// Overrides for names with no matching declaration still bind, so a
	// directory of partial configs stays usable.
	for name, raw := range a.config.Vars {
		if _, ok := vars[name]; !ok {
			vars[name] = value.StringVal(raw)
		}
	}

	return eval.NewEnvironment(vars), nil
}
