package engine

import (
	"context"
	"fmt"
	"strings"

	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
	"builder-generator/internal/config"
	"builder-generator/internal/ctxlog"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/gen"
	"builder-generator/internal/plan"
)

// Engine derives builders for configured targets.
type Engine struct {
	dir        string
	generator  gen.GeneratorConfig
	resolution plan.ResolutionConfig
}

// Option configures an Engine.
type Option func(*Engine)

// WithDir sets the directory package patterns are resolved from.
func WithDir(dir string) Option {
	return func(e *Engine) {
		e.dir = dir
	}
}

// WithComments enables or disables doc comments in generated code.
func WithComments(enabled bool) Option {
	return func(e *Engine) {
		e.generator.GenerateComments = enabled
	}
}

// WithGeneratorConfig replaces the code generation settings.
func WithGeneratorConfig(cfg gen.GeneratorConfig) Option {
	return func(e *Engine) {
		e.generator = cfg
	}
}

// WithResolutionConfig replaces the planning settings.
func WithResolutionConfig(cfg plan.ResolutionConfig) Option {
	return func(e *Engine) {
		e.resolution = cfg
	}
}

// New creates an Engine with default settings.
func New(opts ...Option) *Engine {
	e := &Engine{
		generator:  gen.DefaultGeneratorConfig(),
		resolution: plan.DefaultConfig(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Plan loads every target and plans its builders. Targets are loaded one at
// a time so that each pattern maps to its own packages.
func (e *Engine) Plan(ctx context.Context, targets []config.Target) (*plan.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	result := &plan.Plan{}
	owners := make(map[string]string)

	for i := range targets {
		target := &targets[i]

		p, err := e.planTarget(ctx, target)
		if p != nil {
			result.Diagnostics.Merge(p.Diagnostics)
		}

		if err != nil {
			return result, fmt.Errorf("planning %s: %w", target.Package, err)
		}

		for _, pkg := range p.Packages {
			if owner, ok := owners[pkg.Path]; ok {
				result.Diagnostics.AddError(diagnostic.CodeDuplicatePackage,
					fmt.Sprintf("package is selected by both %s and %s", owner, target.Package), pkg.Path, "")

				return result, fmt.Errorf("planning %s: %w", target.Package, result.Diagnostics.Error())
			}

			owners[pkg.Path] = target.Package

			logger.Debug("planned builders",
				"package", pkg.Path,
				"output", pkg.Output,
				"types", recordNames(&pkg))
		}

		result.Packages = append(result.Packages, p.Packages...)
	}

	for _, d := range result.Diagnostics.Warnings {
		logger.Warn(d.String())
	}

	return result, nil
}

func (e *Engine) planTarget(ctx context.Context, target *config.Target) (*plan.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("loading packages", "pattern", target.Package, "dir", e.dir)

	graph, err := analyze.NewAnalyzer(analyze.WithDir(e.dir)).LoadPackages(ctx, target.Package)
	if err != nil {
		return nil, err
	}

	if !target.Types.IsEmpty() && common.IsMultiple(graph.Order) {
		return nil, fmt.Errorf("types are listed but the pattern matches %d packages", len(graph.Order))
	}

	requests := make([]plan.Request, 0, len(graph.Order))
	for _, pkgPath := range graph.Order {
		requests = append(requests, plan.Request{
			Package: pkgPath,
			Pattern: target.Package,
			Types:   target.Types,
			Output:  target.Output,
		})
	}

	return plan.NewResolver(graph, e.resolution).Resolve(requests)
}

// Generate plans the targets and renders their files without writing them.
func (e *Engine) Generate(ctx context.Context, targets []config.Target) ([]gen.GeneratedFile, error) {
	p, err := e.Plan(ctx, targets)
	if err != nil {
		return nil, err
	}

	files, err := gen.NewGenerator(e.generator).Generate(p)
	if err != nil {
		return nil, fmt.Errorf("generating: %w", err)
	}

	return files, nil
}

// Derive generates the targets' files and writes them into their packages.
func (e *Engine) Derive(ctx context.Context, targets []config.Target) ([]gen.GeneratedFile, error) {
	files, err := e.Generate(ctx, targets)
	if err != nil {
		return nil, err
	}

	if err := gen.WriteFiles(files); err != nil {
		return nil, err
	}

	logger := ctxlog.FromContext(ctx)
	for i := range files {
		logger.Info("wrote builders", "file", files[i].Path(), "package", files[i].Package)
	}

	return files, nil
}

// Check regenerates the targets' files in memory and reports the ones whose
// copy on disk is missing or outdated.
func (e *Engine) Check(ctx context.Context, targets []config.Target) ([]gen.StaleFile, error) {
	files, err := e.Generate(ctx, targets)
	if err != nil {
		return nil, err
	}

	stale, err := gen.Stale(files)
	if err != nil {
		return nil, err
	}

	logger := ctxlog.FromContext(ctx)
	for _, s := range stale {
		logger.Warn("generated file is stale", "file", s.Path, "missing", s.Missing)
	}

	return stale, nil
}

func recordNames(pkg *plan.PackagePlan) string {
	names := make([]string, 0, len(pkg.Builders))
	for i := range pkg.Builders {
		names = append(names, pkg.Builders[i].RecordName())
	}

	return strings.Join(names, ",")
}
