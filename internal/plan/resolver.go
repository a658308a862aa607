package plan

import (
	"fmt"
	"slices"

	"builder-generator/internal/analyze"
	"builder-generator/internal/config"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/match"
)

// ResolutionConfig holds configuration for the planning process.
type ResolutionConfig struct {
	// MaxSuggestions is the maximum number of "did you mean" names reported
	// for an unknown type.
	MaxSuggestions int
	// StrictMode fails on any error diagnostic.
	StrictMode bool
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		MaxSuggestions: 3,
		StrictMode:     true,
	}
}

// Resolver selects record types from a type graph and plans their builders.
type Resolver struct {
	graph  *analyze.TypeGraph
	config ResolutionConfig
}

// NewResolver creates a new Resolver.
func NewResolver(graph *analyze.TypeGraph, config ResolutionConfig) *Resolver {
	return &Resolver{
		graph:  graph,
		config: config,
	}
}

// Resolve plans builders for every request.
//
// A selected type that cannot carry a builder (not a struct, unnamed fields,
// generic) is a misuse of the generator, not a diagnostic: Resolve lets the
// *analyze.MisuseError panic from analyze.ExtractRecord propagate.
func (r *Resolver) Resolve(requests []Request) (*Plan, error) {
	p := &Plan{}

	for i := range requests {
		pp := r.resolvePackage(&requests[i], &p.Diagnostics)
		if pp == nil {
			continue
		}

		p.Packages = append(p.Packages, *pp)
	}

	if r.config.StrictMode && p.Diagnostics.HasErrors() {
		return p, fmt.Errorf("planning failed: %w", p.Diagnostics.Error())
	}

	return p, nil
}

// resolvePackage plans one request. It returns nil when nothing is left to
// generate for the package.
func (r *Resolver) resolvePackage(req *Request, diags *diagnostic.Diagnostics) *PackagePlan {
	pkg, ok := r.graph.Packages[req.Package]
	if !ok {
		diags.AddError(diagnostic.CodeMissingPackage, "package is not loaded", req.Package, "")
		return nil
	}

	ids := r.selectTypes(pkg, req.Types, diags)
	if len(ids) == 0 {
		return nil
	}

	output := req.Output
	if output == "" {
		output = config.DefaultOutput
	}

	pp := &PackagePlan{
		Path:    pkg.Path,
		Pattern: req.Pattern,
		Name:    pkg.Name,
		Dir:     pkg.Dir,
		Output:  output,
	}

	reserved := slices.Clone(pkg.Scope)

	for _, id := range ids {
		record := analyze.ExtractRecord(r.graph.GetType(id))
		if !r.checkFieldTypes(pkg, record, diags) {
			continue
		}

		bp := PlanRecord(record)

		pp.Builders = append(pp.Builders, *bp)
		reserved = append(reserved, bp.BuilderName, bp.ErrorName, bp.FactoryName)
	}

	if len(pp.Builders) == 0 {
		return nil
	}

	slices.Sort(reserved)
	pp.Reserved = slices.Compact(reserved)

	return pp
}

// checkFieldTypes reports every field of record whose type did not
// type-check, together with the first type error of the record's file.
func (r *Resolver) checkFieldTypes(
	pkg *analyze.PackageInfo,
	record *analyze.Record,
	diags *diagnostic.Diagnostics,
) bool {
	ok := true

	for _, f := range record.Fields {
		if f.Type != nil && f.Type.IsValid() {
			continue
		}

		msg := fmt.Sprintf("field %s has an invalid type", f.Name)
		if cause := pkg.TypeErrorIn(record.Pos.Filename); cause != "" {
			msg += ": " + cause
		}

		diags.AddError(diagnostic.CodeInvalidFieldType, msg, pkg.Path, record.ID.Name)

		ok = false
	}

	return ok
}

// selectTypes returns the requested types of pkg in request order, or the
// marked types in declaration order when none are requested.
func (r *Resolver) selectTypes(
	pkg *analyze.PackageInfo,
	names []string,
	diags *diagnostic.Diagnostics,
) []analyze.TypeID {
	if len(names) == 0 {
		marked := r.graph.Marked(pkg.Path)
		if len(marked) == 0 {
			diags.AddWarning(diagnostic.CodeNoTypes,
				"no types requested and none marked "+analyze.DeriveMarker, pkg.Path, "")
		}

		return marked
	}

	var ids []analyze.TypeID

	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if _, dup := seen[name]; dup {
			diags.AddError(diagnostic.CodeDuplicateType, "type requested more than once", pkg.Path, name)
			continue
		}

		seen[name] = struct{}{}

		id := analyze.TypeID{PkgPath: pkg.Path, Name: name}
		if r.graph.GetType(id) == nil {
			diags.AddError(diagnostic.CodeUnknownType, "type not found in package", pkg.Path, name,
				match.Suggest(name, pkg.TypeNames(), r.config.MaxSuggestions)...)

			continue
		}

		ids = append(ids, id)
	}

	return ids
}
