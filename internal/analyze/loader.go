package analyze

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// GeneratedBuildTag is set while loading so that files produced by a previous
// run (constrained with "//go:build !buildergen") are left out of analysis.
const GeneratedBuildTag = "buildergen"

// DeriveMarker is the directive comment that opts a type into marker discovery.
const DeriveMarker = "//builder:derive"

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
	dir       string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory package patterns are resolved from.
// The default is the current working directory.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/basic", "builder-generator/examples/basic").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode:       LoadMode,
		Context:    ctx,
		Dir:        a.dir,
		BuildFlags: []string{"-tags=" + GeneratedBuildTag},
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %v", patterns)
	}

	// Type errors are expected: code in the package may already call the
	// builders that loading with GeneratedBuildTag hides. Fields whose types
	// did not resolve are rejected when the records are planned.
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind != packages.TypeError {
				errs = append(errs, e)
			}
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	// Register every root package before analysis so that references between
	// them are not mistaken for external types.
	for _, pkg := range pkgs {
		a.registerPackage(pkg)
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

func (a *Analyzer) registerPackage(pkg *packages.Package) {
	if _, ok := a.graph.Packages[pkg.PkgPath]; ok {
		return
	}

	info := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
		Dir:  packageDir(pkg),
	}

	for _, e := range pkg.Errors {
		if e.Kind == packages.TypeError {
			info.TypeErrors = append(info.TypeErrors, e)
		}
	}

	a.graph.Packages[pkg.PkgPath] = info
	a.graph.Order = append(a.graph.Order, pkg.PkgPath)
}

// packageDir returns the directory of the package sources. Ignored files are
// consulted too, since a package may consist only of previously generated code
// while it is being loaded with GeneratedBuildTag.
func packageDir(pkg *packages.Package) string {
	for _, files := range [][]string{pkg.GoFiles, pkg.CompiledGoFiles, pkg.IgnoredFiles} {
		if len(files) > 0 {
			return filepath.Dir(files[0])
		}
	}

	return ""
}

// processPackage extracts types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if pkg.Types == nil {
		return errors.New("no type information")
	}

	pkgInfo := a.graph.Packages[pkg.PkgPath]
	marked := collectMarkers(pkg.Syntax)

	scope := pkg.Types.Scope()
	pkgInfo.Scope = scope.Names()

	var typeNames []*types.TypeName

	for _, name := range scope.Names() {
		// Only process type names (not variables, constants, functions)
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		typeNames = append(typeNames, typeName)
	}

	// Declaration order decides the order of marker-discovered builders.
	// Files are parsed concurrently, so positions only compare within a file.
	slices.SortFunc(typeNames, func(x, y *types.TypeName) int {
		px, py := pkg.Fset.Position(x.Pos()), pkg.Fset.Position(y.Pos())

		return cmp.Or(
			cmp.Compare(px.Filename, py.Filename),
			cmp.Compare(px.Offset, py.Offset),
		)
	})

	for _, typeName := range typeNames {
		typeInfo := a.analyzeType(typeName.Type())
		typeInfo.Derive = marked[typeName.Name()]
		typeInfo.Pos = pkg.Fset.Position(typeName.Pos())

		a.graph.Types[typeInfo.ID] = typeInfo
		pkgInfo.Types = append(pkgInfo.Types, typeInfo.ID)
	}

	return nil
}

// collectMarkers returns the names of type declarations whose doc comment
// carries DeriveMarker.
func collectMarkers(files []*ast.File) map[string]bool {
	marked := make(map[string]bool)

	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				if hasMarker(doc) {
					marked[ts.Name.Name] = true
				}
			}
		}
	}

	return marked
}

func hasMarker(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == DeriveMarker {
			return true
		}
	}

	return false
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
//
// An alias gets its own TypeInfo describing the aliased type, with GoType
// left as the alias so generated code spells the type as it was declared.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	if alias, ok := t.(*types.Alias); ok {
		info := *a.analyzeType(types.Unalias(alias))
		info.GoType = alias

		return &info
	}

	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic
		info.ID = TypeID{Name: tt.Name()}

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	case *types.Interface:
		info.Kind = TypeKindInterface

	default:
		// Channels, functions, type parameters, etc. are carried as-is
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()
	info.TypeParams = named.TypeParams().Len()

	// Universe types such as error have no package.
	if obj.Pkg() == nil {
		info.ID = TypeID{Name: obj.Name()}
		info.Kind = TypeKindInterface

		return
	}

	info.ID = TypeID{
		PkgPath: obj.Pkg().Path(),
		Name:    obj.Name(),
	}

	if a.isExternalPackage(obj.Pkg().Path()) {
		// External/opaque type (e.g., time.Time)
		info.Kind = TypeKindExternal
		return
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	case *types.Interface:
		info.Kind = TypeKindInterface

	default:
		// Named type wrapping something else in our packages (e.g., type Celsius float64)
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts fields from a struct type. Unexported, blank
// and embedded fields are kept so that record extraction can judge them.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}
}
