package gen

import (
	"go/types"
	"slices"
	"strings"

	"builder-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string // Empty when the default name is used
	Path  string
}

// typeFormatter spells field types as seen from inside one package and
// collects the imports they need. Every imported package gets an alias that
// is unique in the generated file and free of package-level identifiers.
type typeFormatter struct {
	pkgPath string
	taken   map[string]struct{}
	aliases map[string]string // import path → alias
}

func newTypeFormatter(pkgPath string, reserved []string) *typeFormatter {
	taken := make(map[string]struct{}, len(reserved))
	for _, name := range reserved {
		taken[name] = struct{}{}
	}

	return &typeFormatter{
		pkgPath: pkgPath,
		taken:   taken,
		aliases: make(map[string]string),
	}
}

// typeString spells t for use in generated code, recording the imports it
// needs.
func (f *typeFormatter) typeString(t types.Type) string {
	return types.TypeString(t, f.qualify)
}

func (f *typeFormatter) qualify(pkg *types.Package) string {
	if pkg.Path() == f.pkgPath {
		return ""
	}

	return f.alias(pkg.Path(), pkg.Name())
}

// alias returns the alias of an imported package, allocating one on first use.
func (f *typeFormatter) alias(pkgPath, name string) string {
	if a, ok := f.aliases[pkgPath]; ok {
		return a
	}

	a := common.NewStem(name, f.taken).First()
	f.aliases[pkgPath] = a

	return a
}

// imports returns the collected imports sorted by path. The alias is only
// spelled out when it differs from the last path element.
func (f *typeFormatter) imports() []importSpec {
	specs := make([]importSpec, 0, len(f.aliases))

	for pkgPath, a := range f.aliases {
		spec := importSpec{Path: pkgPath}
		if a != common.PkgAlias(pkgPath) {
			spec.Alias = a
		}

		specs = append(specs, spec)
	}

	slices.SortFunc(specs, func(x, y importSpec) int {
		return strings.Compare(x.Path, y.Path)
	})

	return specs
}
