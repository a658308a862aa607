package analyze

import (
	"go/types"
	"strings"
)

// TypePath builds a readable path string for a type.
// Examples:
//   - "Point" for a simple struct
//   - "Point.X" for a field
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeStringer renders types the way they are spelled from inside a package.
type TypeStringer struct {
	pkgPath string
}

// NewTypeStringer creates a TypeStringer for code living in pkgPath. Types of
// that package are rendered unqualified; others are qualified by package name.
func NewTypeStringer(pkgPath string) *TypeStringer {
	return &TypeStringer{pkgPath: pkgPath}
}

// TypeString returns t as spelled from inside the stringer's package.
func (s *TypeStringer) TypeString(t types.Type) string {
	return types.TypeString(t, s.qualify)
}

func (s *TypeStringer) qualify(pkg *types.Package) string {
	if pkg.Path() == s.pkgPath {
		return ""
	}

	return pkg.Name()
}
