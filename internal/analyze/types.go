package analyze

import (
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "builder-generator/examples/basic"
	Name    string // e.g., "Point"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

//go:generate go tool stringer -type=TypeKind -linecomment -output=typekind_string.go

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota // unknown
	TypeKindBasic                     // basic
	TypeKindStruct                    // struct
	TypeKindPointer                   // pointer
	TypeKindSlice                     // slice
	TypeKindArray                     // array
	TypeKindMap                       // map
	TypeKindAlias                     // alias
	TypeKindExternal                  // external
	TypeKindInterface                 // interface
)

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID         // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind       // Kind of type
	Underlying *TypeInfo      // For named types, the underlying type
	ElemType   *TypeInfo      // For pointers, slices, arrays and maps, the element type
	KeyType    *TypeInfo      // For maps, the key type
	Fields     []FieldInfo    // For structs, the list of fields in declaration order
	GoType     types.Type     // The original go/types.Type (for rendering type expressions)
	TypeParams int            // Number of type parameters of a generic named type
	Derive     bool           // True if the declaration carries a //builder:derive marker
	Pos        token.Position // Declaration position for named types, if known
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// IsValid returns false if the type, or any type it is composed of, failed to
// type-check. Named types are not looked through: only the way a type is
// spelled matters for generated code.
func (t *TypeInfo) IsValid() bool {
	return t.GoType != nil && !containsInvalid(t.GoType)
}

func containsInvalid(t types.Type) bool {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return tt.Kind() == types.Invalid
	case *types.Pointer:
		return containsInvalid(tt.Elem())
	case *types.Slice:
		return containsInvalid(tt.Elem())
	case *types.Array:
		return containsInvalid(tt.Elem())
	case *types.Chan:
		return containsInvalid(tt.Elem())
	case *types.Map:
		return containsInvalid(tt.Key()) || containsInvalid(tt.Elem())
	case *types.Signature:
		return tupleInvalid(tt.Params()) || tupleInvalid(tt.Results())
	case *types.Struct:
		for i := range tt.NumFields() {
			if containsInvalid(tt.Field(i).Type()) {
				return true
			}
		}
	case *types.Named:
		for i := range tt.TypeArgs().Len() {
			if containsInvalid(tt.TypeArgs().At(i)) {
				return true
			}
		}
	}

	return false
}

func tupleInvalid(tuple *types.Tuple) bool {
	for i := range tuple.Len() {
		if containsInvalid(tuple.At(i).Type()) {
			return true
		}
	}

	return false
}

// IsGeneric returns true if the type declares type parameters.
func (t *TypeInfo) IsGeneric() bool {
	return t.TypeParams > 0
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// IsBlank returns true for blank (_) padding fields.
func (f *FieldInfo) IsBlank() bool {
	return f.Name == "_"
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// Order lists loaded package paths in load order.
	Order []string
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Named types defined in this package, in declaration order
	Scope []string // Every package-level identifier, sorted

	// TypeErrors are the type-checking errors of the package. Loading
	// tolerates them; they explain fields whose type is invalid.
	TypeErrors []packages.Error
}

// TypeErrorIn returns the first type error reported in the given file, or
// an empty string.
func (p *PackageInfo) TypeErrorIn(filename string) string {
	for _, e := range p.TypeErrors {
		if filename != "" && strings.HasPrefix(e.Pos, filename+":") {
			return e.Error()
		}
	}

	return ""
}

// TypeNames returns the names of all types declared in the package.
func (p *PackageInfo) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, id := range p.Types {
		names = append(names, id.Name)
	}

	return names
}

// Marked returns the types of the package that carry a //builder:derive
// marker, in declaration order.
func (g *TypeGraph) Marked(pkgPath string) []TypeID {
	pkg, ok := g.Packages[pkgPath]
	if !ok {
		return nil
	}

	var marked []TypeID

	for _, id := range pkg.Types {
		if info := g.Types[id]; info != nil && info.Derive {
			marked = append(marked, id)
		}
	}

	return marked
}
