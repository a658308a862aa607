package analyze

import (
	"fmt"
	"go/token"
	"slices"
)

// Reasons a builder cannot be derived for a type.
const (
	ReasonNotStruct     = "builder can apply only to struct types"
	ReasonUnnamedFields = "fields must be named"
	ReasonGeneric       = "generic types are not supported"
)

// Record is the schema of a struct type that a builder is derived for.
// Fields keep their declaration order; it decides setter order and which
// missing field Build reports first.
type Record struct {
	ID     TypeID
	Fields []FieldInfo
	Pos    token.Position
}

// Exported returns true if the record type is exported.
func (r *Record) Exported() bool {
	return token.IsExported(r.ID.Name)
}

// FieldNames returns the record's field names in declaration order.
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		names = append(names, f.Name)
	}

	return names
}

// MisuseError is the panic value of ExtractRecord. It marks a type definition
// a builder can never be derived for, as opposed to a missing value at
// construction time.
type MisuseError struct {
	Type   TypeID
	Field  string // offending field, if any
	Pos    token.Position
	Reason string
}

// Error implements the error interface.
func (e *MisuseError) Error() string {
	subject := e.Type.Name
	if e.Field != "" {
		subject = NewTypePath(subject).Field(e.Field).String()
	}

	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, subject, e.Reason)
	}

	return fmt.Sprintf("%s: %s", subject, e.Reason)
}

// ExtractRecord validates that t is a named, non-generic struct whose fields
// are all named, and returns its schema. Any other shape is a definition-time
// contract violation: ExtractRecord panics with a *MisuseError.
func ExtractRecord(t *TypeInfo) *Record {
	if t == nil {
		panic("analyze: ExtractRecord called with nil type")
	}

	misuse := func(field, reason string) {
		panic(&MisuseError{Type: t.ID, Field: field, Pos: t.Pos, Reason: reason})
	}

	if t.Kind != TypeKindStruct || !t.IsNamed() {
		misuse("", ReasonNotStruct)
	}

	if t.IsGeneric() {
		misuse("", ReasonGeneric)
	}

	if len(t.Fields) == 0 {
		misuse("", ReasonUnnamedFields)
	}

	for i := range t.Fields {
		f := &t.Fields[i]
		if f.Embedded || f.IsBlank() {
			misuse(f.Name, ReasonUnnamedFields)
		}
	}

	return &Record{
		ID:     t.ID,
		Fields: slices.Clone(t.Fields),
		Pos:    t.Pos,
	}
}
