// Package analyze provides package loading and record schema extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build a canonical in-memory model of the types declared in a package,
// and extracts from it the ordered field lists that builders are derived from.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/external)
//   - FieldInfo: describes field name, type, tags, and embedding
//   - Record: the validated schema of a struct a builder is derived for
//
// Types opt in to marker discovery with a directive comment in their doc:
//
//	//builder:derive
//	type Point struct {
//		X, Y int32
//	}
package analyze
