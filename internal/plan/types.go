package plan

import (
	"builder-generator/internal/analyze"
	"builder-generator/internal/diagnostic"
)

// Plan is the final output of the planning pipeline.
// It contains everything needed for code generation.
type Plan struct {
	// Packages holds one entry per requested package, in request order.
	Packages []PackagePlan
	// Diagnostics contains all warnings and errors from planning.
	Diagnostics diagnostic.Diagnostics
}

// Builders returns the number of planned builders across all packages.
func (p *Plan) Builders() int {
	n := 0
	for _, pkg := range p.Packages {
		n += len(pkg.Builders)
	}

	return n
}

// PackagePlan groups the builders generated into one file of a package.
type PackagePlan struct {
	// Path is the import path of the package.
	Path string
	// Pattern is the package pattern the package was selected with, if any.
	Pattern string
	// Name is the package name used in the generated file's package clause.
	Name string
	// Dir is the directory the generated file is written to.
	Dir string
	// Output is the generated file name.
	Output string
	// Builders are emitted in this order.
	Builders []BuilderPlan
	// Reserved lists package-level identifiers import aliases must avoid.
	Reserved []string
}

// BuilderPlan describes the declarations generated for one record.
type BuilderPlan struct {
	// Record is the extracted schema the builder is derived from.
	Record *analyze.Record
	// BuilderName is the companion builder type, e.g. PointBuilder.
	BuilderName string
	// ErrorName is the record-specific error type, e.g. PointBuildError.
	ErrorName string
	// FactoryName is the constructor returning an empty builder.
	FactoryName string
	// StorageName is the builder's single struct field holding optional values.
	StorageName string
	// Receiver is the receiver name of the builder's methods.
	Receiver string
	// Fields mirror the record's fields in declaration order.
	Fields []FieldPlan
}

// RecordName returns the name of the record type.
func (b *BuilderPlan) RecordName() string {
	return b.Record.ID.Name
}

// FieldPlan is a record field as seen by the builder: its value is held
// optionally and set through a setter of the same name.
type FieldPlan struct {
	Name  string
	Type  *analyze.TypeInfo
	Index int
}

// Request selects the record types of one loaded package.
type Request struct {
	// Package is the import path of a loaded package.
	Package string
	// Pattern is the package pattern Package was loaded with.
	Pattern string
	// Types lists record type names; empty means marker discovery.
	Types []string
	// Output is the generated file name.
	Output string
}
