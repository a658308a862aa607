package plan

import (
	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
)

// Fixed parts of derived identifiers.
const (
	BuilderSuffix = "Builder"
	ErrorSuffix   = "BuildError"
	FactoryPrefix = "New"
	FinalizeName  = "Build"
	StorageStem   = "fields"
	ReceiverStem  = "b"
)

// BuilderName returns the builder type name for a record, e.g. PointBuilder.
func BuilderName(record string) string {
	return record + BuilderSuffix
}

// ErrorName returns the error type name for a record, e.g. PointBuildError.
func ErrorName(record string) string {
	return record + ErrorSuffix
}

// FactoryName returns the constructor name for a record's builder.
// Unexported records get an unexported constructor: point → newPointBuilder.
func FactoryName(record string) string {
	builder := BuilderName(record)
	if common.IsExported(record) {
		return FactoryPrefix + builder
	}

	return common.LowerFirst(FactoryPrefix) + common.UpperFirst(builder)
}

// PlanRecord derives the builder plan of a single record.
func PlanRecord(record *analyze.Record) *BuilderPlan {
	name := record.ID.Name

	// Storage shares the builder's selector namespace with the setters.
	members := map[string]struct{}{FinalizeName: {}}
	for _, f := range record.Fields {
		members[f.Name] = struct{}{}
	}

	// The receiver must not shadow the type names used inside Build.
	locals := map[string]struct{}{
		name:              {},
		BuilderName(name): {},
		ErrorName(name):   {},
	}

	bp := &BuilderPlan{
		Record:      record,
		BuilderName: BuilderName(name),
		ErrorName:   ErrorName(name),
		FactoryName: FactoryName(name),
		StorageName: common.NewStem(StorageStem, members).First(),
		Receiver:    common.NewStem(ReceiverStem, locals).First(),
	}

	for _, f := range record.Fields {
		bp.Fields = append(bp.Fields, FieldPlan{
			Name:  f.Name,
			Type:  f.Type,
			Index: f.Index,
		})
	}

	return bp
}
