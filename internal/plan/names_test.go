package plan

import (
	"go/types"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"builder-generator/internal/analyze"
)

func TestDerivedNames(t *testing.T) {
	tests := []struct {
		record  string
		builder string
		errName string
		factory string
	}{
		{"Point", "PointBuilder", "PointBuildError", "NewPointBuilder"},
		{"Name", "NameBuilder", "NameBuildError", "NewNameBuilder"},
		{"point", "pointBuilder", "pointBuildError", "newPointBuilder"},
		{"httpRequest", "httpRequestBuilder", "httpRequestBuildError", "newHttpRequestBuilder"},
	}

	for _, tt := range tests {
		t.Run(tt.record, func(t *testing.T) {
			assert.Equal(t, tt.builder, BuilderName(tt.record))
			assert.Equal(t, tt.errName, ErrorName(tt.record))
			assert.Equal(t, tt.factory, FactoryName(tt.record))
		})
	}
}

func TestPlanRecord(t *testing.T) {
	record := analyze.ExtractRecord(pointType())

	got := PlanRecord(record)
	want := &BuilderPlan{
		Record:      record,
		BuilderName: "PointBuilder",
		ErrorName:   "PointBuildError",
		FactoryName: "NewPointBuilder",
		StorageName: "fields",
		Receiver:    "b",
		Fields: []FieldPlan{
			{Name: "X", Type: record.Fields[0].Type, Index: 0},
			{Name: "Y", Type: record.Fields[1].Type, Index: 1},
		},
	}

	// go/types values carry unexported state; compare them by identity.
	identical := cmp.Comparer(func(x, y types.Type) bool { return types.Identical(x, y) })

	if diff := cmp.Diff(want, got, identical); diff != "" {
		t.Errorf("PlanRecord() mismatch (-want +got):\n%s\n%s", diff, spew.Sdump(got))
	}
}

func TestPlanRecord_AvoidsCollisions(t *testing.T) {
	// Fields named like the storage field and a record named like the receiver.
	rec := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: testPkg, Name: "b"},
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			{Name: "fields", Type: basicType("string"), Index: 0},
			{Name: "fields1", Type: basicType("string"), Index: 1},
		},
	}

	bp := PlanRecord(analyze.ExtractRecord(rec))

	assert.Equal(t, "fields2", bp.StorageName)
	assert.Equal(t, "b1", bp.Receiver)
	assert.Equal(t, "newBBuilder", bp.FactoryName)
	assert.Equal(t, []string{"fields", "fields1"}, []string{bp.Fields[0].Name, bp.Fields[1].Name})
}
