package engine

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-generator/internal/analyze"
	"builder-generator/internal/config"
	"builder-generator/internal/ctxlog"
	"builder-generator/internal/diagnostic"
)

const moduleRoot = "../.."

func testContext(buf *bytes.Buffer) context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.New("debug", "text", buf))
}

// writeModule creates a throwaway module holding a single package.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/tmp\n\ngo 1.24\n"), 0o644))

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

const geoSource = `package geo

//builder:derive
type Point struct {
	X, Y int
}

type Unmarked struct {
	Label string
}
`

// recoverMisuse runs f and returns the *analyze.MisuseError it panics with.
func recoverMisuse(t *testing.T, f func()) (misuse *analyze.MisuseError) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")

		err, ok := r.(error)
		require.True(t, ok, "panic value is not an error: %v", r)
		require.True(t, errors.As(err, &misuse), spew.Sdump(r))
	}()

	f()

	return nil
}

func TestEngine_CheckBasicExample(t *testing.T) {
	var logs bytes.Buffer

	stale, err := New(WithDir(moduleRoot)).Check(testContext(&logs), Targets("./examples/basic", "", nil))
	require.NoError(t, err)
	assert.Empty(t, stale, logs.String())
}

func TestEngine_PlanExplicitTypes(t *testing.T) {
	var logs bytes.Buffer

	p, err := New(WithDir(moduleRoot)).Plan(testContext(&logs), Targets("./examples/basic", "orders_gen.go", []string{"Order", "Point"}))
	require.NoError(t, err)
	require.Len(t, p.Packages, 1)

	pkg := p.Packages[0]
	assert.Equal(t, "builder-generator/examples/basic", pkg.Path)
	assert.Equal(t, "./examples/basic", pkg.Pattern)
	assert.Equal(t, "orders_gen.go", pkg.Output)
	require.Len(t, pkg.Builders, 2)
	assert.Equal(t, "OrderBuilder", pkg.Builders[0].BuilderName)
	assert.Equal(t, []string{"ID", "CustomerID", "TotalCents", "Status"}, pkg.Builders[0].Record.FieldNames())
	assert.Equal(t, "PointBuilder", pkg.Builders[1].BuilderName)

	assert.Contains(t, logs.String(), "planned builders")
}

func TestEngine_PlanWildcardUsesMarkers(t *testing.T) {
	var logs bytes.Buffer

	p, err := New(WithDir(moduleRoot)).Plan(testContext(&logs), Targets("./examples/...", "", nil))
	require.NoError(t, err)

	got := map[string][]string{}
	for _, pkg := range p.Packages {
		got[pkg.Path] = strings.Split(recordNames(&pkg), ",")
	}

	assert.Equal(t, map[string][]string{
		"builder-generator/examples/basic":  {"Envelope", "Person", "Point", "Name"},
		"builder-generator/examples/shapes": {"Circle"},
	}, got)
}

func TestEngine_PlanWildcardWithTypes(t *testing.T) {
	_, err := New(WithDir(moduleRoot)).Plan(context.Background(), Targets("./examples/...", "", []string{"Point"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches 2 packages")
}

func TestEngine_PlanUnknownType(t *testing.T) {
	p, err := New(WithDir(moduleRoot)).Plan(context.Background(), Targets("./examples/basic", "", []string{"Persn"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean Person?")

	require.Len(t, p.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeUnknownType, p.Diagnostics.Errors[0].Code)
}

func TestEngine_PlanDuplicatePackage(t *testing.T) {
	targets := append(Targets("./examples/basic", "", nil), Targets("builder-generator/examples/basic", "", nil)...)

	p, err := New(WithDir(moduleRoot)).Plan(context.Background(), targets)
	require.Error(t, err)
	assert.Equal(t, diagnostic.CodeDuplicatePackage, p.Diagnostics.Errors[0].Code)
}

func TestEngine_Misuse(t *testing.T) {
	tests := []struct {
		typeName string
		field    string
		reason   string
	}{
		{"Celsius", "", analyze.ReasonNotStruct},
		{"Shape", "", analyze.ReasonNotStruct},
		{"Empty", "", analyze.ReasonUnnamedFields},
		{"Labeled", "Base", analyze.ReasonUnnamedFields},
		{"Padded", "_", analyze.ReasonUnnamedFields},
		{"Box", "", analyze.ReasonGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			misuse := recoverMisuse(t, func() {
				_, _ = New(WithDir(moduleRoot)).Plan(context.Background(), Targets("./examples/shapes", "", []string{tt.typeName}))
			})

			assert.Equal(t, tt.typeName, misuse.Type.Name)
			assert.Equal(t, tt.field, misuse.Field)
			assert.Equal(t, tt.reason, misuse.Reason)
			assert.Equal(t, "shapes.go", filepath.Base(misuse.Pos.Filename))
		})
	}
}

func TestEngine_DeriveAndCheck(t *testing.T) {
	dir := writeModule(t, map[string]string{"geo/geo.go": geoSource})
	targets := Targets("./geo", "", nil)

	var logs bytes.Buffer

	ctx := testContext(&logs)
	e := New(WithDir(dir))

	stale, err := e.Check(ctx, targets)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.True(t, stale[0].Missing)

	files, err := e.Derive(ctx, targets)
	require.NoError(t, err)
	require.Len(t, files, 1)

	written, err := os.ReadFile(filepath.Join(dir, "geo", config.DefaultOutput))
	require.NoError(t, err)
	assert.Equal(t, files[0].Content, written)
	assert.Contains(t, string(written), "func NewPointBuilder() *PointBuilder {")
	assert.NotContains(t, string(written), "UnmarkedBuilder")
	assert.Contains(t, logs.String(), "wrote builders")

	// The generated file is left out of its own regeneration.
	stale, err = e.Check(ctx, targets)
	require.NoError(t, err)
	assert.Empty(t, stale)

	again, err := e.Derive(ctx, targets)
	require.NoError(t, err)
	assert.Equal(t, files[0].Content, again[0].Content)

	// Changing the record makes the file stale.
	changed := strings.Replace(geoSource, "X, Y int", "X, Y, Z int", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geo", "geo.go"), []byte(changed), 0o644))

	stale, err = e.Check(ctx, targets)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.False(t, stale[0].Missing)
}

func TestEngine_DeriveWithoutComments(t *testing.T) {
	dir := writeModule(t, map[string]string{"geo/geo.go": geoSource})

	files, err := New(WithDir(dir), WithComments(false)).Generate(context.Background(), Targets("./geo", "", []string{"Unmarked"}))
	require.NoError(t, err)
	require.Len(t, files, 1)

	content := string(files[0].Content)
	assert.Contains(t, content, "func (b *UnmarkedBuilder) Label(v string) *UnmarkedBuilder {")
	assert.NotContains(t, content, "// Label sets")
}

func TestEngine_NothingMarked(t *testing.T) {
	dir := writeModule(t, map[string]string{"geo/geo.go": "package geo\n\ntype Unmarked struct{ Label string }\n"})

	var logs bytes.Buffer

	files, err := New(WithDir(dir)).Derive(testContext(&logs), Targets("./geo", "", nil))
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Contains(t, logs.String(), diagnostic.CodeNoTypes)
}

func TestEngine_RegenerateWithCallSite(t *testing.T) {
	dir := writeModule(t, map[string]string{"geo/geo.go": geoSource})
	targets := Targets("./geo", "", nil)

	var logs bytes.Buffer

	ctx := testContext(&logs)
	e := New(WithDir(dir))

	files, err := e.Derive(ctx, targets)
	require.NoError(t, err)
	require.Len(t, files, 1)

	// Code in the package now depends on the generated builder.
	use := "package geo\n\nvar origin, _ = NewPointBuilder().X(0).Y(0).Build()\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geo", "use.go"), []byte(use), 0o644))

	again, err := e.Derive(ctx, targets)
	require.NoError(t, err, logs.String())
	require.Len(t, again, 1)
	assert.Equal(t, files[0].Content, again[0].Content)

	stale, err := e.Check(ctx, targets)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestEngine_CallSiteBeforeFirstGenerate(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"geo/geo.go": geoSource,
		"geo/use.go": "package geo\n\nvar origin, _ = NewPointBuilder().X(0).Y(0).Build()\n",
	})

	files, err := New(WithDir(dir)).Derive(context.Background(), Targets("./geo", "", nil))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, string(files[0].Content), "func NewPointBuilder() *PointBuilder {")
}

func TestEngine_InvalidFieldType(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"geo/geo.go": "package geo\n\n//builder:derive\ntype Route struct {\n\tLength Meters\n}\n",
	})

	_, err := New(WithDir(dir)).Derive(context.Background(), Targets("./geo", "", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field Length has an invalid type")
	assert.Contains(t, err.Error(), "undefined: Meters")

	_, statErr := os.Stat(filepath.Join(dir, "geo", config.DefaultOutput))
	assert.True(t, os.IsNotExist(statErr))
}
