package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"builder-generator/internal/config"
	"builder-generator/internal/plan"
)

const examplesDir = "../../examples"

func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	var out, errOut bytes.Buffer

	code = run(args, &out, &errOut)

	return out.String(), errOut.String(), code
}

func TestCheck_BasicExample(t *testing.T) {
	stdout, stderr, code := runCLI(t, "check", "--pkg", examplesDir+"/basic")
	assert.Equal(t, exitOK, code, stderr)
	assert.Empty(t, stdout)
}

func TestInspect(t *testing.T) {
	stdout, stderr, code := runCLI(t, "inspect", "--pkg", examplesDir+"/basic", "--type", "Point,Name")
	require.Equal(t, exitOK, code, stderr)

	var report plan.Report
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Packages, 1)

	builders := report.Packages[0].Builders
	require.Len(t, builders, 2)
	assert.Equal(t, plan.BuilderReport{
		Record:  "Point",
		Builder: "PointBuilder",
		Error:   "PointBuildError",
		Factory: "NewPointBuilder",
		Fields: []plan.FieldReport{
			{Name: "X", Type: "int32"},
			{Name: "Y", Type: "int32"},
		},
	}, builders[0])
	assert.Equal(t, "Name", builders[1].Record)
}

func TestInspect_EmitConfig(t *testing.T) {
	stdout, stderr, code := runCLI(t, "inspect", "--pkg", examplesDir+"/shapes", "--emit-config")
	require.Equal(t, exitOK, code, stderr)

	f, err := config.Parse([]byte(stdout))
	require.NoError(t, err)
	require.Len(t, f.Targets, 1)
	assert.Equal(t, examplesDir+"/shapes", f.Targets[0].Package)
	assert.Equal(t, config.StringOrArray{"Circle"}, f.Targets[0].Types)
}

func TestGen_Misuse(t *testing.T) {
	_, stderr, code := runCLI(t, "gen", "--pkg", examplesDir+"/shapes", "--type", "Celsius")
	assert.Equal(t, exitMisuse, code)
	assert.Contains(t, stderr, "cannot derive builder")
	assert.Contains(t, stderr, "builder can apply only to struct types")

	_, err := os.Stat(filepath.Join(examplesDir, "shapes", config.DefaultOutput))
	assert.True(t, os.IsNotExist(err))
}

func TestGen_UnknownType(t *testing.T) {
	_, stderr, code := runCLI(t, "--log-format", "json", "inspect", "--pkg", examplesDir+"/basic", "--type", "Pint")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, `"level":"ERROR"`)
	assert.Contains(t, stderr, "did you mean Point?")
}

func TestGen_ConfigConflictsWithFlags(t *testing.T) {
	_, stderr, code := runCLI(t, "gen", "--config", "builders.yaml", "--type", "Point")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "--config cannot be combined")
}

func TestGenAndCheck_TempModule(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/tmp\n\ngo 1.24\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "geo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geo", "geo.go"),
		[]byte("package geo\n\ntype Point struct {\n\tX, Y int\n}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "builders.hcl"),
		[]byte("generate_comments = false\n\ntarget \"./geo\" {\n  output = \"point_builder.go\"\n  types  = [\"Point\"]\n}\n"), 0o644))

	configPath := filepath.Join(dir, "builders.hcl")

	stdout, _, code := runCLI(t, "check", "-C", dir, "--config", configPath)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stdout, "point_builder.go: missing")

	_, stderr, code := runCLI(t, "gen", "-C", dir, "--config", configPath, "--log-level", "debug")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "wrote builders")

	content, err := os.ReadFile(filepath.Join(dir, "geo", "point_builder.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "func (b PointBuilder) Build() (Point, error) {")
	assert.NotContains(t, string(content), "// Build returns")

	_, stderr, code = runCLI(t, "check", "-C", dir, "--config", configPath)
	assert.Equal(t, exitOK, code, stderr)
}

func TestGen_InvalidOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/tmp\n\ngo 1.24\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "geo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geo", "geo.go"),
		[]byte("package geo\n\ntype Point struct {\n\tX, Y int\n}\n"), 0o644))

	for _, out := range []string{"../escaped.txt", "../escaped.go", "notes.txt", "point_test.go"} {
		t.Run(out, func(t *testing.T) {
			_, stderr, code := runCLI(t, "gen", "-C", dir, "--pkg", "./geo", "--type", "Point", "--out", out)
			assert.Equal(t, exitFailure, code)
			assert.Contains(t, stderr, "invalid --out")
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "only go.mod and geo/ are expected")

	entries, err = os.ReadDir(filepath.Join(dir, "geo"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRoot_RejectsLogFlags(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--log-level", "verbose"}, "unknown log level"},
		{[]string{"--log-format", "yaml"}, "unknown log format"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			args := append(tt.args, "check", "--pkg", examplesDir+"/basic")

			_, stderr, code := runCLI(t, args...)
			assert.Equal(t, exitFailure, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}
