package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"text/template"

	"builder-generator/internal/analyze"
	"builder-generator/internal/plan"
)

// Header is the first line of every generated file.
const Header = "// Code generated by builder-generator. DO NOT EDIT."

// BuildConstraint keeps generated files out of their own regeneration.
const BuildConstraint = "//go:build !" + analyze.GeneratedBuildTag

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
	// DebugUnformatted writes the raw template output next to the intended
	// file when it fails to format.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		GenerateComments: true,
		DebugUnformatted: true,
	}
}

// Generator generates Go code from a builder plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Package is the import path of the package the file belongs to.
	Package string
	// Dir is the directory the file is written to.
	Dir string
	// Filename is the name of the file (e.g., "builder_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the location of the file on disk.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate generates one file per planned package.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for i := range p.Packages {
		pkg := &p.Packages[i]

		file, err := g.generatePackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", pkg.Path, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// fileData holds the data of the file header template.
type fileData struct {
	PackageName string
	Imports     []importSpec
}

// builderData holds the data shared by the per-record stage templates.
type builderData struct {
	Record   string
	Builder  string
	Error    string
	Factory  string
	Storage  string
	Receiver string
	Finalize string
	Fields   []fieldData
	Comments bool
}

type fieldData struct {
	Name string
	Type string
}

// stages render the declarations of one record, in file order.
var stages = []*template.Template{
	builderTypeTemplate,
	settersTemplate,
	finalizeTemplate,
}

func (g *Generator) generatePackage(pkg *plan.PackagePlan) (*GeneratedFile, error) {
	tf := newTypeFormatter(pkg.Path, pkg.Reserved)

	// Declarations are rendered first: imports are only known afterwards.
	var body bytes.Buffer

	for i := range pkg.Builders {
		bp := &pkg.Builders[i]
		data, err := g.buildTemplateData(bp, tf)
		if err != nil {
			return nil, err
		}

		for _, stage := range stages {
			if err := stage.Execute(&body, data); err != nil {
				return nil, fmt.Errorf("executing %s template for %s: %w", stage.Name(), bp.RecordName(), err)
			}
		}
	}

	var buf bytes.Buffer

	err := headerTemplate.Execute(&buf, fileData{
		PackageName: pkg.Name,
		Imports:     tf.imports(),
	})
	if err != nil {
		return nil, fmt.Errorf("executing header template: %w", err)
	}

	buf.Write(body.Bytes())

	file := &GeneratedFile{
		Package:  pkg.Path,
		Dir:      pkg.Dir,
		Filename: pkg.Output,
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugUnformatted {
			_ = writeDebugUnformatted(pkg.Dir, pkg.Output, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w", err)
	}

	file.Content = formatted

	return file, nil
}

// buildTemplateData constructs the template data of one record.
func (g *Generator) buildTemplateData(bp *plan.BuilderPlan, tf *typeFormatter) (*builderData, error) {
	data := &builderData{
		Record:   bp.RecordName(),
		Builder:  bp.BuilderName,
		Error:    bp.ErrorName,
		Factory:  bp.FactoryName,
		Storage:  bp.StorageName,
		Receiver: bp.Receiver,
		Finalize: plan.FinalizeName,
		Comments: g.config.GenerateComments,
	}

	for _, f := range bp.Fields {
		if f.Type == nil || f.Type.GoType == nil {
			return nil, fmt.Errorf("field %s of %s has no type information", f.Name, bp.RecordName())
		}

		data.Fields = append(data.Fields, fieldData{
			Name: f.Name,
			Type: tf.typeString(f.Type.GoType),
		})
	}

	return data, nil
}

var headerTemplate = template.Must(template.New("header").Parse(Header + `

` + BuildConstraint + `

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}`))
