package plan

import (
	"strings"

	"gopkg.in/yaml.v3"

	"builder-generator/internal/analyze"
	"builder-generator/internal/config"
)

// Report is a human-readable view of a plan, printed by the inspect command.
type Report struct {
	Packages []PackageReport `yaml:"packages"`
}

// PackageReport lists the builders planned for one package.
type PackageReport struct {
	Path     string          `yaml:"path"`
	Output   string          `yaml:"output"`
	Builders []BuilderReport `yaml:"builders"`
}

// BuilderReport shows a record schema next to its derived names.
type BuilderReport struct {
	Record  string        `yaml:"record"`
	Builder string        `yaml:"builder"`
	Error   string        `yaml:"error"`
	Factory string        `yaml:"factory"`
	Fields  []FieldReport `yaml:"fields"`
}

// FieldReport is a record field with its type spelled as in the package.
type FieldReport struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ExportReport builds the inspect report of a plan.
func ExportReport(p *Plan) *Report {
	report := &Report{Packages: []PackageReport{}}

	for _, pkg := range p.Packages {
		stringer := analyze.NewTypeStringer(pkg.Path)

		pr := PackageReport{
			Path:     pkg.Path,
			Output:   pkg.Output,
			Builders: []BuilderReport{},
		}

		for _, bp := range pkg.Builders {
			br := BuilderReport{
				Record:  bp.RecordName(),
				Builder: bp.BuilderName,
				Error:   bp.ErrorName,
				Factory: bp.FactoryName,
				Fields:  []FieldReport{},
			}

			for _, f := range bp.Fields {
				br.Fields = append(br.Fields, FieldReport{
					Name: f.Name,
					Type: stringer.TypeString(f.Type.GoType),
				})
			}

			pr.Builders = append(pr.Builders, br)
		}

		report.Packages = append(report.Packages, pr)
	}

	return report
}

// ExportReportYAML renders the inspect report of a plan as YAML.
func ExportReportYAML(p *Plan) ([]byte, error) {
	return yaml.Marshal(ExportReport(p))
}

// ExportConfig returns a configuration file that pins the planned types, so
// that marker discovery can be replaced by an explicit list. Packages are
// listed by pattern when it names exactly that package, by import path
// otherwise.
func ExportConfig(p *Plan) *config.File {
	f := &config.File{
		Version: config.DefaultVersion,
		Targets: []config.Target{},
	}

	for _, pkg := range p.Packages {
		pattern := pkg.Pattern
		if pattern == "" || strings.Contains(pattern, "...") {
			pattern = pkg.Path
		}

		target := config.Target{
			Package: pattern,
			Output:  pkg.Output,
		}

		for _, bp := range pkg.Builders {
			target.Types = append(target.Types, bp.RecordName())
		}

		f.Targets = append(f.Targets, target)
	}

	return f
}
