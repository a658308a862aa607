package gen

import "text/template"

// builderTypeTemplate renders the builder type and its constructor. All
// values live in a single unexported struct field so that they never clash
// with the setters, which carry the record's field names.
var builderTypeTemplate = template.Must(template.New("builder type").Parse(`
{{if .Comments}}// {{.Builder}} builds {{.Record}} values one field at a time.
// Obtain it from {{.Factory}} and do not reuse it after {{.Finalize}}.
{{end}}type {{.Builder}} struct {
	{{.Storage}} struct {
{{range .Fields}}		{{.Name}} *{{.Type}}
{{end}}	}
}

{{if .Comments}}// {{.Factory}} returns a builder with no fields set.
{{end}}func {{.Factory}}() *{{.Builder}} {
	return &{{.Builder}}{}
}
`))
