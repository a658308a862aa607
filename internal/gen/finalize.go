package gen

import "text/template"

// finalizeTemplate renders Build and the record's error type. Build checks
// fields in declaration order and stops at the first unset one.
var finalizeTemplate = template.Must(template.New("finalize").Parse(`
{{if .Comments}}// {{.Finalize}} returns the {{.Record}} assembled from the set fields.
// If a field was never set, it returns the zero {{.Record}} and a
// *{{.Error}} naming the first such field in declaration order.
{{end}}func ({{.Receiver}} {{.Builder}}) {{.Finalize}}() ({{.Record}}, error) {
{{range .Fields}}	if {{$.Receiver}}.{{$.Storage}}.{{.Name}} == nil {
		return {{$.Record}}{}, &{{$.Error}}{FieldRequired: {{printf "%q" .Name}}}
	}
{{end}}
	return {{.Record}}{
{{range .Fields}}		{{.Name}}: *{{$.Receiver}}.{{$.Storage}}.{{.Name}},
{{end}}	}, nil
}

{{if .Comments}}// {{.Error}} names the {{.Record}} field that was missing when {{.Finalize}} was called.
{{end}}type {{.Error}} struct {
	FieldRequired string
}

{{if .Comments}}// Error implements the error interface.
{{end}}func (e *{{.Error}}) Error() string {
	return e.FieldRequired + " field is required"
}
`))
