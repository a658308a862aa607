package gen

import "text/template"

// settersTemplate renders one chaining setter per field. Setting a field
// twice keeps the last value.
var settersTemplate = template.Must(template.New("setters").Parse(`{{range .Fields}}
{{if $.Comments}}// {{.Name}} sets the {{.Name}} field.
{{end}}func ({{$.Receiver}} *{{$.Builder}}) {{.Name}}(v {{.Type}}) *{{$.Builder}} {
	{{$.Receiver}}.{{$.Storage}}.{{.Name}} = &v
	return {{$.Receiver}}
}
{{end}}`))
