package presenter

import (
	"io"
	"text/template"

	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
)

var summaryTmpl = template.Must(template.New("summary").Parse(
	`Optimal dimensions:
{{range .Lines}}
  • {{.Label}}{{if .Symbol}} ({{.Symbol}}){{end}} = {{.Text}} {{.Unit}}{{end}}

{{.Note}}
`))

var derivationTmpl = template.Must(template.New("derivation").Parse(
	`Minimizing the area of an open-top box:
{{range .}}
{{.Number}}. {{.Title}}:{{range .Lines}}
   {{.}}{{end}}
{{end}}`))

var facesTmpl = template.Must(template.New("faces").Parse(
	`Open-top box, {{len .}} faces:
{{range .}}  {{printf "%-5s" .Name}} {{range .Corners}} {{.}}{{end}}
{{end}}`))

// WriteSummary renders the numeric summary as plain text.
func (p *Presenter) WriteSummary(w io.Writer, spec valueobject.BoxSpec) error {
	return summaryTmpl.Execute(w, p.Summary(spec))
}

// WriteDerivation renders the ten derivation steps as plain text.
func (p *Presenter) WriteDerivation(w io.Writer, spec valueobject.BoxSpec) error {
	return derivationTmpl.Execute(w, p.Derivation(spec))
}

// WriteFaces lists the five faces of the open box with their corners.
func (p *Presenter) WriteFaces(w io.Writer, spec valueobject.BoxSpec) error {
	faces := spec.Faces()
	return facesTmpl.Execute(w, faces[:])
}
