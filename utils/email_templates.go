package utils

import (
	"bytes"
	"html/template"
)

const NewProgramSubject = "Une nouvelle série vient d'être publiée !"

var newProgramTemplate = template.Must(template.New("new_program").Parse(`<h1>{{ .Title }}</h1>
<p><b>Catégorie :</b> {{ .Category }}</p>
{{ if .Poster }}<p><img src="{{ .Poster }}" alt="{{ .Title }}"></p>{{ end }}
<p>{{ .Summary }}</p>
<p><a href="{{ .URL }}">Voir la série</a></p>
`))

type NewProgramEmailData struct {
	Title    string
	Summary  string
	Category string
	Poster   string
	URL      string
}

func RenderNewProgramEmail(data NewProgramEmailData) (string, error) {
	var buf bytes.Buffer
	if err := newProgramTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
