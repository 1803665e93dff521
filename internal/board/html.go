package board

import (
	"embed"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*
var templates embed.FS

var pageTmpl = template.Must(template.ParseFS(templates, "templates/index.html"))

// PageData is what the dashboard page is rendered from. Mode picks the upload
// inputs: "html" posts a single "file" field, anything else posts the
// attendance, scores and fees sheets.
type PageData struct {
	Mode  string
	Board *Board
	Alert string
}

// WritePage renders the dashboard page. Every interpolated value is escaped.
func WritePage(w io.Writer, data PageData) error {
	if data.Board == nil {
		data.Board = &Board{}
	}
	return pageTmpl.Execute(w, data)
}

// InjectAlert returns page with one escaped alert inserted before its closing
// body tag, or appended when the page has none.
func InjectAlert(page, alert string) string {
	banner := `<div class="alert" role="alert">` + template.HTMLEscapeString(alert) + `</div>`
	const closeTag = "</body>"
	for i := len(page) - len(closeTag); i >= 0; i-- {
		if strings.EqualFold(page[i:i+len(closeTag)], closeTag) {
			return page[:i] + banner + page[i:]
		}
	}
	return page + banner
}
