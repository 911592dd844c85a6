package handler

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"cell": func(id int, checked bool) cellView {
		return cellView{ID: id, Checked: checked}
	},
}).ParseFS(templateFS, "templates/*.html"))

// Page holds the static text of the index page.
type Page struct {
	Title string

	// Message is rendered unescaped; callers sanitize it first.
	Message template.HTML
}

type indexView struct {
	Title   string
	Message template.HTML
	Cells   []bool
	Checked int
}

type cellView struct {
	ID      int
	Checked bool
}

func renderIndex(w io.Writer, v indexView) error {
	return templates.ExecuteTemplate(w, "index.html", v)
}

func renderCell(w io.Writer, id int, checked bool) error {
	return templates.ExecuteTemplate(w, "cell", cellView{ID: id, Checked: checked})
}

func renderCounter(w io.Writer, n uint64) error {
	return templates.ExecuteTemplate(w, "counter", n)
}
