package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/aaronromeo/swolelog/internal/exercise"
	"github.com/aaronromeo/swolelog/internal/workout"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// Templates holds all page templates, keyed by page name.
type Templates struct {
	pages map[string]*template.Template
}

// RowView is one exercise row as the form renders it.
type RowView struct {
	Index  int
	Row    workout.Row
	Cardio bool
}

// FormPage is the data the form page renders.
type FormPage struct {
	Title       string
	Date        string
	Rows        []RowView
	Categorized bool
	Exercises   []exercise.Definition
	Categories  []exercise.Category
	Flash       string
	FlashKind   string
	Problems    []string
}

// NewFormPage builds the page for a draft under the given variant.
func NewFormPage(d workout.Draft, v workout.Variant, catalog *exercise.Catalog) FormPage {
	rows := make([]RowView, len(d.Exercises))
	for i, r := range d.Exercises {
		rows[i] = RowView{Index: i, Row: r, Cardio: v.KindOf(r) == exercise.Cardio}
	}
	return FormPage{
		Title:       "Workout Tracker",
		Date:        d.Date,
		Rows:        rows,
		Categorized: v.Categorized(),
		Exercises:   catalog.Exercises(),
		Categories:  catalog.Categories(),
	}
}

// Load parses the layout and every page on top of its own clone of it.
func Load() (*Templates, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"input": func(r workout.Row, field string) string {
			return r.Input(workout.Field(field))
		},
	}

	base, err := template.New("base").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob page templates: %w", err)
	}

	pages := map[string]*template.Template{}
	for _, f := range pageFiles {
		name := path.Base(f)
		if name == "layout.html" {
			continue
		}
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base template: %w", err)
		}
		if _, err := clone.ParseFS(templateFS, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = clone
	}
	return &Templates{pages: pages}, nil
}

// ExecuteTemplate renders a page through the layout.
func (t *Templates) ExecuteTemplate(w io.Writer, name string, data any) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
