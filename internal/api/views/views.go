// Package views renders the registration pages from embedded templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"user-registration/internal/api/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the parsed page templates.
type Renderer struct {
	register *template.Template
	success  *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	register, err := parse("register.html")
	if err != nil {
		return nil, err
	}
	success, err := parse("success.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{register: register, success: success}, nil
}

// MustNew is New for package-level setup and tests.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func parse(page string) (*template.Template, error) {
	t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
	}
	return t, nil
}

// Register writes the registration form.
func (r *Renderer) Register(w io.Writer, page types.RegisterPage) error {
	return execute(w, r.register, page)
}

// Success writes the confirmation page.
func (r *Renderer) Success(w io.Writer) error {
	return execute(w, r.success, nil)
}

func execute(w io.Writer, t *template.Template, data any) error {
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
