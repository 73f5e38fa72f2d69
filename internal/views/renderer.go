package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"go.uber.org/zap"
)

const PageTemplate = "page"

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds the parsed page templates.
type Renderer struct {
	templates *template.Template
	logger    *zap.Logger
}

func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	if tmpl.Lookup(PageTemplate) == nil {
		return nil, fmt.Errorf("template %s not found", PageTemplate)
	}
	return &Renderer{
		templates: tmpl,
		logger:    logger.Named("Renderer"),
	}, nil
}

// Templates exposes the parsed set, e.g. for gin's SetHTMLTemplate.
func (r *Renderer) Templates() *template.Template {
	return r.templates
}

func (r *Renderer) Render(w io.Writer, view PageView) error {
	if err := r.templates.ExecuteTemplate(w, PageTemplate, view); err != nil {
		r.logger.Error("Failed to render page", zap.String("state", string(view.State)), zap.Error(err))
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
