package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/microcosm-cc/bluemonday"

	"github.com/omarshaarawi/powerboard/internal/config"
	"github.com/omarshaarawi/powerboard/internal/models"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

// Page writes a View as the rankings HTML document. The DOM ids league-name,
// week-label, rankings-list and refresh-btn are part of its contract.
type Page struct {
	tmpl   *template.Template
	policy *bluemonday.Policy
}

// NewPage parses the page template. Summaries are inserted verbatim unless
// SanitizeSummaries is set, in which case they pass a UGC policy first.
func NewPage(cfg config.Render) (*Page, error) {
	p := &Page{}
	if cfg.SanitizeSummaries {
		p.policy = bluemonday.UGCPolicy()
	}

	tmpl, err := template.New("page.html.tmpl").
		Funcs(template.FuncMap{"summary": p.summary}).
		ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	p.tmpl = tmpl
	return p, nil
}

func (p *Page) Execute(w io.Writer, view models.View) error {
	return p.tmpl.Execute(w, view)
}

func (p *Page) summary(raw string) template.HTML {
	if p.policy != nil {
		return template.HTML(p.policy.Sanitize(raw))
	}
	return template.HTML(raw)
}
