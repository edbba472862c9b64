package generator

import (
	"embed"
	"strings"
	"sync"
	"text/template"

	"github.com/calumari/ts2mbt/internal/errors"
)

const (
	tmplHeader    = "header"
	tmplStruct    = "struct"
	tmplIndexer   = "indexer"
	tmplMethod    = "method"
	tmplEnum      = "enum"
	tmplFnAlias   = "fnalias"
	tmplTypeAlias = "typealias"
)

const templatePattern = "templates/*.gtpl"

//go:embed templates/*.gtpl
var templatesFS embed.FS

var (
	fileTmpl     *template.Template
	tmplInitOnce sync.Once
	tmplInitErr  error
)

// validateTemplates ensures all required templates are defined
func validateTemplates() error {
	required := []string{
		tmplHeader,
		tmplStruct,
		tmplIndexer,
		tmplMethod,
		tmplEnum,
		tmplFnAlias,
		tmplTypeAlias,
	}
	for _, name := range required {
		if fileTmpl.Lookup(name) == nil {
			return errors.Newf("required template %q not found", name)
		}
	}
	return nil
}

// ensureTemplates parses and validates the embedded templates once.
func ensureTemplates() error {
	tmplInitOnce.Do(func() {
		t, err := template.New("moonbit").ParseFS(templatesFS, templatePattern)
		if err != nil {
			tmplInitErr = errors.Wrap(err, "parse templates")
			return
		}
		fileTmpl = t
		tmplInitErr = validateTemplates()
	})
	return tmplInitErr
}

// render executes a named template. Templates are embedded and validated, so
// a failure here is a programming error; it is logged and yields "".
func (g *generator) render(name string, data any) string {
	if err := ensureTemplates(); err != nil {
		g.log.Errorw("templates unavailable", "error", err)
		return ""
	}
	var b strings.Builder
	if err := fileTmpl.ExecuteTemplate(&b, name, data); err != nil {
		g.log.Errorw("render failed", "template", name, "error", err)
		return ""
	}
	return b.String()
}
