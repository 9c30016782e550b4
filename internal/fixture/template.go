package fixture

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const (
	DefaultImportPath = "/src/rcsection.typ"
	DefaultShowRule   = "init_rcsection"
	DefaultLang       = "es"
	DefaultRawLang    = "rcs"
	DefaultPageSize   = "auto"
	DefaultPageMargin = "2pt"
)

const scaffold = `#import {{ typstString .ImportPath }}: *

#set page(height: {{ .PageHeight }}, width: {{ .PageWidth }}, margin: {{ .PageMargin }})
#set text(lang: {{ typstString .Lang }})
#show: {{ .ShowRule }}

#raw(
  block: true,
  lang: {{ typstString .RawLang }},
  read({{ list .SourceDir .Filename | join "/" | typstString }}).trim("\n"),
)
`

// typstEscaper escapes only what a Typst string literal requires; every other
// rune, printable or not, is kept verbatim.
var typstEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func typstString(s string) string {
	return `"` + typstEscaper.Replace(s) + `"`
}

func funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["typstString"] = typstString
	return funcs
}

var scaffoldTemplate = template.Must(
	template.New("fixture").
		Funcs(funcMap()).
		Option("missingkey=error").
		Parse(scaffold),
)

// Template describes one Typst test harness. SourceDir and Filename change per
// example; the remaining fields configure the rcsection renderer.
type Template struct {
	ImportPath string `yaml:"import_path" validate:"required"`
	ShowRule   string `yaml:"show_rule" validate:"required"`
	PageWidth  string `yaml:"page_width" validate:"required"`
	PageHeight string `yaml:"page_height" validate:"required"`
	PageMargin string `yaml:"page_margin" validate:"required"`
	Lang       string `yaml:"lang" validate:"required"`
	RawLang    string `yaml:"raw_lang" validate:"required"`

	SourceDir string `yaml:"-" validate:"-"`
	Filename  string `yaml:"-" validate:"-"`
}

// DefaultTemplate returns the scaffold used by the rcsection test suite.
func DefaultTemplate() Template {
	return Template{
		ImportPath: DefaultImportPath,
		ShowRule:   DefaultShowRule,
		PageWidth:  DefaultPageSize,
		PageHeight: DefaultPageSize,
		PageMargin: DefaultPageMargin,
		Lang:       DefaultLang,
		RawLang:    DefaultRawLang,
	}
}

// For returns a copy of t bound to one example.
func (t Template) For(sourceDir string, filename string) Template {
	t.SourceDir = sourceDir
	t.Filename = filename
	return t
}

// Render serializes the template. A template without a filename is never rendered.
func (t Template) Render() ([]byte, error) {
	if strings.TrimSpace(t.Filename) == "" {
		return nil, fmt.Errorf("render fixture: filename is empty")
	}
	if strings.TrimSpace(t.SourceDir) == "" {
		return nil, fmt.Errorf("render fixture for %q: source directory is empty", t.Filename)
	}

	var buf bytes.Buffer
	if err := scaffoldTemplate.Execute(&buf, t); err != nil {
		return nil, fmt.Errorf("render fixture for %q: %w", t.Filename, err)
	}
	return buf.Bytes(), nil
}
