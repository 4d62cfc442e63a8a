package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

//go:embed templates
var embedded embed.FS

// TemplateFS is where ParseFS reads from. Tests may swap it.
var TemplateFS fs.FS = embedded

// Template wraps a parsed template with helper methods for rendering.
type Template struct {
	tmpl *template.Template
	log  zerolog.Logger
}

// TemplateData is the standard data structure passed to all templates.
type TemplateData struct {
	// CSRF token for the analyze request; empty when CSRF is disabled
	CSRFToken string

	Error string

	// Page-specific data
	Data interface{}

	Title       string
	Description string

	CurrentPath string

	IsDevelopment bool
}

// DefaultFuncMap returns the functions available in all templates.
func DefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"trim":  strings.TrimSpace,
		"join":  strings.Join,

		"truncate": truncate,
		"default":  defaultValue,
	}
}

// ParseFS parses the base layout and the given page templates.
//
//	tmpl, err := views.ParseFS("pages/index.gohtml")
//	// parses templates/layouts/base.gohtml, then templates/pages/index.gohtml
func ParseFS(patterns ...string) (*Template, error) {
	tmpl := template.New("").Funcs(DefaultFuncMap())

	basePath := "templates/layouts/base.gohtml"
	baseContent, err := fs.ReadFile(TemplateFS, basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read base template: %w", err)
	}

	tmpl, err = tmpl.Parse(string(baseContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base template: %w", err)
	}

	// Pages define their own "content" block
	for _, pattern := range patterns {
		fullPattern := "templates/" + pattern
		content, err := fs.ReadFile(TemplateFS, fullPattern)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", pattern, err)
		}

		tmpl, err = tmpl.Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", pattern, err)
		}
	}

	return &Template{tmpl: tmpl, log: zerolog.Nop()}, nil
}

// MustParseFS is like ParseFS but panics on error.
func MustParseFS(patterns ...string) *Template {
	tmpl, err := ParseFS(patterns...)
	if err != nil {
		panic(fmt.Sprintf("failed to parse templates: %v", err))
	}
	return tmpl
}

// WithLogger returns a copy of t that reports render errors to log.
func (t *Template) WithLogger(log zerolog.Logger) *Template {
	cp := *t
	cp.log = log
	return &cp
}

func (t *Template) Execute(w io.Writer, data *TemplateData) error {
	return t.tmpl.ExecuteTemplate(w, "base", data)
}

// ExecuteHTTP renders the template as a 200 response.
func (t *Template) ExecuteHTTP(w http.ResponseWriter, r *http.Request, data *TemplateData) {
	t.ExecuteHTTPWithStatus(w, r, http.StatusOK, data)
}

// ExecuteHTTPWithStatus renders to a buffer first so a failed render never sends a partial page.
func (t *Template) ExecuteHTTPWithStatus(w http.ResponseWriter, r *http.Request, status int, data *TemplateData) {
	if data != nil {
		data.CurrentPath = r.URL.Path
	}

	buf := &bytes.Buffer{}
	if err := t.Execute(buf, data); err != nil {
		t.log.Error().Err(err).Str("path", r.URL.Path).Msg("template execution failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func truncate(s string, length int) string {
	if len(s) <= length || length < 4 {
		return s
	}
	return s[:length-3] + "..."
}

func defaultValue(value, defaultVal interface{}) interface{} {
	if value == nil || value == "" || value == 0 {
		return defaultVal
	}
	return value
}
