// Package generator renders Tavern test documents from resolved scenarios.
package generator

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/tavoas/tavoas/internal/models"
	"github.com/tavoas/tavoas/internal/parser"
	"gopkg.in/yaml.v3"
)

//go:embed templates/tavern.yaml.j2
var defaultTemplate []byte

func init() {
	// Output is YAML, not HTML.
	pongo2.SetAutoescape(false)

	registerFilter("to_nice_yaml", filterToNiceYAML)
	registerFilter("indent", filterIndent)
}

func registerFilter(name string, fn pongo2.FilterFunction) {
	var err error
	if pongo2.FilterExists(name) {
		err = pongo2.ReplaceFilter(name, fn)
	} else {
		err = pongo2.RegisterFilter(name, fn)
	}
	if err != nil {
		panic(fmt.Sprintf("generator: register filter %s: %v", name, err))
	}
}

// Options configures a Generator
type Options struct {
	// TemplatePath is a pongo2 (Django/Jinja2 style) template; empty selects the built-in Tavern template
	TemplatePath string
	// ResponseStatus is exposed to templates as status_code; defaults to "200"
	ResponseStatus string
}

// Generator renders a resolved scenario into a test document
type Generator struct {
	tpl    *pongo2.Template
	status string
}

// NewGenerator creates a new generator, parsing its template up front
func NewGenerator(opts Options) (*Generator, error) {
	status := opts.ResponseStatus
	if status == "" {
		status = parser.DefaultResponseStatus
	}

	tpl, err := loadTemplate(opts.TemplatePath)
	if err != nil {
		return nil, err
	}
	return &Generator{tpl: tpl, status: status}, nil
}

func loadTemplate(path string) (*pongo2.Template, error) {
	if path == "" {
		loader, err := pongo2.NewLocalFileSystemLoader("")
		if err != nil {
			return nil, fmt.Errorf("failed to create template loader: %w", err)
		}
		tpl, err := newSet(loader).FromString(string(defaultTemplate))
		if err != nil {
			return nil, fmt.Errorf("failed to parse built-in template: %w", err)
		}
		return tpl, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve template path: %w", err)
	}

	// Includes and extends resolve relative to the template's own directory.
	loader, err := pongo2.NewLocalFileSystemLoader(filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("failed to create template loader: %w", err)
	}
	tpl, err := newSet(loader).FromFile(filepath.Base(abs))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	return tpl, nil
}

func newSet(loader pongo2.TemplateLoader) *pongo2.TemplateSet {
	set := pongo2.NewSet("tavoas", loader)
	set.Options.TrimBlocks = true
	set.Options.LStripBlocks = true
	return set
}

// Render executes the template with test_name and operations in scenario order
func (g *Generator) Render(res models.Resolution) (string, error) {
	operations := make([]map[string]any, 0, len(res.Steps))
	for _, step := range res.Steps {
		operations = append(operations, g.templateContext(step))
	}

	out, err := g.tpl.Execute(pongo2.Context{
		"test_name":  res.TestName,
		"operations": operations,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return strings.TrimRight(out, "\n") + "\n", nil
}

// templateContext exposes a step under snake_case keys so templates written
// for the Jinja2 tooling keep working.
func (g *Generator) templateContext(step models.ScenarioStep) map[string]any {
	return map[string]any{
		"operation_id":     step.OperationID,
		"custom_name":      step.Name,
		"name":             step.Name,
		"method":           step.Method,
		"path":             step.Path,
		"url":              step.Path,
		"summary":          step.Summary,
		"tags":             step.Tags,
		"request_body":     step.RequestExample,
		"response_body":    step.ResponseExample,
		"request_example":  step.RequestExample,
		"response_example": step.ResponseExample,
		"status_code":      statusValue(g.status),
	}
}

func statusValue(status string) any {
	if code, err := strconv.Atoi(status); err == nil {
		return code
	}
	return status
}

// ToNiceYAML renders v as block-style YAML without the trailing newline
func ToNiceYAML(v any, indent int) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func filterToNiceYAML(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	indent := 2
	if param != nil && !param.IsNil() && param.Integer() > 0 {
		indent = param.Integer()
	}

	out, err := ToNiceYAML(in.Interface(), indent)
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:to_nice_yaml", OrigError: err}
	}
	return pongo2.AsSafeValue(out), nil
}

// filterIndent indents every line but the first, leaving blank lines alone
func filterIndent(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	width := 4
	if param != nil && !param.IsNil() {
		width = param.Integer()
	}
	pad := strings.Repeat(" ", max(width, 0))

	lines := strings.Split(in.String(), "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return pongo2.AsSafeValue(strings.Join(lines, "\n")), nil
}
