package parser

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pb33f/libopenapi"
	"github.com/tavoas/tavoas/internal/models"
	"github.com/tavoas/tavoas/internal/yamlnode"
	"gopkg.in/yaml.v3"
)

// DefaultResponseStatus is the response code whose example is used by default
const DefaultResponseStatus = "200"

// httpMethods lists the path item keys that are treated as operations
var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// Info describes the document as recognised by libopenapi
type Info struct {
	Title   string
	Version string // OpenAPI/Swagger version, e.g. 3.0.3
}

// Parser holds a permissively loaded OpenAPI document
type Parser struct {
	root     *yaml.Node
	info     Info
	warnings []string
}

// ExtractOptions tunes operation extraction
type ExtractOptions struct {
	// ResponseStatus selects which response's example is resolved; defaults to "200"
	ResponseStatus string
}

// ParseFile parses an OpenAPI specification file and returns a Parser instance.
// A missing file is an error; unreadable YAML is not.
func ParseFile(filePath string) (*Parser, error) {
	if err := RequireFiles(filePath); err != nil {
		return nil, err
	}

	specBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI file: %w", err)
	}

	p := Parse(specBytes)
	slog.Debug("loaded OpenAPI document",
		"file", filePath, "title", p.info.Title, "version", p.info.Version)
	return p, nil
}

// Parse builds a Parser from raw YAML or JSON bytes. Empty or malformed input
// yields an empty document and a warning instead of an error.
func Parse(specBytes []byte) *Parser {
	p := &Parser{}

	root, err := LoadYAML(specBytes)
	if err != nil {
		p.warnings = append(p.warnings,
			fmt.Sprintf("invalid YAML, treating document as empty: %v", err))
		return p
	}
	p.root = root
	if yamlnode.Root(root) == nil {
		return p
	}

	p.info = p.sniff(specBytes)
	return p
}

// LoadYAML decodes bytes into an ordered node tree. Empty input yields an empty node.
func LoadYAML(data []byte) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

// sniff asks libopenapi which flavour of document this is. Failure only
// produces a warning; extraction never depends on it.
func (p *Parser) sniff(specBytes []byte) Info {
	info := Info{Title: yamlnode.String(p.rawInfo(), "title")}

	document, err := libopenapi.NewDocument(specBytes)
	if err != nil {
		p.warnings = append(p.warnings,
			fmt.Sprintf("document is not recognised as OpenAPI: %v", err))
		return info
	}
	info.Version = document.GetVersion()

	if !strings.HasPrefix(info.Version, "3") {
		return info
	}
	model, errs := document.BuildV3Model()
	if errs != nil {
		slog.Debug("libopenapi reported model errors", "errors", errs)
	}
	if model != nil && model.Model.Info != nil && model.Model.Info.Title != "" {
		info.Title = model.Model.Info.Title
	}
	return info
}

func (p *Parser) rawInfo() *yaml.Node {
	info, _ := yamlnode.Lookup(yamlnode.Root(p.root), "info")
	return info
}

// Info returns the document title and version
func (p *Parser) Info() Info {
	return p.info
}

// Warnings returns problems found while loading the document
func (p *Parser) Warnings() []string {
	return p.warnings
}

// Root returns the document's top level node, or nil for an empty document
func (p *Parser) Root() *yaml.Node {
	return yamlnode.Root(p.root)
}

// GetOperations extracts every operation from the document's paths, in document order.
// Path items and operations that are not mappings are skipped silently.
func (p *Parser) GetOperations(opts ExtractOptions) []models.Operation {
	status := opts.ResponseStatus
	if status == "" {
		status = DefaultResponseStatus
	}

	root := p.Root()
	paths, _ := yamlnode.Lookup(root, "paths")

	var operations []models.Operation
	for _, pathItem := range yamlnode.Entries(paths) {
		if !yamlnode.IsMapping(pathItem.Value) {
			continue
		}

		for _, entry := range yamlnode.Entries(pathItem.Value) {
			if !httpMethods[strings.ToLower(entry.Key)] || !yamlnode.IsMapping(entry.Value) {
				continue
			}
			op := entry.Value

			requestBody, _ := yamlnode.Lookup(op, "requestBody")
			response, _ := yamlnode.Path(op, "responses", status)

			operations = append(operations, models.Operation{
				OperationID:     yamlnode.String(op, "operationId"),
				Summary:         yamlnode.String(op, "summary"),
				Method:          strings.ToUpper(entry.Key),
				Path:            pathItem.Key,
				Tags:            tags(op),
				RequestExample:  ResolveExample(root, requestBody),
				ResponseExample: ResolveExample(root, response),
			})
		}
	}

	return operations
}

func tags(op *yaml.Node) []string {
	node, _ := yamlnode.Lookup(op, "tags")
	return yamlnode.Strings(node)
}
