// Package scenario loads scenario definitions and resolves them against the
// operations of an OpenAPI document.
package scenario

import (
	"fmt"
	"os"

	"github.com/tavoas/tavoas/internal/models"
	"github.com/tavoas/tavoas/internal/parser"
	"github.com/tavoas/tavoas/internal/yamlnode"
)

// DefaultTestName is used when neither the scenario nor the configuration names the test
const DefaultTestName = "テスト"

// LoadFile reads a scenario definition. A missing file is an error; malformed
// YAML loads as an empty scenario with a warning.
func LoadFile(path string) (models.Scenario, error) {
	if err := parser.RequireFiles(path); err != nil {
		return models.Scenario{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Scenario{}, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data), nil
}

// Parse decodes a scenario document of the form
//
//	test_name: Pet lifecycle
//	scenario:
//	  - operationId: createPets
//	    name: Register a pet
//
// Items that are not mappings are kept as empty items so that the resolver
// reports them at their original position.
func Parse(data []byte) models.Scenario {
	var sc models.Scenario

	doc, err := parser.LoadYAML(data)
	if err != nil {
		sc.Warnings = append(sc.Warnings, models.Warning{
			Index:   -1,
			Message: fmt.Sprintf("invalid scenario YAML, treating as empty: %v", err),
		})
		return sc
	}

	root := yamlnode.Root(doc)
	sc.TestName = yamlnode.String(root, "test_name")

	items, _ := yamlnode.Lookup(root, "scenario")
	for _, item := range yamlnode.Items(items) {
		sc.Items = append(sc.Items, models.ScenarioItem{
			OperationID: yamlnode.String(item, "operationId"),
			Name:        yamlnode.String(item, "name"),
		})
	}

	return sc
}
