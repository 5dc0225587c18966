package parser

import (
	"log/slog"

	"github.com/tavoas/tavoas/internal/yamlnode"
	"gopkg.in/yaml.v3"
)

// JSONMediaType is the only media type whose example is consulted
const JSONMediaType = "application/json"

// ResolveExample returns the literal example under
// content → application/json → example of a request body or response
// section. Local $ref sections are followed against root. Anything missing,
// null or of the wrong shape yields an empty map.
func ResolveExample(root, section *yaml.Node) any {
	section = yamlnode.Follow(root, section)

	example, ok := yamlnode.Path(section, "content", JSONMediaType, "example")
	if !ok || yamlnode.IsNull(example) {
		return emptyExample()
	}

	value, err := yamlnode.Decode(example)
	if err != nil {
		slog.Debug("example could not be decoded", "line", example.Line, "error", err)
		return emptyExample()
	}
	return value
}

func emptyExample() map[string]any {
	return map[string]any{}
}
