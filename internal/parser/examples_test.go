package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tavoas/tavoas/internal/yamlnode"
)

func TestResolveExample(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    any
	}{
		{
			name:    "json example",
			section: "content:\n  application/json:\n    example: {a: 1}\n",
			want:    map[string]any{"a": 1},
		},
		{
			name:    "scalar example",
			section: "content:\n  application/json:\n    example: hello\n",
			want:    "hello",
		},
		{
			name:    "null example",
			section: "content:\n  application/json:\n    example: ~\n",
			want:    map[string]any{},
		},
		{
			name:    "other media type only",
			section: "content:\n  text/plain:\n    example: hello\n",
			want:    map[string]any{},
		},
		{
			name:    "media type is not a mapping",
			section: "content:\n  application/json: nope\n",
			want:    map[string]any{},
		},
		{
			name:    "schema without example",
			section: "content:\n  application/json:\n    schema: {type: object}\n",
			want:    map[string]any{},
		},
		{
			name:    "empty section",
			section: "",
			want:    map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section, err := LoadYAML([]byte(tt.section))
			if err != nil {
				t.Fatalf("Failed to load section: %v", err)
			}

			got := ResolveExample(nil, section)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("example mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveExampleFollowsLocalRef(t *testing.T) {
	root, err := LoadYAML([]byte(`
components:
  requestBodies:
    Body:
      content:
        application/json:
          example: {a: 1}
`))
	if err != nil {
		t.Fatalf("Failed to load document: %v", err)
	}
	section, _ := LoadYAML([]byte("$ref: '#/components/requestBodies/Body'"))

	got := ResolveExample(yamlnode.Root(root), section)
	if diff := cmp.Diff(map[string]any{"a": 1}, got); diff != "" {
		t.Errorf("example mismatch (-want +got):\n%s", diff)
	}

	external, _ := LoadYAML([]byte("$ref: 'bodies.yaml#/Body'"))
	if diff := cmp.Diff(map[string]any{}, ResolveExample(root, external)); diff != "" {
		t.Errorf("external reference should resolve to empty example:\n%s", diff)
	}
}
