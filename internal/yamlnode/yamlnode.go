// Package yamlnode provides defaulting accessors over loosely typed YAML trees.
//
// Every lookup tolerates malformed input: a missing key, a wrong node kind or a
// nil node all yield the zero result instead of an error, so callers walking an
// untrusted document never have to repeat kind checks.
package yamlnode

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// maxRefDepth bounds how many local references Follow will chase.
const maxRefDepth = 16

// Entry is a single key/value pair of a mapping node, in document order.
type Entry struct {
	Key   string
	Value *yaml.Node
}

// Root unwraps a document node and any aliases, returning the top level value.
// It returns nil for an empty document.
func Root(n *yaml.Node) *yaml.Node {
	n = resolve(n)
	if n == nil {
		return nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return resolve(n.Content[0])
	}
	if n.Kind == 0 {
		return nil
	}
	return n
}

// IsMapping reports whether n is a mapping node.
func IsMapping(n *yaml.Node) bool {
	n = resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// IsNull reports whether n is absent or an explicit YAML null.
func IsNull(n *yaml.Node) bool {
	n = resolve(n)
	if n == nil || n.Kind == 0 {
		return true
	}
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// Lookup returns the value stored under key in mapping n.
// Keys are compared by their textual form, so an unquoted 200 matches "200".
// Merge keys (<<) are applied and a repeated key keeps its last value.
func Lookup(n *yaml.Node, key string) (*yaml.Node, bool) {
	for _, e := range Entries(n) {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Path walks nested mappings along keys.
func Path(n *yaml.Node, keys ...string) (*yaml.Node, bool) {
	cur := n
	for _, key := range keys {
		next, ok := Lookup(cur, key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Entries returns the key/value pairs of mapping n in document order.
// Non-mapping nodes have no entries.
//
// Entries behave like the mapping a YAML loader would build: keys pulled in
// through merge keys (<<: *anchor) come first and are overridden by keys
// written in the mapping itself, and a repeated key keeps the position of its
// first occurrence and the value of its last.
func Entries(n *yaml.Node) []Entry {
	return mappingEntries(n, 0)
}

func mappingEntries(n *yaml.Node, depth int) []Entry {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode || depth > maxRefDepth {
		return nil
	}

	var merged, own []Entry
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if isMergeKey(key) {
			merged = append(merged, mergeSources(value, depth)...)
			continue
		}
		own = append(own, Entry{Key: key.Value, Value: resolve(value)})
	}

	entries := make([]Entry, 0, len(merged)+len(own))
	pos := make(map[string]int, cap(entries))
	for _, e := range append(merged, own...) {
		if i, ok := pos[e.Key]; ok {
			entries[i].Value = e.Value
			continue
		}
		pos[e.Key] = len(entries)
		entries = append(entries, e)
	}
	return entries
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

// mergeSources expands the value of a merge key. In a sequence of mappings
// the earlier ones take precedence, so they are emitted last.
func mergeSources(value *yaml.Node, depth int) []Entry {
	value = resolve(value)
	if value == nil {
		return nil
	}
	switch value.Kind {
	case yaml.MappingNode:
		return mappingEntries(value, depth+1)
	case yaml.SequenceNode:
		var out []Entry
		for i := len(value.Content) - 1; i >= 0; i-- {
			out = append(out, mappingEntries(value.Content[i], depth+1)...)
		}
		return out
	}
	return nil
}

// Items returns the elements of sequence n.
func Items(n *yaml.Node) []*yaml.Node {
	n = resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]*yaml.Node, 0, len(n.Content))
	for _, item := range n.Content {
		items = append(items, resolve(item))
	}
	return items
}

// Scalar returns the text of a non-null scalar node, or "" for anything else.
func Scalar(n *yaml.Node) string {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || IsNull(n) {
		return ""
	}
	return n.Value
}

// String looks up key in mapping n and returns its scalar text, or "".
func String(n *yaml.Node, key string) string {
	v, ok := Lookup(n, key)
	if !ok {
		return ""
	}
	return Scalar(v)
}

// Strings returns the scalar elements of sequence n, skipping everything else.
func Strings(n *yaml.Node) []string {
	var out []string
	for _, item := range Items(n) {
		if s := Scalar(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Decode converts n into plain Go values (maps, slices, scalars).
func Decode(n *yaml.Node) (any, error) {
	n = resolve(n)
	if n == nil {
		return nil, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Follow resolves a local reference object ({"$ref": "#/..."}) against root.
// Nodes that are not references are returned unchanged. External references,
// broken pointers and reference cycles yield nil.
func Follow(root, n *yaml.Node) *yaml.Node {
	root = Root(root)
	n = Root(n)
	for depth := 0; depth < maxRefDepth; depth++ {
		ref, ok := Lookup(n, "$ref")
		if !ok {
			return n
		}
		pointer := Scalar(ref)
		if !strings.HasPrefix(pointer, "#/") {
			return nil
		}
		target, ok := Path(root, splitPointer(pointer)...)
		if !ok {
			return nil
		}
		n = target
	}
	return nil
}

func splitPointer(pointer string) []string {
	parts := strings.Split(strings.TrimPrefix(pointer, "#/"), "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return parts
}

func resolve(n *yaml.Node) *yaml.Node {
	for i := 0; n != nil && n.Kind == yaml.AliasNode && i < maxRefDepth; i++ {
		n = n.Alias
	}
	if n != nil && n.Kind == yaml.AliasNode {
		return nil
	}
	return n
}
