package models

// Operation represents a single OpenAPI operation extracted from a document
type Operation struct {
	OperationID string   `json:"operationId"`
	Summary     string   `json:"summary"`
	Method      string   `json:"method"` // upper-cased HTTP verb
	Path        string   `json:"url"`
	Tags        []string `json:"tags,omitempty"`

	// Literal application/json examples; an empty map when the document has none
	RequestExample  any `json:"-"`
	ResponseExample any `json:"-"`
}

// EndpointList is the document-level view written by the endpoint lister
type EndpointList struct {
	Title      string      `json:"title,omitempty"`
	Version    string      `json:"version,omitempty"`
	Operations []Operation `json:"operations"`
}
