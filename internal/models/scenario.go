package models

import "fmt"

// ScenarioItem selects one operation for a generated test
type ScenarioItem struct {
	OperationID string
	Name        string
}

// DisplayName returns the item's name, falling back to its operationId
func (i ScenarioItem) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.OperationID
}

// Scenario is an ordered selection of operations with a test title
type Scenario struct {
	TestName string
	Items    []ScenarioItem

	// Problems found while loading the scenario file
	Warnings []Warning
}

// ScenarioStep is a scenario item resolved against the document
type ScenarioStep struct {
	Operation
	Name string
}

// Warning describes a recoverable problem found while resolving a scenario
type Warning struct {
	Index       int // scenario item position, -1 when not tied to an item
	OperationID string
	Message     string
}

func (w Warning) String() string {
	if w.OperationID == "" {
		return w.Message
	}
	return fmt.Sprintf("operationId '%s': %s", w.OperationID, w.Message)
}

// Resolution is the outcome of resolving a scenario: the steps that matched,
// in scenario order, plus every warning raised along the way
type Resolution struct {
	TestName string
	Steps    []ScenarioStep
	Warnings []Warning
}

// AddStep appends a resolved step
func (r *Resolution) AddStep(step ScenarioStep) {
	r.Steps = append(r.Steps, step)
}

// AddWarning records a recoverable problem
func (r *Resolution) AddWarning(w Warning) {
	r.Warnings = append(r.Warnings, w)
}
