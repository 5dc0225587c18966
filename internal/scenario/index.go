package scenario

import (
	"errors"
	"fmt"

	"github.com/tavoas/tavoas/internal/models"
)

// CollisionPolicy decides what happens when two operations share an operationId
type CollisionPolicy string

const (
	// FirstWins keeps the first operation in document order and warns about the rest
	FirstWins CollisionPolicy = "first"
	// ErrorOnDuplicate refuses to build an index with duplicate operationIds
	ErrorOnDuplicate CollisionPolicy = "error"
)

// ErrDuplicateOperationID is returned by NewIndex under ErrorOnDuplicate
var ErrDuplicateOperationID = errors.New("duplicate operationId")

// ParseCollisionPolicy parses a string into a CollisionPolicy, returning error if invalid
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(s) {
	case "", FirstWins:
		return FirstWins, nil
	case ErrorOnDuplicate:
		return ErrorOnDuplicate, nil
	default:
		return "", fmt.Errorf("invalid duplicate policy '%s': must be 'first' or 'error'", s)
	}
}

// Index maps operationIds to operations. Operations without an id are not indexed.
type Index struct {
	policy   CollisionPolicy
	byID     map[string]models.Operation
	warnings []models.Warning
}

// NewIndex indexes operations by operationId according to policy
func NewIndex(operations []models.Operation, policy CollisionPolicy) (*Index, error) {
	if policy == "" {
		policy = FirstWins
	}

	idx := &Index{
		policy: policy,
		byID:   make(map[string]models.Operation, len(operations)),
	}

	for _, op := range operations {
		if op.OperationID == "" {
			continue
		}

		kept, exists := idx.byID[op.OperationID]
		if !exists {
			idx.byID[op.OperationID] = op
			continue
		}

		if policy == ErrorOnDuplicate {
			return nil, fmt.Errorf("%w '%s': %s %s and %s %s",
				ErrDuplicateOperationID, op.OperationID, kept.Method, kept.Path, op.Method, op.Path)
		}
		idx.warnings = append(idx.warnings, models.Warning{
			Index:       -1,
			OperationID: op.OperationID,
			Message: fmt.Sprintf("declared more than once; keeping %s %s, ignoring %s %s",
				kept.Method, kept.Path, op.Method, op.Path),
		})
	}

	return idx, nil
}

// Lookup returns the operation indexed under id. A nil Index holds nothing.
func (i *Index) Lookup(id string) (models.Operation, bool) {
	if i == nil {
		return models.Operation{}, false
	}
	op, ok := i.byID[id]
	return op, ok
}

// Len returns the number of indexed operationIds
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byID)
}

// Warnings returns the duplicates ignored under FirstWins
func (i *Index) Warnings() []models.Warning {
	if i == nil {
		return nil
	}
	return i.warnings
}
