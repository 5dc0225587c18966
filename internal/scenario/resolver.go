package scenario

import (
	"fmt"

	"github.com/tavoas/tavoas/internal/models"
)

// Resolve matches each scenario item to its operation, preserving scenario
// order. Items that cannot be matched are skipped with a warning; nothing here
// is fatal. A nil index matches nothing.
func Resolve(index *Index, sc models.Scenario) models.Resolution {
	res := models.Resolution{
		TestName: sc.TestName,
		Steps:    make([]models.ScenarioStep, 0, len(sc.Items)),
	}
	if res.TestName == "" {
		res.TestName = DefaultTestName
	}

	for _, w := range sc.Warnings {
		res.AddWarning(w)
	}
	for _, w := range index.Warnings() {
		res.AddWarning(w)
	}

	for i, item := range sc.Items {
		if item.OperationID == "" {
			res.AddWarning(models.Warning{
				Index:   i,
				Message: fmt.Sprintf("scenario item %d has no operationId", i+1),
			})
			continue
		}

		op, ok := index.Lookup(item.OperationID)
		if !ok {
			res.AddWarning(models.Warning{
				Index:       i,
				OperationID: item.OperationID,
				Message:     "not found in the OpenAPI document",
			})
			continue
		}

		res.AddStep(models.ScenarioStep{
			Operation: op,
			Name:      item.DisplayName(),
		})
	}

	return res
}
