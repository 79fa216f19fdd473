package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tradedesk/internal/domain"
)

// ValidationResult is empty when every proposed line fits its remaining allowance.
type ValidationResult struct {
	Violations []domain.Violation `json:"violations"`
}

// OK reports whether there are no violations.
func (r ValidationResult) OK() bool {
	return len(r.Violations) == 0
}

// Err returns a *domain.AllocationError for a failed result, nil otherwise.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	return &domain.AllocationError{Violations: r.Violations}
}

// ValidateConsumption checks every proposed line and reports all violations at once.
// Lines sharing an item key draw from the same allowance in order.
func ValidateConsumption(proposed []domain.LineItem, remaining Remaining) ValidationResult {
	var result ValidationResult
	drawn := make(map[string]decimal.Decimal, len(proposed))
	for _, li := range proposed {
		name := li.Name
		if name == "" {
			name = li.ItemID
		}
		if !li.Quantity.IsPositive() {
			result.Violations = append(result.Violations, domain.Violation{
				ItemName: name,
				Error:    fmt.Sprintf("quantity must be greater than zero, got %s", li.Quantity.String()),
			})
			continue
		}
		key := ItemKey(li)
		allowance := remaining.Get(key).Sub(drawn[key])
		if li.Quantity.GreaterThan(allowance) {
			result.Violations = append(result.Violations, domain.Violation{
				ItemName: name,
				Error: fmt.Sprintf("quantity %s exceeds remaining %s",
					li.Quantity.String(), decimal.Max(allowance, decimal.Zero).String()),
			})
		}
		drawn[key] = drawn[key].Add(li.Quantity)
	}
	return result
}
