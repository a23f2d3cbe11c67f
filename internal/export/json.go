package export

import (
	"encoding/json"

	"paintcalc/internal/domain"
)

// JSON renders the full-fidelity structured dump: the entire result tree,
// key order following struct declaration order, 2-space indentation,
// numeric values unrounded.
func JSON(result *domain.CalculationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
