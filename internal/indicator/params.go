package indicator

import (
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// periodParam reads a positive period. JSON numbers arrive as float64, so both
// int and float64 are accepted.
func periodParam(params []any, index int, name string) (int, error) {
	if index >= len(params) {
		return 0, errors.Newf(errors.ErrCodeMissingParameter, "missing %s parameter", name)
	}

	var period int

	switch p := params[index].(type) {
	case int:
		period = p
	case float64:
		if p != float64(int(p)) {
			return 0, errors.Newf(errors.ErrCodeInvalidType, "%s must be a whole number, got %v", name, p)
		}

		period = int(p)
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
	}

	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
	}

	return period, nil
}
