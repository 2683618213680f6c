package oracle

import (
	"context"
	"strings"

	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// classification is checked in order; the first matching rule wins.
var classification = []struct {
	code     errors.ErrorCode
	keywords []string
	message  string
}{
	{errors.ErrCodeOracleAuth, []string{"api key", "403", "permission_denied"}, "authentication failed, check the API key configuration"},
	{errors.ErrCodeOracleQuota, []string{"quota", "429", "resource_exhausted"}, "usage limit exceeded, wait a moment and retry"},
	{errors.ErrCodeOracleSafety, []string{"safety", "blocked"}, "safety filters triggered, make the request more specific to trading"},
	{errors.ErrCodeOracleModelUnavailable, []string{"model not found", "404", "not_found"}, "the selected model is unavailable"},
	{errors.ErrCodeOracleTimeout, []string{"timeout", "deadline exceeded"}, "the request timed out, retry with a simpler configuration"},
	{errors.ErrCodeOracleNoCandidate, []string{"candidate"}, "the model could not generate a valid response"},
}

// ClassifyError maps a model client failure onto an oracle error code. Errors
// that already carry a code are returned unchanged.
func ClassifyError(err error, action string) error {
	if err == nil {
		return nil
	}

	var coded *errors.Error
	if errors.As(err, &coded) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrapf(errors.ErrCodeOracleTimeout, err, "%s: the request timed out", action)
	}

	msg := strings.ToLower(err.Error())

	for _, rule := range classification {
		for _, keyword := range rule.keywords {
			if strings.Contains(msg, keyword) {
				return errors.Wrapf(rule.code, err, "%s: %s", action, rule.message)
			}
		}
	}

	return errors.Wrapf(errors.ErrCodeOracleFailed, err, "%s failed", action)
}
