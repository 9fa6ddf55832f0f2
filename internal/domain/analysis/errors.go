package analysis

import (
	"errors"
	"strings"
)

// ErrEmptyResponse indicates a provider returned a blank completion.
var ErrEmptyResponse = errors.New("provider returned empty response")

// ErrQuotaExceeded indicates the provider reported a quota/limit error
// (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("provider quota exceeded")

// ErrorType buckets provider failures for logging. The cascade treats all
// of them the same way; the classification only makes operator logs legible.
type ErrorType string

const (
	ErrorQuota     ErrorType = "quota"
	ErrorRate      ErrorType = "rate"
	ErrorTransient ErrorType = "transient"
	ErrorPermanent ErrorType = "permanent"
)

// ClassifyError maps a provider error onto an ErrorType by message
// inspection. Providers disagree on error shapes, so substring matching is
// the common denominator.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return ErrorQuota
	}
	e := strings.ToLower(err.Error())
	switch {
	case strings.Contains(e, "quota"), strings.Contains(e, "credit"), strings.Contains(e, "insufficient_quota"):
		return ErrorQuota
	case strings.Contains(e, "rate"), strings.Contains(e, "429"):
		return ErrorRate
	case strings.Contains(e, "timeout"), strings.Contains(e, "temporarily"), strings.Contains(e, "unavailable"):
		return ErrorTransient
	default:
		return ErrorPermanent
	}
}
