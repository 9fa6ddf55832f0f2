package analysis

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	cases := map[string]ErrorType{
		"insufficient_quota":      ErrorQuota,
		"429 too many requests":   ErrorRate,
		"request timeout":         ErrorTransient,
		"service unavailable":     ErrorTransient,
		"bad request":             ErrorPermanent,
		"invalid api key":         ErrorPermanent,
	}
	for msg, want := range cases {
		if got := ClassifyError(errors.New(msg)); got != want {
			t.Fatalf("classify %q: got %s want %s", msg, got, want)
		}
	}
}

func TestClassifyErrorSentinels(t *testing.T) {
	wrapped := fmt.Errorf("cohere chat: %w", ErrQuotaExceeded)
	if got := ClassifyError(wrapped); got != ErrorQuota {
		t.Fatalf("wrapped quota sentinel: got %s want %s", got, ErrorQuota)
	}
	if got := ClassifyError(nil); got != "" {
		t.Fatalf("nil error: got %q want empty", got)
	}
}
