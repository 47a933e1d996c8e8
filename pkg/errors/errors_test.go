package errors

import (
	stderrors "errors"
	"testing"
)

func TestAPIErrorIs(t *testing.T) {
	rateLimited := NewAPIError("notion", 429, "rate limit exceeded")
	if !stderrors.Is(rateLimited, ErrRateLimited) {
		t.Error("429 APIError should match ErrRateLimited")
	}

	unavailable := NewAPIError("typeform", 503, "service down")
	if !stderrors.Is(unavailable, ErrUnavailable) {
		t.Error("503 APIError should match ErrUnavailable")
	}

	badRequest := NewAPIError("notion", 400, "bad payload")
	if stderrors.Is(badRequest, ErrRateLimited) || stderrors.Is(badRequest, ErrUnavailable) {
		t.Error("400 APIError should not match retryable sentinels")
	}

	missing := NewAPIError("notion", 404, "page not found")
	if !IsNotFound(missing) {
		t.Error("404 APIError should match ErrNotFound")
	}
	if IsRetryable(missing) {
		t.Error("404 APIError should not be retryable")
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", NewAPIError("notion", 429, "slow down"), true},
		{"server error", NewAPIError("notion", 502, "bad gateway"), true},
		{"timeout", ErrTimeout, true},
		{"client error", NewAPIError("typeform", 401, "unauthorized"), false},
		{"plain error", New("boom"), false},
		{"nil-adjacent config", NewConfigError("app", "missing token", nil), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestWrapHelpersNilPassthrough(t *testing.T) {
	if WrapParse("json", "responses", nil) != nil {
		t.Error("WrapParse(nil) should be nil")
	}
	if WrapAPI("notion", 500, nil) != nil {
		t.Error("WrapAPI(nil) should be nil")
	}
	if WrapValidation("email", nil) != nil {
		t.Error("WrapValidation(nil) should be nil")
	}
}

func TestWrapParseUnwraps(t *testing.T) {
	underlying := New("unexpected end of JSON input")
	wrapped := WrapParse("json", "page body", underlying)
	if !stderrors.Is(wrapped, underlying) {
		t.Error("wrapped parse error should unwrap to the underlying error")
	}

	var parseErr *ParseError
	if !stderrors.As(wrapped, &parseErr) {
		t.Fatal("expected a *ParseError")
	}
	if parseErr.Format != "json" {
		t.Errorf("Format = %q, want json", parseErr.Format)
	}
}

func TestValidationErrorIs(t *testing.T) {
	err := NewValidationError("level", "L9", "unknown capability level")
	if !stderrors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
}
