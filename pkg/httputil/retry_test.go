package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	iconerrors "github.com/matzehuels/iconsvg/pkg/errors"
)

var errNetwork = errors.New("network error")

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, errNetwork) {
		t.Error("wrapped error should unwrap to the cause")
	}
	if IsRetryable(errNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int
		err       error
		attempts  int
		wantCalls int
		wantErr   error
	}{
		{"success first try", 0, nil, 3, 1, nil},
		{"non-retryable stops", 5, permanent, 3, 1, permanent},
		{"recovers after retry", 1, Retryable(errNetwork), 3, 2, nil},
		{"gives up after attempts", 10, Retryable(errNetwork), 3, 3, errNetwork},
		{"zero attempts runs once", 10, Retryable(errNetwork), 0, 1, errNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestRetryHonorsAfter(t *testing.T) {
	calls := 0
	start := time.Now()
	err := Retry(context.Background(), 2, time.Hour, func() error {
		calls++
		if calls == 1 {
			return &RetryableError{Err: errNetwork, After: time.Millisecond}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if time.Since(start) > time.Minute {
		t.Error("After should override the base delay")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		status    int
		header    string
		wantCode  iconerrors.Code
		retryable bool
	}{
		{http.StatusOK, "", "", false},
		{http.StatusNoContent, "", "", false},
		{http.StatusNotFound, "", iconerrors.ErrCodeNotFound, false},
		{http.StatusTooManyRequests, "7", iconerrors.ErrCodeRateLimited, true},
		{http.StatusInternalServerError, "", iconerrors.ErrCodeNetwork, true},
		{http.StatusBadGateway, "", iconerrors.ErrCodeNetwork, true},
		{http.StatusForbidden, "", iconerrors.ErrCodeNetwork, false},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			rec := httptest.NewRecorder()
			if tt.header != "" {
				rec.Header().Set("Retry-After", tt.header)
			}
			rec.WriteHeader(tt.status)
			resp := rec.Result()
			resp.Request = httptest.NewRequest(http.MethodGet, "/mdi.json", nil)

			err := CheckStatus(resp)
			if got := iconerrors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
			if IsRetryable(err) != tt.retryable {
				t.Errorf("retryable = %v, want %v", IsRetryable(err), tt.retryable)
			}
		})
	}
}

func TestCheckStatusRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("Retry-After", "3")
	rec.WriteHeader(http.StatusTooManyRequests)

	var re *RetryableError
	if !errors.As(CheckStatus(rec.Result()), &re) {
		t.Fatal("429 should be retryable")
	}
	if re.After != 3*time.Second {
		t.Errorf("After = %v, want 3s", re.After)
	}
}

func TestNewClient(t *testing.T) {
	if got := NewClient(0).Timeout; got != DefaultTimeout {
		t.Errorf("default timeout = %v", got)
	}
	if got := NewClient(time.Second).Timeout; got != time.Second {
		t.Errorf("timeout = %v, want 1s", got)
	}
}
