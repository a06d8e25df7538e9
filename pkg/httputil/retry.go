package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	iconerrors "github.com/matzehuels/iconsvg/pkg/errors"
)

// DefaultTimeout is the per-request timeout used by [NewClient].
const DefaultTimeout = 10 * time.Second

// NewClient creates an HTTP client with the given timeout, or
// [DefaultTimeout] when timeout is not positive.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses) with this type
// so that [Retry] knows to attempt the operation again.
type RetryableError struct {
	Err error

	// After overrides the backoff delay for the next attempt when positive.
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err in a [RetryableError]. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is wrapped in a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Retry executes fn up to attempts times with exponential backoff.
// Errors not wrapped with [RetryableError] are returned immediately.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := delay
		if re.After > 0 {
			wait = re.After
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			delay *= 2
		}
	}
	return lastErr
}

// RetryWithBackoff calls [Retry] with 3 attempts and a 1 second initial delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

// CheckStatus converts a non-2xx response into a coded error.
// 404 maps to NOT_FOUND; 429 and 5xx are retryable.
func CheckStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		path := ""
		if resp.Request != nil {
			path = resp.Request.URL.Path
		}
		return iconerrors.New(iconerrors.ErrCodeNotFound, "%s: not found", path)
	case code == http.StatusTooManyRequests:
		secs, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &RetryableError{
			Err:   &iconerrors.RateLimitedError{RetryAfter: secs},
			After: time.Duration(secs) * time.Second,
		}
	case code >= 500:
		return Retryable(iconerrors.New(iconerrors.ErrCodeNetwork, "server error: status %d", code))
	default:
		return iconerrors.New(iconerrors.ErrCodeNetwork, "unexpected status %d", code)
	}
}
