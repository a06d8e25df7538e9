// Package httputil provides HTTP plumbing for the remote icon loader.
//
// # Retry
//
// [Retry] wraps an operation with retries for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses (honoring Retry-After)
//
// Only errors wrapped in [RetryableError] are retried. [CheckStatus] maps an
// HTTP status code to the right error, retryable or not:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    defer resp.Body.Close()
//	    return httputil.CheckStatus(resp)
//	})
//
// # Defaults
//
//   - Request timeout: 10 seconds ([NewClient])
//   - Attempts: 3
//   - Base backoff: 1 second, doubling
package httputil
