// Package loader fetches icon sets from an Iconify-compatible HTTP API.
//
// The API serves subsets of icon sets as Iconify JSON:
//
//	GET {base}/{prefix}.json?icons=home,account
//
// Each provider maps to its own base URL; the empty provider is the public
// Iconify API. Transient failures are retried with [httputil.Retry].
// Fetched sets live only in the [iconset.Registry] they are loaded into;
// nothing is persisted.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/iconsvg/pkg/errors"
	"github.com/matzehuels/iconsvg/pkg/httputil"
	"github.com/matzehuels/iconsvg/pkg/iconset"
	"github.com/matzehuels/iconsvg/pkg/observability"
)

// DefaultBaseURL serves the default ("") provider.
const DefaultBaseURL = "https://api.iconify.design"

// maxResponseSize bounds a single icon set response.
const maxResponseSize = 16 << 20

// DefaultMissTTL is how long [Client.Load] remembers names the API did not
// know before asking again.
const DefaultMissTTL = 10 * time.Minute

// Client fetches icon sets. It is safe for concurrent use once built.
type Client struct {
	http      *http.Client
	providers map[string]string
	attempts  int
	delay     time.Duration
	missTTL   time.Duration

	mu     sync.Mutex
	misses map[iconset.Name]time.Time // name -> expiry
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithProvider maps provider to baseURL. The empty provider overrides
// [DefaultBaseURL].
func WithProvider(provider, baseURL string) Option {
	return func(c *Client) { c.providers[provider] = strings.TrimSuffix(baseURL, "/") }
}

// WithRetry sets the attempt count and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithMissTTL sets how long unknown names are remembered. Zero disables
// the negative cache.
func WithMissTTL(ttl time.Duration) Option {
	return func(c *Client) { c.missTTL = ttl }
}

// New creates a client for the public API plus any configured providers.
func New(opts ...Option) *Client {
	c := &Client{
		http:      httputil.NewClient(0),
		providers: map[string]string{"": DefaultBaseURL},
		attempts:  3,
		delay:     time.Second,
		missTTL:   DefaultMissTTL,
		misses:    make(map[iconset.Name]time.Time),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root for provider.
func (c *Client) BaseURL(provider string) (string, error) {
	base, ok := c.providers[provider]
	if !ok {
		return "", errors.New(errors.ErrCodeNotFound, "unknown icon provider %q", provider)
	}
	return base, nil
}

// Fetch requests names from the prefix set of provider. Names the API does
// not know come back in the set's NotFound list.
func (c *Client) Fetch(ctx context.Context, provider, prefix string, names []string) (*iconset.Set, error) {
	if err := errors.ValidateIconPart("prefix", prefix); err != nil {
		return nil, err
	}
	for _, n := range names {
		if err := errors.ValidateIconPart("name", n); err != nil {
			return nil, err
		}
	}
	base, err := c.BaseURL(provider)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(base + "/" + prefix + ".json")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "provider %q base url", provider)
	}
	if len(names) > 0 {
		u.RawQuery = "icons=" + strings.Join(names, ",")
	}

	var data []byte
	err = httputil.Retry(ctx, c.attempts, c.delay, func() error {
		data, err = c.get(ctx, u)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", prefix, err)
	}

	set, err := iconset.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", prefix, err)
	}
	if set.Prefix != prefix {
		return nil, errors.New(errors.ErrCodeInvalidIconSet, "fetch %s: response is for prefix %q", prefix, set.Prefix)
	}
	set.Provider = provider
	observability.Render().OnIconLoad(ctx, "api", prefix, len(set.Icons)+len(set.Aliases))
	return set, nil
}

func (c *Client) get(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", u.Redacted()))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if err := httputil.CheckStatus(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", u.Redacted()))
	}
	return data, nil
}

// Load makes names resolvable in reg, fetching only what reg lacks.
// Names are grouped by provider and prefix so each set is requested once.
// loaded lists every name resolvable afterwards, missing the rest, both in
// input order. An unknown prefix marks its names missing; other failures
// abort with the error. Missing names are not requested again until the
// miss TTL passes, and responses without icons are not added to reg.
func (c *Client) Load(ctx context.Context, reg *iconset.Registry, names []iconset.Name) (loaded, missing []iconset.Name, err error) {
	type group struct {
		provider, prefix string
	}
	pending := make(map[group][]string)
	var order []group
	for _, n := range names {
		if reg.Exists(n) || c.knownMissing(n) {
			continue
		}
		g := group{n.Provider, n.Prefix}
		if _, ok := pending[g]; !ok {
			order = append(order, g)
		}
		if !slices.Contains(pending[g], n.Name) {
			pending[g] = append(pending[g], n.Name)
		}
	}

	for _, g := range order {
		set, err := c.Fetch(ctx, g.provider, g.prefix, pending[g])
		if errors.IsNotFound(err) {
			c.rememberMissing(g.provider, g.prefix, pending[g])
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		var unknown []string
		for _, name := range pending[g] {
			if !set.Has(name) {
				unknown = append(unknown, name)
			}
		}
		c.rememberMissing(g.provider, g.prefix, unknown)
		if len(set.Icons)+len(set.Aliases) > 0 {
			reg.Add(set)
		}
	}

	seen := make(map[iconset.Name]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		if reg.Exists(n) {
			loaded = append(loaded, n)
		} else {
			missing = append(missing, n)
		}
	}
	return loaded, missing, nil
}

// knownMissing reports whether n was recently reported unknown.
func (c *Client) knownMissing(n iconset.Name) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	expires, ok := c.misses[n]
	if !ok {
		return false
	}
	if time.Now().After(expires) {
		delete(c.misses, n)
		return false
	}
	return true
}

func (c *Client) rememberMissing(provider, prefix string, names []string) {
	if c.missTTL <= 0 || len(names) == 0 {
		return
	}
	expires := time.Now().Add(c.missTTL)
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range names {
		c.misses[iconset.Name{Provider: provider, Prefix: prefix, Name: name}] = expires
	}
}
