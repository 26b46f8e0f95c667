// Package crossref resolves DOIs to CSL JSON metadata through DOI content
// negotiation.
package crossref

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/litnote/litnote/internal/metadata"
	"github.com/litnote/litnote/internal/reference"
)

const (
	// BaseURL is the DOI resolver.
	BaseURL = "https://doi.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit keeps well inside the resolver's public pool limits.
	RateLimit = 5.0

	// CSLJSON is the media type requested from the resolver.
	CSLJSON = "application/vnd.citationstyles.csl+json"

	userAgent = "litnote"

	// maxBody bounds the metadata document read from the resolver.
	maxBody = 16 << 20
)

// Client is a rate-limited DOI resolver client.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom resolver URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithMailto adds a contact address to the User-Agent, which routes requests
// to Crossref's polite pool.
func WithMailto(addr string) ClientOption {
	return func(c *Client) {
		c.mailto = addr
	}
}

// NewClient creates a new resolver client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) userAgent() string {
	if c.mailto == "" {
		return userAgent
	}
	return fmt.Sprintf("%s (mailto:%s)", userAgent, c.mailto)
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response, doi string) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, doi)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400:
		return &APIError{StatusCode: resp.StatusCode, DOI: doi}
	}
	return nil
}

// Fetch resolves doi and returns its CSL JSON record. A response that is not
// a JSON object yields ErrInvalidResponse.
func (c *Client) Fetch(ctx context.Context, doi string) (metadata.Value, error) {
	doi = reference.CleanDOI(doi)
	if doi == "" {
		return metadata.Value{}, fmt.Errorf("%w: empty", ErrInvalidDOI)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return metadata.Value{}, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + "/" + escapeDOI(doi)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return metadata.Value{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", CSLJSON)
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return metadata.Value{}, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp, doi); err != nil {
		return metadata.Value{}, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return metadata.Value{}, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}

	raw, err := metadata.Parse(body)
	if err != nil {
		return metadata.Value{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if raw.Kind() != metadata.Map {
		return metadata.Value{}, fmt.Errorf("%w: expected an object, got %s", ErrInvalidResponse, raw.Kind())
	}
	return raw, nil
}

// escapeDOI path-escapes each segment of doi, keeping its slashes.
func escapeDOI(doi string) string {
	parts := strings.Split(doi, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
