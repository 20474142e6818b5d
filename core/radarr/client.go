package radarr

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"radarr-sync/core/instance"

	"github.com/goccy/go-json"
)

// DefaultTimeout is used when the configuration does not set a timeout.
const DefaultTimeout = 30 * time.Second

const (
	opFetchCatalog = "fetch catalog"
	opCreateMovie  = "create movie"
)

// Client defines the catalog operations performed against a Radarr instance.
type Client interface {
	// FetchCatalog lists every movie of the instance.
	FetchCatalog(ctx context.Context, ep instance.Endpoint) ([]Movie, error)
	// CreateEntry adds one movie to the instance. It is not idempotent:
	// callers must check the target catalog first.
	CreateEntry(ctx context.Context, ep instance.Endpoint, req AddMovieRequest) error
}

// HTTPClient talks to Radarr's v3 REST API. One HTTPClient is shared by all
// instances so connections are reused; it is safe for concurrent use.
type HTTPClient struct {
	httpClient *http.Client
	userAgent  string
}

var _ Client = (*HTTPClient)(nil)

// NewClient creates a client with a transport tuned from the configuration.
func NewClient(cfg Config) *HTTPClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	maxConns := cfg.MaxConnsPerHost
	if maxConns <= 0 {
		maxConns = 4
	}

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   timeout, // Connection setup timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxConnsPerHost:       maxConns,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}

	// Environment proxies are ignored unless explicitly enabled
	if cfg.UseProxy {
		transport.Proxy = http.ProxyFromEnvironment
	}

	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicitly requested
	}

	return &HTTPClient{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: cfg.UserAgent,
	}
}

// FetchCatalog performs GET /api/v3/movie and decodes the movie list.
func (c *HTTPClient) FetchCatalog(ctx context.Context, ep instance.Endpoint) ([]Movie, error) {
	status, body, err := c.do(ctx, opFetchCatalog, ep, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	var movies []Movie
	if err := json.Unmarshal(body, &movies); err != nil {
		return nil, &RemoteError{
			Op:         opFetchCatalog,
			Instance:   ep.Name,
			StatusCode: status,
			Body:       truncateBody(body),
			Err:        fmt.Errorf("failed to decode movie list: %w", err),
		}
	}

	// A null body decodes without error but is not a movie list
	if movies == nil && bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, &RemoteError{
			Op:         opFetchCatalog,
			Instance:   ep.Name,
			StatusCode: status,
			Body:       truncateBody(body),
			Err:        errors.New("failed to decode movie list: body is null"),
		}
	}

	return movies, nil
}

// CreateEntry performs POST /api/v3/movie with req as JSON body.
func (c *HTTPClient) CreateEntry(ctx context.Context, ep instance.Endpoint, req AddMovieRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode movie %q: %w", req.Title, err)
	}

	_, _, err = c.do(ctx, opCreateMovie, ep, http.MethodPost, payload)
	return err
}

// do sends one request to the movie resource of ep and returns the status
// and body of a 2xx response. Every failure is a *RemoteError.
func (c *HTTPClient) do(ctx context.Context, op string, ep instance.Endpoint, method string, payload []byte) (int, []byte, error) {
	target, err := movieURL(ep)
	if err != nil {
		return 0, nil, &RemoteError{Op: op, Instance: ep.Name, Err: err}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, nil, &RemoteError{Op: op, Instance: ep.Name, Err: redact(err)}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &RemoteError{Op: op, Instance: ep.Name, Err: redact(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil, &RemoteError{
			Op:         op,
			Instance:   ep.Name,
			StatusCode: resp.StatusCode,
			Body:       readBodyForError(resp.Body),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &RemoteError{
			Op:         op,
			Instance:   ep.Name,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", redact(err)),
		}
	}

	return resp.StatusCode, data, nil
}

// movieURL builds {base}/api/v3/movie?apikey={key}, keeping any URL base path.
func movieURL(ep instance.Endpoint) (string, error) {
	u, err := url.Parse(ep.URL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", redact(err))
	}

	u = u.JoinPath("api", "v3", "movie")
	q := u.Query()
	q.Set("apikey", ep.APIKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// redact strips the request URL, which carries the API key, from net/url and
// net/http errors.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
