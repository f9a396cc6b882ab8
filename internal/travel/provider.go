package travel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Provider answers travel-duration queries from an external service.
type Provider interface {
	Name() string
	Duration(ctx context.Context, origin, destination string) (time.Duration, error)
}

// NewProvider returns the provider named by cfg.Provider. Unknown ids yield
// a provider whose every call fails with ErrUnsupportedProvider, so the
// estimator falls back to the heuristic.
func NewProvider(cfg Config) Provider {
	switch cfg.Provider {
	case ProviderHTTP:
		return NewHTTPProvider(cfg)
	default:
		return unsupportedProvider{name: cfg.Provider}
	}
}

type unsupportedProvider struct {
	name string
}

func (p unsupportedProvider) Name() string { return p.name }

func (p unsupportedProvider) Duration(context.Context, string, string) (time.Duration, error) {
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedProvider, p.name)
}

// httpProvider calls GET {endpoint}/duration?origin=..&destination=.. and
// expects {"duration_seconds": N}.
type httpProvider struct {
	cfg  Config
	http *http.Client
}

func NewHTTPProvider(cfg Config) Provider {
	return &httpProvider{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 2 * time.Second,
				}).DialContext,
			},
		},
	}
}

type durationResponse struct {
	DurationSeconds *float64 `json:"duration_seconds"`
}

func (p *httpProvider) Name() string { return ProviderHTTP }

func (p *httpProvider) Duration(ctx context.Context, origin, destination string) (time.Duration, error) {
	timeout := p.cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var lastErr error
	attempts := 1 + p.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		d, err := p.doRequest(ctx, origin, destination)
		if err == nil {
			return d, nil
		}
		lastErr = err

		// Malformed answers and cancellation are not worth retrying.
		if ctx.Err() != nil || errors.Is(err, ErrInvalidResponse) {
			break
		}
	}

	if ctx.Err() != nil {
		return 0, ErrProviderTimeout
	}
	if isConnectionError(lastErr) {
		return 0, ErrProviderUnavailable
	}
	return 0, lastErr
}

func (p *httpProvider) doRequest(ctx context.Context, origin, destination string) (time.Duration, error) {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	u := p.cfg.Endpoint + "/duration?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", p.cfg.APIKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 500 {
		return 0, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var out durationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if out.DurationSeconds == nil || *out.DurationSeconds < 0 {
		return 0, fmt.Errorf("%w: missing or negative duration", ErrInvalidResponse)
	}
	return time.Duration(*out.DurationSeconds * float64(time.Second)), nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrProviderTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrProviderUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.Is(err, ErrUnsupportedProvider):
		return "UNSUPPORTED"
	default:
		return "UNKNOWN"
	}
}
