package fetch

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"fpl-squad-mcp/internal/store"
)

// DefaultTTL is how long a cached payload is served before the feed is
// contacted again.
const DefaultTTL = 6 * time.Hour

// FetchError covers every failure reaching or decoding the feed:
// transport errors, non-2xx responses, and payload decode failures.
type FetchError struct {
	URL        string
	StatusCode int // 0 when the request never produced a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type Client struct {
	HTTP        *http.Client
	Store       *store.JSONStore
	BaseURL     string
	UserAgent   string
	TTL         time.Duration // 0 means DefaultTTL
	PrettyWrite bool
}

func NewClient(st *store.JSONStore) *Client {
	return &Client{
		HTTP:        &http.Client{Timeout: 20 * time.Second},
		Store:       st,
		BaseURL:     "https://fantasy.premierleague.com/api",
		UserAgent:   "fpl-squad-mcp/0.1",
		TTL:         DefaultTTL,
		PrettyWrite: true,
	}
}

func (c *Client) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return DefaultTTL
}

// FetchRaw returns the payload for urlPath (like "/fixtures/"), serving
// the entry cached at relPath when it is within ttl and force is false.
// On a miss it GETs the feed and stores the body on success. A failed
// fetch returns a FetchError and leaves whatever entry exists untouched.
func (c *Client) FetchRaw(urlPath string, relPath string, force bool) ([]byte, error) {
	if !force && c.Store.Fresh(relPath, c.ttl()) {
		return c.Store.ReadRaw(relPath)
	}

	url := c.BaseURL + urlPath
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if err := c.Store.WriteRaw(relPath, body, c.PrettyWrite); err != nil {
		return nil, err
	}
	// Serve the stored form, so a miss and a later cache hit return
	// byte-identical payloads even when the write re-indented the body.
	return c.Store.ReadRaw(relPath)
}
