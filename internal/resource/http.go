package resource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// defaultHTTPClient serves every HTTP resource that is not given its own
// client. Snapshot payloads are small; a flat timeout beats hanging a whole
// import run on one slow endpoint.
var defaultHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

type httpResource struct {
	location string
	client   *http.Client

	probeOnce sync.Once
	probed    bool
}

// NewHTTP returns a read-only resource backed by an HTTP(S) URL. A nil
// client selects the package default.
func NewHTTP(client *http.Client, location string) Resource {
	if client == nil {
		client = defaultHTTPClient
	}
	return &httpResource{location: location, client: client}
}

func (r *httpResource) Location() string { return r.location }

// Exists probes the URL with a single HEAD request and remembers the answer
// for the lifetime of the handle.
func (r *httpResource) Exists() bool {
	r.probeOnce.Do(func() {
		req, err := http.NewRequest(http.MethodHead, r.location, nil)
		if err != nil {
			return
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		r.probed = resp.StatusCode >= 200 && resp.StatusCode < 300
	})
	return r.probed
}

func (r *httpResource) Readable() bool { return r.Exists() }

func (r *httpResource) Writable() bool { return false }

func (r *httpResource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open resource %s: %w", r.location, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to open resource %s: %w", r.location, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, fmt.Errorf("failed to open resource %s: unexpected status %s", r.location, resp.Status)
	}
	return resp.Body, nil
}

func (r *httpResource) Create(_ context.Context) (io.WriteCloser, error) {
	return nil, fmt.Errorf("cannot create resource %s: %w", r.location, ErrReadOnly)
}
