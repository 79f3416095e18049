package pfm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HTTPBackend reads and writes blobs with plain GET and PUT requests
// against an object-store style endpoint (any S3-compatible gateway or a
// simple file server with PUT enabled works).
type HTTPBackend struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPBackend returns a Backend addressing blobs as <baseURL>/<key>.
func NewHTTPBackend(baseURL string) *HTTPBackend {
	return &HTTPBackend{BaseURL: baseURL, Client: new(http.Client)}
}

func (b *HTTPBackend) keyURL(key string) string {
	return b.BaseURL + "/" + url.PathEscape(key)
}

func (b *HTTPBackend) Get(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.keyURL(key), nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrKeyNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v: %v", resp.Request.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (b *HTTPBackend) Put(ctx context.Context, key string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, b.keyURL(key), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/csv; charset=utf-8")
	resp, err := b.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("cannot http PUT %v: %v", resp.Request.URL.Path, resp.Status)
	}
	return nil
}
