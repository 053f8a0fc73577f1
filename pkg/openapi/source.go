package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReadSource fetches a document from a file path or an http(s) URL. A nil
// client disables remote sources.
func ReadSource(ctx context.Context, location string, client *http.Client, timeout time.Duration) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("openapi importer: source location is required")
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return readHTTP(ctx, client, location, timeout)
	}
	return readFile(ctx, location)
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("openapi importer: read %s: %w", path, err)
	}
	return data, nil
}

func readHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("openapi importer: http sources are disabled")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi importer: fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("openapi importer: unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}
