// Package fetch pulls remote campaign files for analyze-by-URL requests.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// Get downloads url with up to 3 attempts, exponential backoff plus jitter
// between tries. The body is capped at maxBytes.
func Get(ctx context.Context, c HTTPClient, url string, maxBytes int64) ([]byte, error) {
	if url == "" {
		return nil, errors.New("empty url")
	}
	var lastErr error
	for i := 0; i < 3; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			defer resp.Body.Close()
			b, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
			if err != nil {
				return nil, err
			}
			if int64(len(b)) > maxBytes {
				return nil, fmt.Errorf("remote file exceeds %d bytes", maxBytes)
			}
			return b, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("non-2xx: %s", resp.Status)
			resp.Body.Close()
		}
		sleep := time.Duration((1<<i)*100) * time.Millisecond
		sleep += time.Duration(rand.Intn(150)) * time.Millisecond
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}
	return nil, lastErr
}
