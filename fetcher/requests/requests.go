package requests

import (
	"context"
	"net/http"
	"time"
)

// RequestTimeout bounds every remote call, including the body read.
const RequestTimeout = 30 * time.Second

// NewClient creates the shared HTTP client used for every remote lookup.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: RequestTimeout,
	}
}

// Get does a simple GET request with the JSON accept header.
// Return the response.
func Get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	return client.Do(req)
}
