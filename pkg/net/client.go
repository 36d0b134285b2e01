// Package net provides shared HTTP plumbing for the metadata providers.
package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const (
	maxIdleConns     = 10
	timeoutInSeconds = 30
	clientAgent      = "mtrust-client"
)

var reqTransport = &http.Transport{
	MaxIdleConns:          maxIdleConns,
	IdleConnTimeout:       timeoutInSeconds * time.Second,
	ResponseHeaderTimeout: timeoutInSeconds * time.Second,
}

// GetHTTPClient returns a client with shared transport and sane timeouts.
func GetHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   timeoutInSeconds * time.Second,
		Transport: reqTransport,
	}
}

// GetOAuthClient returns a client that sends the given bearer token.
func GetOAuthClient(ctx context.Context, token string) *http.Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{
			TokenType:   "token",
			AccessToken: token,
		},
	)
	return oauth2.NewClient(ctx, ts)
}

// GetJSON retrieves the URL content and decodes it into target. A non-2xx
// status is an error.
func GetJSON[T any](ctx context.Context, url, token string, target *T) error {
	resp, err := getResp(ctx, url, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status getting %s: %s", url, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("error decoding content from %s: %w", url, err)
	}
	return nil
}

// GetText retrieves the URL content as plain text. Returns "" without error
// on 404, since absent documents are an expected state upstream.
func GetText(ctx context.Context, url, token string) (string, error) {
	resp, err := getResp(ctx, url, token)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status getting %s: %s", url, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading content from %s: %w", url, err)
	}
	return string(b), nil
}

func getResp(ctx context.Context, url, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP Get request: %w", err)
	}

	req.Header.Set("User-Agent", clientAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := GetHTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("error getting %s: %w", url, err)
	}
	return resp, nil
}
