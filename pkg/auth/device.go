// Package auth handles GitHub device-flow authentication and token storage.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/modeltrust/mtrust/pkg/net"
)

const (
	deviceCodeURL = "https://github.com/login/device/code"
	accessCodeURL = "https://github.com/login/oauth/access_token"
	deviceScopes  = "" // read-only public access, no scopes
	grantType     = "urn:ietf:params:oauth:grant-type:device_code"
)

// DeviceCode is the GitHub device-flow challenge.
type DeviceCode struct {
	DeviceCode      string `json:"device_code,omitempty"`
	UserCode        string `json:"user_code,omitempty"`
	VerificationURL string `json:"verification_uri,omitempty"`
	ExpiresInSec    int    `json:"expires_in,omitempty"`
	Interval        int    `json:"interval,omitempty"`
}

// AccessTokenResponse is the device-flow token exchange result.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	Scope       string `json:"scope,omitempty"`
}

// GetDeviceCode starts the device flow for the given OAuth client.
func GetDeviceCode(ctx context.Context, clientID string) (*DeviceCode, error) {
	if clientID == "" {
		return nil, errors.New("clientID is required")
	}

	var dc DeviceCode
	if err := postForm(ctx, deviceCodeURL, map[string]string{
		"client_id": clientID,
		"scope":     deviceScopes,
	}, &dc); err != nil {
		return nil, fmt.Errorf("failed to get device code: %w", err)
	}
	return &dc, nil
}

// GetToken exchanges a completed device challenge for an access token.
func GetToken(ctx context.Context, clientID string, code *DeviceCode) (*AccessTokenResponse, error) {
	if clientID == "" {
		return nil, errors.New("clientID is required")
	}
	if code == nil {
		return nil, errors.New("device code is nil")
	}

	expiresAt := time.Now().UTC().Add(time.Duration(code.ExpiresInSec) * time.Second)

	var t AccessTokenResponse
	if err := postForm(ctx, accessCodeURL, map[string]string{
		"client_id":   clientID,
		"device_code": code.DeviceCode,
		"grant_type":  grantType,
	}, &t); err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	if time.Now().UTC().After(expiresAt) {
		return nil, errors.New("access token expired")
	}
	if t.AccessToken == "" {
		return nil, errors.New("access token is empty")
	}

	return &t, nil
}

func postForm[T any](ctx context.Context, url string, params map[string]string, target *T) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Add("content-type", "application/x-www-form-urlencoded")
	req.Header.Add("Accept", "application/json")

	res, err := net.GetHTTPClient().Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body := ""
		if b, rerr := io.ReadAll(res.Body); rerr == nil {
			body = string(b)
		}
		return fmt.Errorf("unexpected status %s from %s: %s", res.Status, url, body)
	}

	if err := json.NewDecoder(res.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
