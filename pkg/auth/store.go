package auth

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "mtrust"

	// Token names, doubling as env var names checked before the keychain.
	GitHubToken = "GITHUB_TOKEN"
	HubToken    = "HF_TOKEN"

	tokenFileMode = 0600
)

// SaveToken stores a token in the OS keychain, falling back to a file in the
// app home directory when no keychain is available.
func SaveToken(homeDir, name, token string) error {
	if err := keyring.Set(keyringService, name, token); err != nil {
		slog.Warn("keychain unavailable, falling back to file", "error", err)
		return saveTokenFile(homeDir, name, token)
	}

	// Clean up legacy file if it exists
	os.Remove(tokenFilePath(homeDir, name))
	return nil
}

// ResolveToken resolves a token: environment variable, then keychain, then file
// fallback. Returns "" when no token is configured; anonymous access is a
// valid (rate-limited) mode.
func ResolveToken(homeDir, name string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}

	if token, err := keyring.Get(keyringService, name); err == nil && token != "" {
		return token
	}

	b, err := os.ReadFile(tokenFilePath(homeDir, name))
	if err != nil {
		return ""
	}
	return string(b)
}

func saveTokenFile(homeDir, name, token string) error {
	path := tokenFilePath(homeDir, name)
	if err := os.WriteFile(path, []byte(token), tokenFileMode); err != nil {
		return fmt.Errorf("writing token file %s: %w", path, err)
	}
	return nil
}

func tokenFilePath(homeDir, name string) string {
	return filepath.Join(homeDir, name)
}
