// Package auth resolves the bearer token sent to the catalog API.
// FOODIE_TOKEN wins; otherwise ~/.foodie/credentials.json, which remembers
// the API it was saved for.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const EnvToken = "FOODIE_TOKEN"

type Source string

const (
	SourceEnv  Source = "env"
	SourceFile Source = "file"
)

// Credentials is a usable token and where it came from.
type Credentials struct {
	Token   string    `json:"token"`
	APIURL  string    `json:"api_url,omitempty"`
	SavedAt time.Time `json:"saved_at"`
	Source  Source    `json:"-"`
}

// Dir is the per-user state directory (~/.foodie).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".foodie"), nil
}

func credentialsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.json"), nil
}

// Normalize accepts a raw token or an Authorization header value.
func Normalize(raw string) (string, error) {
	tok := strings.TrimSpace(raw)
	if scheme, rest, ok := strings.Cut(tok, " "); ok && strings.EqualFold(scheme, "bearer") {
		tok = strings.TrimSpace(rest)
	}
	if tok == "" || strings.EqualFold(tok, "bearer") {
		return "", errors.New("empty token")
	}
	if strings.ContainsAny(tok, " \t\r\n") {
		return "", errors.New("token contains whitespace")
	}
	return tok, nil
}

// FromEnv returns the FOODIE_TOKEN override, if any.
func FromEnv() (string, bool) {
	tok, err := Normalize(os.Getenv(EnvToken))
	return tok, err == nil
}

// Resolve finds the token for apiURL. A saved token bound to another API is
// not used. Returns nil, nil when there is none.
func Resolve(apiURL string) (*Credentials, error) {
	if tok, ok := FromEnv(); ok {
		return &Credentials{Token: tok, Source: SourceEnv}, nil
	}
	saved, err := loadSaved()
	if err != nil || saved == nil {
		return nil, err
	}
	if saved.APIURL != "" && !sameAPI(saved.APIURL, apiURL) {
		return nil, nil
	}
	return saved, nil
}

// Save stores a token for apiURL with owner-only permissions.
func Save(raw, apiURL string) error {
	tok, err := Normalize(raw)
	if err != nil {
		return err
	}
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(Credentials{
		Token:   tok,
		APIURL:  strings.TrimRight(apiURL, "/"),
		SavedAt: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	p, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Forget removes the saved token; nothing saved is fine.
func Forget() error {
	p, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

func loadSaved() (*Credentials, error) {
	p, err := credentialsPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if c.Token, err = Normalize(c.Token); err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}
	c.Source = SourceFile
	return &c, nil
}

func sameAPI(a, b string) bool {
	return strings.TrimRight(a, "/") == strings.TrimRight(b, "/")
}
