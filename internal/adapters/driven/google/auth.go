package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
)

// Scopes are the OAuth scopes requested at login: event management on the
// interview calendar and sending mail as the user.
var Scopes = []string{
	calendar.CalendarEventsScope,
	gmail.GmailSendScope,
}

// LoadConfig reads an OAuth client JSON file downloaded from the Google console.
func LoadConfig(credentialsFile string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	cfg, err := googleoauth.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return cfg, nil
}

// LoadToken reads a token previously written by SaveToken.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return &tok, nil
}

// SaveToken writes the token with owner-only permissions.
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// NewTokenSource returns a refreshing token source seeded from tokenFile.
// Each refreshed token is written back to the file.
func NewTokenSource(ctx context.Context, cfg *oauth2.Config, tokenFile string) (oauth2.TokenSource, error) {
	tok, err := LoadToken(tokenFile)
	if err != nil {
		return nil, err
	}
	return &fileTokenSource{
		base:   cfg.TokenSource(ctx, tok),
		path:   tokenFile,
		access: tok.AccessToken,
	}, nil
}

type fileTokenSource struct {
	mu     sync.Mutex
	base   oauth2.TokenSource
	path   string
	access string
}

// Token implements oauth2.TokenSource.
func (s *fileTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.base.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh google token: %w", err)
	}
	if tok.AccessToken != s.access {
		s.access = tok.AccessToken
		if err := SaveToken(s.path, tok); err != nil {
			return nil, err
		}
	}
	return tok, nil
}

// AuthCodeURL builds the consent URL for the installed-app flow with PKCE.
// Offline access is requested so the token carries a refresh token.
func AuthCodeURL(cfg *oauth2.Config, redirectURI, state, verifier string) string {
	cfg.RedirectURL = redirectURI
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)
}

// Exchange trades an authorisation code for a token and stores it.
func Exchange(ctx context.Context, cfg *oauth2.Config, code, verifier, tokenFile string) (*oauth2.Token, error) {
	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange authorisation code: %w", err)
	}
	if err := SaveToken(tokenFile, tok); err != nil {
		return nil, err
	}
	return tok, nil
}
