package auth

import (
	"context"
	"fmt"
	"os"
	"sync"

	json "github.com/goccy/go-json"
)

// Well-known keys under which credentials are persisted.
const (
	TokenKey        = "auth_token"
	RefreshTokenKey = "refresh_token"
)

// TokenStore persists a credential token and a refresh token.
//
// The request interceptor reads it on every call and the unauthorized
// interceptor clears it on auth failure, so implementations must be safe
// for concurrent use.
type TokenStore interface {
	// Token returns the stored credential token, or "" if none.
	Token(ctx context.Context) (string, error)

	// RefreshToken returns the stored refresh token, or "" if none.
	RefreshToken(ctx context.Context) (string, error)

	// SetTokens stores both tokens, replacing any existing values.
	SetTokens(ctx context.Context, token, refreshToken string) error

	// Clear removes both tokens.
	Clear(ctx context.Context) error
}

// MemoryStore is an in-memory TokenStore. Zero value is not usable;
// create one with NewMemoryStore.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

// Token implements TokenStore.
func (s *MemoryStore) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[TokenKey], nil
}

// RefreshToken implements TokenStore.
func (s *MemoryStore) RefreshToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[RefreshTokenKey], nil
}

// SetTokens implements TokenStore.
func (s *MemoryStore) SetTokens(_ context.Context, token, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[TokenKey] = token
	s.tokens[RefreshTokenKey] = refreshToken
	return nil
}

// Clear implements TokenStore.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, TokenKey)
	delete(s.tokens, RefreshTokenKey)
	return nil
}

// FileStore persists tokens as a JSON object in a single file, keyed by
// the well-known storage keys. Suitable for CLI tools that need sessions
// to survive process restarts.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a token store backed by the file at path.
// The file is created on first SetTokens.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token implements TokenStore.
func (s *FileStore) Token(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens, err := s.read()
	if err != nil {
		return "", err
	}
	return tokens[TokenKey], nil
}

// RefreshToken implements TokenStore.
func (s *FileStore) RefreshToken(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens, err := s.read()
	if err != nil {
		return "", err
	}
	return tokens[RefreshTokenKey], nil
}

// SetTokens implements TokenStore.
func (s *FileStore) SetTokens(_ context.Context, token, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(map[string]string{
		TokenKey:        token,
		RefreshTokenKey: refreshToken,
	})
}

// Clear implements TokenStore.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("auth: clear token file: %w", err)
	}
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: read token file: %w", err)
	}
	tokens := make(map[string]string)
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("auth: decode token file: %w", err)
	}
	return tokens, nil
}

func (s *FileStore) write(tokens map[string]string) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("auth: encode tokens: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("auth: write token file: %w", err)
	}
	return nil
}
