/*
Package tokenstore keeps the tokens issued by /auth/verify.

Both stores answer AccessToken from their current contents on every call,
so an HTTP client built before login picks up the token as soon as it is
saved.
*/
package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"backoffice/config"
	"backoffice/domain/auth"

	"gopkg.in/yaml.v3"
)

var (
	_ auth.TokenStore = (*Memory)(nil)
	_ auth.TokenStore = (*File)(nil)
)

// Memory In-process token store
type Memory struct {
	mu     sync.RWMutex
	tokens auth.Tokens
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens.AccessToken
}

func (m *Memory) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens.RefreshToken
}

func (m *Memory) Save(tokens auth.Tokens) error {
	m.mu.Lock()
	m.tokens = tokens
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear() error {
	return m.Save(auth.Tokens{})
}

// File YAML token file shared between CLI invocations
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string { return f.path }

func (f *File) AccessToken() string {
	tokens, _ := f.load()
	return tokens.AccessToken
}

func (f *File) RefreshToken() string {
	tokens, _ := f.load()
	return tokens.RefreshToken
}

// Load returns the stored tokens; a missing file yields empty tokens.
func (f *File) Load() (auth.Tokens, error) {
	return f.load()
}

func (f *File) load() (auth.Tokens, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var tokens auth.Tokens
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return tokens, nil
	}
	if err != nil {
		return tokens, fmt.Errorf("read token file: %w", err)
	}
	if err := yaml.Unmarshal(data, &tokens); err != nil {
		return auth.Tokens{}, fmt.Errorf("decode token file %s: %w", f.path, err)
	}
	return tokens, nil
}

func (f *File) Save(tokens auth.Tokens) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := yaml.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token dir: %w", err)
		}
	}
	// Write to a sibling then rename so readers never see a half-written file.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// New picks the store named by auth.token_store.
func New(cfg config.AuthConfig) (auth.TokenStore, error) {
	switch cfg.TokenStore {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(cfg.TokenFile), nil
	default:
		return nil, fmt.Errorf("unknown token store %q", cfg.TokenStore)
	}
}
