package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"backoffice/config"
	"backoffice/domain/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	m := NewMemory()
	assert.Equal(t, "", m.AccessToken())

	require.NoError(t, m.Save(auth.Tokens{AccessToken: "A", RefreshToken: "B"}))
	assert.Equal(t, "A", m.AccessToken())
	assert.Equal(t, "B", m.RefreshToken())

	require.NoError(t, m.Clear())
	assert.Equal(t, "", m.AccessToken())
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.yaml")
	f := NewFile(path)

	assert.Equal(t, "", f.AccessToken(), "missing file means signed out")

	require.NoError(t, f.Save(auth.Tokens{AccessToken: "A", RefreshToken: "B"}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A second handle on the same file sees the saved tokens.
	other := NewFile(path)
	assert.Equal(t, "A", other.AccessToken())
	assert.Equal(t, "B", other.RefreshToken())

	require.NoError(t, other.Clear())
	assert.Equal(t, "", f.AccessToken())
	require.NoError(t, f.Clear(), "clearing twice is fine")
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("access_token: [unterminated"), 0o600))

	_, err := NewFile(path).Load()
	assert.Error(t, err)
	assert.Equal(t, "", NewFile(path).AccessToken())
}

func TestNew(t *testing.T) {
	s, err := New(config.AuthConfig{TokenStore: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = New(config.AuthConfig{TokenStore: "file", TokenFile: "x.yaml"})
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	_, err = New(config.AuthConfig{TokenStore: "keychain"})
	assert.Error(t, err)
}
