package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentials(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		endpoint string
		key      string
	}{
		{
			name:     "key value",
			input:    "ENDPOINT=https://example.inference.ai.azure.com\nAPI_KEY=secret\n",
			endpoint: "https://example.inference.ai.azure.com",
			key:      "secret",
		},
		{
			name:     "env style keys",
			input:    "AZURE_AI_ENDPOINT=https://a.example\nAZURE_AI_API_KEY=k\n",
			endpoint: "https://a.example",
			key:      "k",
		},
		{
			name:     "positional lines",
			input:    "https://b.example\nkey123\n",
			endpoint: "https://b.example",
			key:      "key123",
		},
		{
			name:  "single line",
			input: "https://c.example",
		},
		{
			name: "empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := ParseCredentials([]byte(tt.input))
			assert.Equal(t, tt.endpoint, creds.Endpoint)
			assert.Equal(t, tt.key, creds.APIKey)
		})
	}
}

func TestLoadCredentials_EnvFallback(t *testing.T) {
	t.Setenv(EnvEndpoint, "https://env.example")
	t.Setenv(EnvAPIKey, "env-key")

	creds, err := LoadCredentials(filepath.Join(t.TempDir(), "missing.txt"))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", creds.Endpoint)
	assert.Equal(t, "env-key", creds.APIKey)
}

func TestLoadCredentials_FileWins(t *testing.T) {
	t.Setenv(EnvEndpoint, "https://env.example")
	t.Setenv(EnvAPIKey, "env-key")

	path := filepath.Join(t.TempDir(), DefaultCredentialsFile)
	require.NoError(t, os.WriteFile(path, []byte("ENDPOINT=https://file.example\nAPI_KEY=file-key\n"), 0o600))

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example", creds.Endpoint)
	assert.Equal(t, "file-key", creds.APIKey)
}

func TestSaveCredentials(t *testing.T) {
	t.Setenv(EnvEndpoint, "")
	t.Setenv(EnvAPIKey, "")

	path := filepath.Join(t.TempDir(), DefaultCredentialsFile)
	creds := ParseCredentials([]byte("ENDPOINT=https://x.example\nAPI_KEY=abc\n"))
	require.NoError(t, SaveCredentials(path, creds))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, creds, loaded)
}
