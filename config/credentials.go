package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ZaguanLabs/gotdoc"
)

// DefaultCredentialsFile is the credentials file name in the application
// directory.
const DefaultCredentialsFile = "azure_config.txt"

// Environment variables consulted when the file yields no credentials.
const (
	EnvEndpoint = "AZURE_AI_ENDPOINT"
	EnvAPIKey   = "AZURE_AI_API_KEY"
)

const (
	keyEndpoint = "ENDPOINT"
	keyAPIKey   = "API_KEY"
)

// LoadCredentials reads the endpoint and key from path, then falls back to
// the environment when either value is missing. A missing file is not an
// error; the result may be empty.
func LoadCredentials(path string) (gotdoc.Credentials, error) {
	var creds gotdoc.Credentials

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return gotdoc.Credentials{}, &gotdoc.ReadError{Path: path, Cause: err}
		default:
			creds = ParseCredentials(data)
		}
	}

	if creds.Endpoint == "" || creds.APIKey == "" {
		creds = gotdoc.Credentials{
			Endpoint: os.Getenv(EnvEndpoint),
			APIKey:   os.Getenv(EnvAPIKey),
		}
	}
	return creds, nil
}

// ParseCredentials reads ENDPOINT=... and API_KEY=... lines. Files that do
// not parse as key=value pairs are read positionally: the first line is the
// endpoint and the second the key, each optionally prefixed by "NAME=".
func ParseCredentials(data []byte) gotdoc.Credentials {
	if env, err := godotenv.Parse(bytes.NewReader(data)); err == nil {
		creds := gotdoc.Credentials{
			Endpoint: firstOf(env, keyEndpoint, EnvEndpoint),
			APIKey:   firstOf(env, keyAPIKey, EnvAPIKey),
		}
		if creds.Endpoint != "" && creds.APIKey != "" {
			return creds
		}
	}

	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return gotdoc.Credentials{}
	}
	return gotdoc.Credentials{
		Endpoint: afterEquals(lines[0]),
		APIKey:   afterEquals(lines[1]),
	}
}

// SaveCredentials writes creds to path readable only by the owner.
func SaveCredentials(path string, creds gotdoc.Credentials) error {
	content := fmt.Sprintf("%s=%s\n%s=%s\n", keyEndpoint, creds.Endpoint, keyAPIKey, creds.APIKey)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return &gotdoc.WriteError{Path: path, Cause: err}
	}
	return nil
}

func firstOf(env map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(env[k]); v != "" {
			return v
		}
	}
	return ""
}

func afterEquals(line string) string {
	if _, v, ok := strings.Cut(line, "="); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(line)
}
