package gotdoc

import "strings"

// MinAPIKeyLength is the shortest key accepted as well formed.
const MinAPIKeyLength = 21

// Credentials locate and authorize the remote translation endpoint.
type Credentials struct {
	Endpoint string
	APIKey   string
}

// WellFormed reports whether the credentials pass the format check that
// marks a client as working. It never touches the network.
func (c Credentials) WellFormed() bool {
	return strings.TrimSpace(c.Endpoint) != "" &&
		strings.TrimSpace(c.APIKey) != "" &&
		len(c.APIKey) >= MinAPIKeyLength
}

// Validate checks the credentials for a configure step: non-empty values,
// an https:// endpoint and a minimum key length.
func (c Credentials) Validate() error {
	switch {
	case strings.TrimSpace(c.Endpoint) == "":
		return &ConfigurationError{Message: "endpoint is empty"}
	case !strings.HasPrefix(strings.ToLower(c.Endpoint), "https://"):
		return &ConfigurationError{Message: "endpoint must use https://"}
	case strings.TrimSpace(c.APIKey) == "":
		return &ConfigurationError{Message: "API key is empty"}
	case len(c.APIKey) < MinAPIKeyLength:
		return &ConfigurationError{Message: "API key is too short"}
	}
	return nil
}
