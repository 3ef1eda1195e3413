package core

import (
	"fmt"
)

// AuthType represents the type of authentication.
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeBasic  AuthType = "basic"
	AuthTypeBearer AuthType = "bearer"
	AuthTypeAPIKey AuthType = "apikey"
)

// AuthTypeNames returns display names for auth types.
var AuthTypeNames = map[AuthType]string{
	AuthTypeNone:   "No Auth",
	AuthTypeBasic:  "Basic Auth",
	AuthTypeBearer: "Bearer Token",
	AuthTypeAPIKey: "API Key",
}

// AuthTypes returns the auth types in the order the auth tab cycles through them.
func AuthTypes() []AuthType {
	return []AuthType{AuthTypeNone, AuthTypeBasic, AuthTypeBearer, AuthTypeAPIKey}
}

// APIKeyLocation specifies where to add the API key.
type APIKeyLocation string

const (
	APIKeyInHeader APIKeyLocation = "header"
	APIKeyInQuery  APIKeyLocation = "query"
)

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Type     AuthType       `json:"type" yaml:"type"`
	Token    string         `json:"token,omitempty" yaml:"token,omitempty"`
	Username string         `json:"username,omitempty" yaml:"username,omitempty"`
	Password string         `json:"password,omitempty" yaml:"password,omitempty"`
	Key      string         `json:"key,omitempty" yaml:"key,omitempty"`
	Value    string         `json:"value,omitempty" yaml:"value,omitempty"`
	In       APIKeyLocation `json:"in,omitempty" yaml:"in,omitempty"`
}

// IsConfigured returns true if authentication is configured (not none/empty).
func (a AuthConfig) IsConfigured() bool {
	return a.Type != "" && a.Type != AuthTypeNone
}

// Validate checks if the auth configuration is valid.
func (a AuthConfig) Validate() error {
	switch a.Type {
	case "", AuthTypeNone:
		return nil
	case AuthTypeBasic:
		if a.Username == "" {
			return fmt.Errorf("basic auth requires username")
		}
	case AuthTypeBearer:
		if a.Token == "" {
			return fmt.Errorf("bearer auth requires token")
		}
	case AuthTypeAPIKey:
		if a.Key == "" {
			return fmt.Errorf("API key auth requires key name")
		}
		if a.In != "" && a.In != APIKeyInHeader && a.In != APIKeyInQuery {
			return fmt.Errorf("API key location must be header or query, got %q", a.In)
		}
	default:
		return fmt.Errorf("unknown auth type %q", a.Type)
	}
	return nil
}

// DisplayName returns a human-readable name for the auth type.
func (a AuthConfig) DisplayName() string {
	if a.Type == "" {
		return AuthTypeNames[AuthTypeNone]
	}
	if name, ok := AuthTypeNames[a.Type]; ok {
		return name
	}
	return string(a.Type)
}

// Summary returns a brief summary of the auth configuration.
func (a AuthConfig) Summary() string {
	if !a.IsConfigured() {
		return "No authentication"
	}

	switch a.Type {
	case AuthTypeBasic:
		return fmt.Sprintf("Basic: %s", a.Username)
	case AuthTypeBearer:
		if len(a.Token) > 20 {
			return fmt.Sprintf("Bearer: %s...%s", a.Token[:8], a.Token[len(a.Token)-4:])
		}
		return "Bearer: ****"
	case AuthTypeAPIKey:
		loc := APIKeyInHeader
		if a.In != "" {
			loc = a.In
		}
		return fmt.Sprintf("API Key: %s (in %s)", a.Key, loc)
	}
	return a.DisplayName()
}
