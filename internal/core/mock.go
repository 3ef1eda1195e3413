package core

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockRoute is one route of the mock-server configuration.
type MockRoute struct {
	ID      string
	Method  string
	Path    string
	Status  int
	Headers *Mapping
	Body    string
	Delay   time.Duration
}

// NewMockRoute creates a GET route answering 200 with an empty body.
func NewMockRoute(path string) *MockRoute {
	return &MockRoute{
		ID:      uuid.New().String(),
		Method:  http.MethodGet,
		Path:    path,
		Status:  http.StatusOK,
		Headers: NewMapping(),
	}
}

// Validate checks the route can be served.
func (r *MockRoute) Validate() error {
	if strings.TrimSpace(r.Path) == "" {
		return fmt.Errorf("mock route path cannot be empty")
	}
	if !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("mock route path must start with /: %q", r.Path)
	}
	if r.Status < 100 || r.Status > 599 {
		return fmt.Errorf("mock route status out of range: %d", r.Status)
	}
	if r.Delay < 0 {
		return fmt.Errorf("mock route delay cannot be negative")
	}
	return nil
}

// FormatBody pretty prints the response body when it is JSON.
func (r *MockRoute) FormatBody() {
	r.Body = FormatJSON(r.Body)
}

// Summary returns a one-line description of the route.
func (r *MockRoute) Summary() string {
	return fmt.Sprintf("%s %s -> %d", strings.ToUpper(r.Method), r.Path, r.Status)
}
