package suggest

import (
	"context"
	"errors"
	"fmt"

	"github.com/artpar/kvdraft/internal/history"
)

// ErrUnauthenticated is returned by sources that need a workspace when none
// is selected.
var ErrUnauthenticated = errors.New("no workspace selected")

// Source produces candidates for a query.
type Source interface {
	Fetch(ctx context.Context, query string) ([]string, error)
}

// Static is a fixed candidate list.
type Static []string

// Fetch returns the whole list; filtering happens in the Provider.
func (s Static) Fetch(context.Context, string) ([]string, error) {
	out := make([]string, len(s))
	copy(out, s)
	return out, nil
}

// HeaderNames are the well-known request header names offered while typing
// a header key.
var HeaderNames = Static{
	"Accept",
	"Accept-Charset",
	"Accept-Encoding",
	"Accept-Language",
	"Authorization",
	"Cache-Control",
	"Connection",
	"Content-Disposition",
	"Content-Encoding",
	"Content-Length",
	"Content-Type",
	"Cookie",
	"Date",
	"DNT",
	"Expect",
	"Forwarded",
	"From",
	"Host",
	"If-Match",
	"If-Modified-Since",
	"If-None-Match",
	"If-Range",
	"If-Unmodified-Since",
	"Origin",
	"Pragma",
	"Proxy-Authorization",
	"Range",
	"Referer",
	"TE",
	"Upgrade",
	"User-Agent",
	"Via",
	"X-API-Key",
	"X-Correlation-ID",
	"X-Forwarded-For",
	"X-Forwarded-Host",
	"X-Forwarded-Proto",
	"X-Request-ID",
	"X-Requested-With",
}

// URLHistory suggests previously used URLs of one workspace, most recent
// first.
type URLHistory struct {
	Store       history.Store
	WorkspaceID string
	// PageSize bounds how many distinct URLs one fetch reads.
	PageSize int
}

// Fetch returns distinct history URLs containing query.
func (h URLHistory) Fetch(ctx context.Context, query string) ([]string, error) {
	if h.WorkspaceID == "" {
		return nil, ErrUnauthenticated
	}
	if h.Store == nil {
		return nil, errors.New("history store not configured")
	}

	urls, err := h.Store.URLs(ctx, history.QueryOptions{
		WorkspaceID: h.WorkspaceID,
		URLContains: query,
		Page:        1,
		PageSize:    h.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load url history: %w", err)
	}
	return urls, nil
}
