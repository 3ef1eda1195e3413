package suggest

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
)

// LoadedMsg carries the result of a Fetch. A failed fetch arrives with no
// items.
type LoadedMsg struct {
	Target string
	Query  string
	Items  []string
}

// BlurElapsedMsg fires when a blur grace period ends.
type BlurElapsedMsg struct {
	Target string
	Token  int
}

// FetchCmd runs src in the background. Errors are logged and degrade to an
// empty list. Responses are not cancelled; the last one to arrive wins.
func FetchCmd(ctx context.Context, src Source, target, query string, log logr.Logger) tea.Cmd {
	return func() tea.Msg {
		items, err := src.Fetch(ctx, query)
		switch {
		case errors.Is(err, ErrUnauthenticated):
			log.V(1).Info("suggestions unavailable", "target", target, "reason", err.Error())
			items = nil
		case err != nil:
			log.Error(err, "suggestion fetch failed", "target", target)
			items = nil
		}
		return LoadedMsg{Target: target, Query: query, Items: items}
	}
}

// BlurCmd schedules the BlurElapsedMsg for token after grace.
func BlurCmd(grace time.Duration, target string, token int) tea.Cmd {
	if grace <= 0 {
		return func() tea.Msg { return BlurElapsedMsg{Target: target, Token: token} }
	}
	return tea.Tick(grace, func(time.Time) tea.Msg {
		return BlurElapsedMsg{Target: target, Token: token}
	})
}
