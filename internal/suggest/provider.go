// Package suggest filters candidate lists against user input and tracks the
// open/closed and selection state of a suggestion dropdown.
package suggest

import "strings"

// DefaultLimit caps the number of shown suggestions.
const DefaultLimit = 8

// Provider is the state machine behind a suggestion dropdown. It is owned by
// a single component and is not safe for concurrent use.
type Provider struct {
	limit      int
	candidates []string

	query    string
	items    []string
	open     bool
	selected int
	focused  bool

	// Blur closes the dropdown only after a grace delay. Each Blur gets a new
	// token so stale timers are ignored.
	blurToken   int
	blurPending bool
	// pointerDown is set between a pointer press and its click so the blur
	// timer does not close the dropdown under a pending selection.
	pointerDown bool
}

// Option configures a Provider.
type Option func(*Provider)

// WithLimit sets the maximum number of suggestions. Non-positive values
// keep the default.
func WithLimit(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.limit = n
		}
	}
}

// WithCandidates sets the initial candidate list.
func WithCandidates(c []string) Option {
	return func(p *Provider) { p.candidates = dedupe(c) }
}

// NewProvider creates a closed provider.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{limit: DefaultLimit, selected: -1}
	for _, opt := range opts {
		opt(p)
	}
	p.refilter()
	return p
}

// Match returns the candidates containing query, case-insensitively, in
// candidate order without duplicates and capped at limit.
func Match(candidates []string, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []string
	seen := make(map[string]bool)
	for _, c := range candidates {
		if limit > 0 && len(out) >= limit {
			break
		}
		if seen[c] || !strings.Contains(strings.ToLower(c), q) {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// SetCandidates replaces the candidate list. A focused provider opens when
// the new list matches the current query; any provider closes when nothing
// matches.
func (p *Provider) SetCandidates(c []string) {
	p.candidates = dedupe(c)
	p.refilter()
	switch {
	case len(p.items) == 0:
		p.close()
	case p.focused:
		p.open = true
	}
	p.clampSelection()
}

// Focus opens the dropdown when suggestions exist and cancels a pending blur.
func (p *Provider) Focus() {
	p.focused = true
	p.blurPending = false
	p.refilter()
	p.open = len(p.items) > 0
	p.selected = -1
}

// Input filters against q, opening on at least one match and closing on none.
func (p *Provider) Input(q string) {
	p.query = q
	p.refilter()
	p.open = len(p.items) > 0
	p.selected = -1
}

// Blur starts the grace period and returns its token for BlurElapsed.
func (p *Provider) Blur() int {
	p.focused = false
	p.blurToken++
	p.blurPending = true
	return p.blurToken
}

// BlurElapsed closes the dropdown if token belongs to the latest Blur, no
// Focus happened since, and no pointer selection is pending.
func (p *Provider) BlurElapsed(token int) {
	if !p.blurPending || token != p.blurToken {
		return
	}
	p.blurPending = false
	if p.pointerDown {
		return
	}
	p.close()
}

// PointerDown marks a pointer selection in progress.
func (p *Provider) PointerDown() {
	if p.open {
		p.pointerDown = true
	}
}

// Click accepts the suggestion at index i.
func (p *Provider) Click(i int) (string, bool) {
	p.pointerDown = false
	if !p.open || i < 0 || i >= len(p.items) {
		// A guarded blur already elapsed.
		if !p.focused && !p.blurPending {
			p.close()
		}
		return "", false
	}
	return p.accept(i), true
}

// Up moves the selection towards the top. Moving up from the first entry
// clears the selection; it never wraps.
func (p *Provider) Up() {
	if p.open && p.selected > -1 {
		p.selected--
	}
}

// Down moves the selection towards the bottom, stopping at the last entry.
func (p *Provider) Down() {
	if !p.open {
		return
	}
	if p.selected < len(p.items)-1 {
		p.selected++
	}
}

// Enter accepts the selected suggestion. Without a selection it does nothing.
func (p *Provider) Enter() (string, bool) {
	if !p.open || p.selected < 0 {
		return "", false
	}
	return p.accept(p.selected), true
}

// Escape dismisses the dropdown.
func (p *Provider) Escape() {
	p.close()
}

func (p *Provider) IsOpen() bool    { return p.open }
func (p *Provider) Selected() int   { return p.selected }
func (p *Provider) Query() string   { return p.query }
func (p *Provider) Focused() bool   { return p.focused }
func (p *Provider) Limit() int      { return p.limit }
func (p *Provider) Candidates() int { return len(p.candidates) }

// Items returns the current suggestions.
func (p *Provider) Items() []string {
	out := make([]string, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Provider) accept(i int) string {
	value := p.items[i]
	p.query = value
	p.close()
	return value
}

func (p *Provider) close() {
	p.open = false
	p.selected = -1
	p.pointerDown = false
	p.blurPending = false
}

func (p *Provider) refilter() {
	p.items = Match(p.candidates, p.query, p.limit)
}

func (p *Provider) clampSelection() {
	if p.selected >= len(p.items) {
		p.selected = len(p.items) - 1
	}
	if !p.open {
		p.selected = -1
	}
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
