package core

import (
	"errors"
	"fmt"
)

// ErrTabNotFound is returned when a tab id is not open.
var ErrTabNotFound = errors.New("tab not found")

// Tabs owns the open request drafts, in opening order, and the active tab.
type Tabs struct {
	drafts map[string]*RequestDraft
	order  []string
	active string
}

// NewTabs creates an empty tab set.
func NewTabs() *Tabs {
	return &Tabs{
		drafts: make(map[string]*RequestDraft),
		order:  make([]string, 0),
	}
}

// Open adds a draft and makes it active.
func (t *Tabs) Open(d *RequestDraft) {
	if _, exists := t.drafts[d.ID]; !exists {
		t.order = append(t.order, d.ID)
	}
	t.drafts[d.ID] = d
	t.active = d.ID
}

// Close removes a tab. Closing the active tab activates its left neighbour.
func (t *Tabs) Close(id string) error {
	if _, ok := t.drafts[id]; !ok {
		return fmt.Errorf("close %s: %w", id, ErrTabNotFound)
	}
	delete(t.drafts, id)

	idx := 0
	for i, tabID := range t.order {
		if tabID == id {
			idx = i
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}

	if t.active == id {
		t.active = ""
		if len(t.order) > 0 {
			if idx > 0 {
				idx--
			}
			t.active = t.order[idx]
		}
	}
	return nil
}

func (t *Tabs) Activate(id string) error {
	if _, ok := t.drafts[id]; !ok {
		return fmt.Errorf("activate %s: %w", id, ErrTabNotFound)
	}
	t.active = id
	return nil
}

// Active returns the active draft, or nil when no tab is open.
func (t *Tabs) Active() *RequestDraft {
	return t.drafts[t.active]
}

func (t *Tabs) Get(id string) (*RequestDraft, error) {
	d, ok := t.drafts[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, ErrTabNotFound)
	}
	return d, nil
}

// IDs returns tab ids in opening order.
func (t *Tabs) IDs() []string {
	result := make([]string, len(t.order))
	copy(result, t.order)
	return result
}

func (t *Tabs) Len() int {
	return len(t.order)
}

// Update applies patches to the draft of the given tab.
func (t *Tabs) Update(id string, patches ...Patch) error {
	d, ok := t.drafts[id]
	if !ok {
		return fmt.Errorf("update %s: %w", id, ErrTabNotFound)
	}
	d.Apply(patches...)
	return nil
}

// UpdateActive applies patches to the active draft.
func (t *Tabs) UpdateActive(patches ...Patch) error {
	return t.Update(t.active, patches...)
}
