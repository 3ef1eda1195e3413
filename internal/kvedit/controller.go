package kvedit

import "github.com/artpar/kvdraft/internal/core"

// SyncState tracks who currently owns the row contents.
type SyncState int

const (
	// Uninitialized: nothing has been seeded and the user has not typed.
	Uninitialized SyncState = iota
	// Seeded: rows mirror the owner's mapping and hold no local edits.
	Seeded
	// UserEditing: rows carry local edits; owner mappings are ignored until Reset.
	UserEditing
)

func (s SyncState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Seeded:
		return "seeded"
	case UserEditing:
		return "user-editing"
	default:
		return "unknown"
	}
}

// controller decides whether a mapping pushed by the owner may replace the
// rows. Once the user edits, the owner's echo of the emitted mapping must not
// clobber in-progress rows, so only an explicit Reset re-seeds.
type controller struct {
	state SyncState
}

func (c *controller) accepts(incoming, current *core.Mapping) bool {
	switch c.state {
	case Uninitialized:
		return true
	case Seeded:
		return !incoming.Equal(current)
	default:
		return false
	}
}

func (c *controller) seeded() { c.state = Seeded }
func (c *controller) edited() { c.state = UserEditing }
