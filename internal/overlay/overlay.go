// Package overlay places anchored popups (suggestion dropdowns, selectors)
// inside the terminal viewport and keeps them placed as the viewport changes.
//
// A popup acquires a Handle from the Manager when it opens and releases it
// when it closes. Only live handles receive viewport updates.
package overlay

// Rect is a cell rectangle in content coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Bottom returns the row just below the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Placement tells on which side of its anchor a popup was placed.
type Placement int

const (
	Below Placement = iota
	Above
)

func (p Placement) String() string {
	if p == Above {
		return "above"
	}
	return "below"
}

// Manager tracks the viewport and the live handles.
type Manager struct {
	width, height int
	scrollY       int
	nextID        int
	handles       map[int]*Handle
}

// NewManager creates a manager for a viewport of the given size.
func NewManager(width, height int) *Manager {
	return &Manager{
		width:   width,
		height:  height,
		handles: make(map[int]*Handle),
	}
}

// Resize updates the viewport size and re-places every live handle.
func (m *Manager) Resize(width, height int) {
	m.width, m.height = width, height
	m.notify()
}

// Scroll sets the vertical scroll offset of the content and re-places every
// live handle.
func (m *Manager) Scroll(offsetY int) {
	if offsetY < 0 {
		offsetY = 0
	}
	m.scrollY = offsetY
	m.notify()
}

// Acquire registers a popup of the preferred size anchored to anchor.
func (m *Manager) Acquire(anchor Rect, width, height int) *Handle {
	m.nextID++
	h := &Handle{
		manager: m,
		id:      m.nextID,
		anchor:  anchor,
		width:   width,
		height:  height,
	}
	m.handles[h.id] = h
	h.place()
	return h
}

// Live returns the number of unreleased handles.
func (m *Manager) Live() int { return len(m.handles) }

func (m *Manager) Size() (int, int) { return m.width, m.height }
func (m *Manager) ScrollY() int      { return m.scrollY }

func (m *Manager) notify() {
	for _, h := range m.handles {
		h.place()
	}
}

// Handle is one acquired popup slot.
type Handle struct {
	manager  *Manager
	id       int
	anchor   Rect
	width    int
	height   int
	rect     Rect
	side     Placement
	released bool
	onChange func(Rect)
}

// OnChange registers a callback run after every re-placement.
func (h *Handle) OnChange(fn func(Rect)) { h.onChange = fn }

// Rect returns the popup rectangle in viewport coordinates.
func (h *Handle) Rect() Rect { return h.rect }

// Placement returns the side of the anchor the popup is on.
func (h *Handle) Placement() Placement { return h.side }

// Released reports whether Release was called.
func (h *Handle) Released() bool { return h.released }

// SetAnchor moves the anchor and re-places the popup.
func (h *Handle) SetAnchor(anchor Rect) {
	if h.released {
		return
	}
	h.anchor = anchor
	h.place()
}

// SetSize changes the preferred popup size and re-places the popup.
func (h *Handle) SetSize(width, height int) {
	if h.released {
		return
	}
	h.width, h.height = width, height
	h.place()
}

// Release detaches the handle from the manager. Releasing twice is a no-op.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true
	delete(h.manager.handles, h.id)
	h.onChange = nil
}

// place puts the popup below the anchor, flips it above when it does not fit
// below but fits above, and otherwise uses the larger side with a clipped
// height. Horizontally it is shifted left to stay inside the viewport.
func (h *Handle) place() {
	vw, vh := h.manager.width, h.manager.height
	anchorY := h.anchor.Y - h.manager.scrollY

	spaceBelow := vh - (anchorY + h.anchor.Height)
	spaceAbove := anchorY
	height := h.height

	switch {
	case height <= spaceBelow:
		h.side = Below
	case height <= spaceAbove:
		h.side = Above
	case spaceAbove > spaceBelow:
		h.side = Above
		height = max(spaceAbove, 0)
	default:
		h.side = Below
		height = max(spaceBelow, 0)
	}

	y := anchorY + h.anchor.Height
	if h.side == Above {
		y = anchorY - height
	}

	width := min(h.width, vw)
	x := h.anchor.X
	if x+width > vw {
		x = vw - width
	}
	x = max(x, 0)

	h.rect = Rect{X: x, Y: y, Width: max(width, 0), Height: height}
	if h.onChange != nil {
		h.onChange(h.rect)
	}
}
