package components

import (
	"testing"
	"time"

	"github.com/artpar/kvdraft/internal/core"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMockPanel(t *testing.T) *MockPanel {
	t.Helper()
	panel := NewMockPanel()
	panel.SetSize(80, 24)
	panel.Focus()
	return panel
}

// clearInput deletes the prefilled text of the field being edited.
func clearInput(p *MockPanel) {
	for range 32 {
		send(p, key(tea.KeyBackspace))
	}
}

func TestNewMockPanel(t *testing.T) {
	panel := NewMockPanel()

	require.Len(t, panel.Routes(), 1)
	r := panel.Route()
	assert.Equal(t, "/", r.Path)
	assert.Equal(t, "GET", r.Method)
	assert.Equal(t, 200, r.Status)
	assert.Equal(t, MockSectionRoute, panel.Section())
	assert.Equal(t, "Mock Server", panel.Title())
}

func TestMockPanel_RouteFields(t *testing.T) {
	t.Run("path", func(t *testing.T) {
		panel := newTestMockPanel(t)

		send(panel, runes("i"))
		require.True(t, panel.IsEditing())
		send(panel, runes("users"), key(tea.KeyEnter))

		assert.False(t, panel.IsEditing())
		assert.Equal(t, "/users", panel.Route().Path)
	})

	t.Run("status", func(t *testing.T) {
		panel := newTestMockPanel(t)

		send(panel, runes("j"), runes("i"))
		clearInput(panel)
		send(panel, runes("201"), key(tea.KeyEnter))

		assert.Equal(t, 201, panel.Route().Status)
	})

	t.Run("invalid status keeps editing", func(t *testing.T) {
		panel := newTestMockPanel(t)

		send(panel, runes("j"), runes("i"))
		clearInput(panel)
		send(panel, runes("abc"), key(tea.KeyEnter))

		assert.True(t, panel.IsEditing())
		assert.Equal(t, 200, panel.Route().Status)
		assert.Contains(t, panel.View(), "status must be a number")

		send(panel, key(tea.KeyEsc))
		assert.False(t, panel.IsEditing())
	})

	t.Run("delay", func(t *testing.T) {
		panel := newTestMockPanel(t)

		send(panel, key(tea.KeyDown), key(tea.KeyDown), runes("i"))
		clearInput(panel)
		send(panel, runes("250ms"), key(tea.KeyEnter))

		assert.Equal(t, 250*time.Millisecond, panel.Route().Delay)
	})

	t.Run("esc cancels", func(t *testing.T) {
		panel := newTestMockPanel(t)

		send(panel, runes("i"), runes("nope"), key(tea.KeyEsc))

		assert.Equal(t, "/", panel.Route().Path)
	})

	t.Run("m cycles the method", func(t *testing.T) {
		panel := newTestMockPanel(t)

		send(panel, runes("m"), runes("m"))

		assert.Equal(t, "PUT", panel.Route().Method)
	})

	t.Run("validation status is shown", func(t *testing.T) {
		panel := newTestMockPanel(t)
		assert.Contains(t, panel.View(), "Route is valid")

		send(panel, runes("i"))
		clearInput(panel)
		send(panel, runes("users"), key(tea.KeyEnter))

		assert.Contains(t, panel.View(), "must start with /")
	})
}

func TestMockPanel_Routes(t *testing.T) {
	t.Run("n adds a route and H/L switch", func(t *testing.T) {
		panel := newTestMockPanel(t)
		first := panel.Route()

		send(panel, runes("n"))
		require.Len(t, panel.Routes(), 2)
		assert.NotEqual(t, first.ID, panel.Route().ID)

		send(panel, runes("H"))
		assert.Equal(t, first.ID, panel.Route().ID)
		send(panel, runes("H"))
		assert.NotEqual(t, first.ID, panel.Route().ID, "wraps around")
	})

	t.Run("x deletes the route", func(t *testing.T) {
		panel := newTestMockPanel(t)
		first := panel.Route()
		send(panel, runes("n"))

		send(panel, runes("x"))

		require.Len(t, panel.Routes(), 1)
		assert.Equal(t, first.ID, panel.Route().ID)
	})

	t.Run("deleting the last route resets it", func(t *testing.T) {
		panel := newTestMockPanel(t)
		send(panel, runes("j"), runes("i"))
		clearInput(panel)
		send(panel, runes("404"), key(tea.KeyEnter))

		send(panel, runes("x"))

		require.Len(t, panel.Routes(), 1)
		assert.Equal(t, 200, panel.Route().Status)
		assert.Equal(t, "/", panel.Route().Path)
	})
}

func TestMockPanel_Headers(t *testing.T) {
	panel := newTestMockPanel(t)

	send(panel, runes("2"))
	require.Equal(t, MockSectionHeaders, panel.Section())
	assert.True(t, panel.HeadersTable().Focused())

	send(panel, runes("i"), runes("Content-Type"), key(tea.KeyEnter))
	send(panel, key(tea.KeyTab), runes("i"), runes("application/json"), key(tea.KeyEnter))

	assert.True(t, panel.Route().Headers.Equal(core.MappingOf("Content-Type", "application/json")))

	t.Run("switching routes shows their headers", func(t *testing.T) {
		send(panel, runes("n"))
		assert.Equal(t, 0, panel.HeadersTable().Editor().Mapping().Len())

		send(panel, runes("H"))
		assert.Equal(t, 1, panel.HeadersTable().Editor().Mapping().Len())
	})

	t.Run("leaving the section blurs the table", func(t *testing.T) {
		send(panel, runes("1"))
		assert.False(t, panel.HeadersTable().Focused())
	})
}

func TestMockPanel_Body(t *testing.T) {
	panel := newTestMockPanel(t)

	send(panel, runes("3"), runes("i"))
	require.True(t, panel.IsEditing())
	send(panel, runes(`{"ok":true}`))
	assert.Equal(t, `{"ok":true}`, panel.Route().Body)

	send(panel, key(tea.KeyCtrlF))
	assert.Equal(t, "{\n  \"ok\": true\n}", panel.Route().Body)

	send(panel, key(tea.KeyEsc))
	assert.False(t, panel.IsEditing())
	assert.Contains(t, panel.View(), `"ok": true`)
}

func TestMockPanel_View(t *testing.T) {
	panel := newTestMockPanel(t)

	view := panel.View()

	assert.Contains(t, view, "Mock Server")
	assert.Contains(t, view, "[1/1]")
	assert.Contains(t, view, "GET / -> 200")
	assert.Contains(t, view, "Headers")

	assert.Empty(t, NewMockPanel().View(), "no size yet")
}
