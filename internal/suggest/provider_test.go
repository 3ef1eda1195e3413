package suggest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	candidates := []string{"Accept", "Accept-Encoding", "Content-Type", "X-Accepted", "Accept"}

	t.Run("case-insensitive substring", func(t *testing.T) {
		assert.Equal(t, []string{"Accept", "Accept-Encoding", "X-Accepted"}, Match(candidates, "aCCep", 0))
		assert.Equal(t, []string{"Content-Type"}, Match(candidates, "type", 0))
	})

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Len(t, Match(candidates, "", 0), 4)
	})

	t.Run("capped", func(t *testing.T) {
		assert.Equal(t, []string{"Accept", "Accept-Encoding"}, Match(candidates, "acc", 2))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Match(candidates, "zzz", 0))
	})
}

func TestProvider_Limit(t *testing.T) {
	many := make([]string, 20)
	for i := range many {
		many[i] = fmt.Sprintf("X-Header-%d", i)
	}

	p := NewProvider(WithCandidates(many))
	p.Input("x-")
	assert.Len(t, p.Items(), DefaultLimit)

	p = NewProvider(WithCandidates(many), WithLimit(3))
	p.Input("x-")
	assert.Len(t, p.Items(), 3)

	assert.Equal(t, DefaultLimit, NewProvider(WithLimit(0)).Limit())
}

func TestProvider_OpenClose(t *testing.T) {
	t.Run("starts closed", func(t *testing.T) {
		p := NewProvider(WithCandidates(HeaderNames))
		assert.False(t, p.IsOpen())
		assert.Equal(t, -1, p.Selected())
	})

	t.Run("focus opens when candidates exist", func(t *testing.T) {
		p := NewProvider(WithCandidates(HeaderNames))
		p.Focus()
		assert.True(t, p.IsOpen())
	})

	t.Run("focus without candidates stays closed", func(t *testing.T) {
		p := NewProvider()
		p.Focus()
		assert.False(t, p.IsOpen())
	})

	t.Run("input opens on a match and closes on none", func(t *testing.T) {
		p := NewProvider(WithCandidates(HeaderNames))
		p.Input("content-t")
		require.True(t, p.IsOpen())
		assert.Equal(t, []string{"Content-Type"}, p.Items())

		p.Input("content-tz")
		assert.False(t, p.IsOpen())
		assert.Empty(t, p.Items())
	})

	t.Run("escape closes", func(t *testing.T) {
		p := NewProvider(WithCandidates(HeaderNames))
		p.Input("acc")
		p.Down()
		p.Escape()
		assert.False(t, p.IsOpen())
		assert.Equal(t, -1, p.Selected())
	})
}

func TestProvider_Navigation(t *testing.T) {
	newOpen := func() *Provider {
		p := NewProvider(WithCandidates([]string{"a1", "a2", "a3"}))
		p.Input("a")
		return p
	}

	t.Run("down clamps at the last entry", func(t *testing.T) {
		p := newOpen()
		for i := 0; i < 10; i++ {
			p.Down()
		}
		assert.Equal(t, 2, p.Selected())
	})

	t.Run("up clamps at no selection", func(t *testing.T) {
		p := newOpen()
		p.Down()
		p.Up()
		p.Up()
		p.Up()
		assert.Equal(t, -1, p.Selected())
	})

	t.Run("selection stays in range", func(t *testing.T) {
		p := newOpen()
		moves := []func(){p.Down, p.Up, p.Down, p.Down, p.Down, p.Down, p.Up}
		for _, move := range moves {
			move()
			assert.GreaterOrEqual(t, p.Selected(), -1)
			assert.Less(t, p.Selected(), len(p.Items()))
		}
	})

	t.Run("enter accepts the selected entry", func(t *testing.T) {
		p := newOpen()
		p.Down()
		p.Down()
		v, ok := p.Enter()
		assert.True(t, ok)
		assert.Equal(t, "a2", v)
		assert.False(t, p.IsOpen())
		assert.Equal(t, "a2", p.Query())
	})

	t.Run("enter without selection is a no-op", func(t *testing.T) {
		p := newOpen()
		_, ok := p.Enter()
		assert.False(t, ok)
		assert.True(t, p.IsOpen())
	})

	t.Run("keys do nothing while closed", func(t *testing.T) {
		p := NewProvider(WithCandidates([]string{"a"}))
		p.Down()
		assert.Equal(t, -1, p.Selected())
	})

	t.Run("new input resets the selection", func(t *testing.T) {
		p := newOpen()
		p.Down()
		p.Input("a3")
		assert.Equal(t, -1, p.Selected())
	})
}

func TestProvider_Blur(t *testing.T) {
	t.Run("closes after the grace delay", func(t *testing.T) {
		p := NewProvider(WithCandidates(HeaderNames))
		p.Focus()
		token := p.Blur()
		assert.True(t, p.IsOpen(), "blur does not close immediately")

		p.BlurElapsed(token)
		assert.False(t, p.IsOpen())
	})

	t.Run("refocus cancels a pending blur", func(t *testing.T) {
		p := NewProvider(WithCandidates(HeaderNames))
		p.Focus()
		token := p.Blur()
		p.Focus()
		p.BlurElapsed(token)
		assert.True(t, p.IsOpen())
	})

	t.Run("stale token is ignored", func(t *testing.T) {
		p := NewProvider(WithCandidates(HeaderNames))
		p.Focus()
		first := p.Blur()
		p.Focus()
		second := p.Blur()
		p.BlurElapsed(first)
		assert.True(t, p.IsOpen())
		p.BlurElapsed(second)
		assert.False(t, p.IsOpen())
	})

	t.Run("pending click survives the blur", func(t *testing.T) {
		p := NewProvider(WithCandidates([]string{"https://a.test", "https://b.test"}))
		p.Focus()
		p.PointerDown()
		token := p.Blur()
		p.BlurElapsed(token)
		require.True(t, p.IsOpen(), "guard keeps the dropdown open")

		v, ok := p.Click(1)
		assert.True(t, ok)
		assert.Equal(t, "https://b.test", v)
		assert.False(t, p.IsOpen())
	})

	t.Run("click outside the list after a guarded blur closes", func(t *testing.T) {
		p := NewProvider(WithCandidates([]string{"a"}))
		p.Focus()
		p.PointerDown()
		p.BlurElapsed(p.Blur())

		_, ok := p.Click(5)
		assert.False(t, ok)
		assert.False(t, p.IsOpen())
	})

	t.Run("pointer down while closed sets no guard", func(t *testing.T) {
		p := NewProvider(WithCandidates([]string{"a"}))
		p.PointerDown()
		p.Focus()
		p.BlurElapsed(p.Blur())
		assert.False(t, p.IsOpen())
	})
}

func TestProvider_SetCandidates(t *testing.T) {
	t.Run("opens a focused provider", func(t *testing.T) {
		p := NewProvider()
		p.Focus()
		require.False(t, p.IsOpen())

		p.SetCandidates([]string{"https://a.test"})
		assert.True(t, p.IsOpen())
	})

	t.Run("does not open an unfocused provider", func(t *testing.T) {
		p := NewProvider()
		p.SetCandidates([]string{"https://a.test"})
		assert.False(t, p.IsOpen())
	})

	t.Run("empty list closes", func(t *testing.T) {
		p := NewProvider(WithCandidates([]string{"x"}))
		p.Focus()
		p.Down()
		p.SetCandidates(nil)
		assert.False(t, p.IsOpen())
		assert.Equal(t, -1, p.Selected())
	})

	t.Run("selection clamps to the shorter list", func(t *testing.T) {
		p := NewProvider(WithCandidates([]string{"a", "b", "c"}))
		p.Focus()
		p.Down()
		p.Down()
		p.Down()
		p.SetCandidates([]string{"a"})
		assert.Equal(t, 0, p.Selected())
	})

	t.Run("duplicates and empty strings are dropped", func(t *testing.T) {
		p := NewProvider()
		p.SetCandidates([]string{"a", "", "a", "b"})
		assert.Equal(t, 2, p.Candidates())
	})
}
