package vim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode(t *testing.T) {
	t.Run("mode string representation", func(t *testing.T) {
		assert.Equal(t, "NORMAL", ModeNormal.String())
		assert.Equal(t, "INSERT", ModeInsert.String())
		assert.Equal(t, "UNKNOWN", Mode(9).String())
	})

	t.Run("mode of an editing component", func(t *testing.T) {
		assert.Equal(t, ModeInsert, ModeOf(true))
		assert.Equal(t, ModeNormal, ModeOf(false))
	})
}
