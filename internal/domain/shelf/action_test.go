package shelf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAction(t *testing.T) {
	t.Run("valid actions", func(t *testing.T) {
		for _, a := range Actions {
			assert.True(t, a.IsValid(), a)
		}
		assert.False(t, Action("sold").IsValid())
		assert.False(t, Action("").IsValid())
	})

	t.Run("labels", func(t *testing.T) {
		assert.Equal(t, "Empty", ActionEmpty.Label())
		assert.Equal(t, "Low Stock", ActionLowStock.Label())
		assert.Equal(t, "Restocked", ActionRestocked.Label())
	})
}
