package cell

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oliverbestmann/stash/typeid"
)

type Meters float64

type Location struct {
	X, Y float32
}

type Size struct {
	Value float32
}

type Named interface {
	Name() string
}

type player struct{ name string }

func (p player) Name() string { return p.name }

func TestBox(t *testing.T) {
	t.Run("downcast to the stored type", func(t *testing.T) {
		box := NewBox(Location{X: 12, Y: 32.4})

		value, ok := Downcast[Location](box)
		require.True(t, ok)
		require.Equal(t, Location{X: 12, Y: 32.4}, *value)
	})

	t.Run("downcast to another type is absent", func(t *testing.T) {
		box := NewBox(Location{X: 12, Y: 32.4})

		value, ok := Downcast[Size](box)
		require.False(t, ok)
		require.Nil(t, value)
	})

	t.Run("no conversion to the underlying type", func(t *testing.T) {
		box := NewBox(Meters(3))

		_, ok := Downcast[float64](box)
		require.False(t, ok)

		value, ok := Into[Meters](box)
		require.True(t, ok)
		require.Equal(t, Meters(3), value)
	})

	t.Run("no conversion to an implemented interface", func(t *testing.T) {
		box := NewBox(player{name: "Alice"})

		_, ok := Downcast[Named](box)
		require.False(t, ok)
	})

	t.Run("interface typed values keep the interface type", func(t *testing.T) {
		box := NewBox[Named](player{name: "Alice"})

		_, ok := Downcast[player](box)
		require.False(t, ok)

		value, ok := Into[Named](box)
		require.True(t, ok)
		require.Equal(t, "Alice", value.Name())
	})

	t.Run("downcast aliases the stored value", func(t *testing.T) {
		box := NewBox(Size{Value: 1})

		ptr, _ := Downcast[Size](box)
		ptr.Value = 5

		value, _ := Into[Size](box)
		require.Equal(t, Size{Value: 5}, value)
		require.Equal(t, Size{Value: 5}, box.Value())
	})

	t.Run("nil box is absent", func(t *testing.T) {
		_, ok := Downcast[Size](nil)
		require.False(t, ok)
	})

	t.Run("nil shared cell is absent", func(t *testing.T) {
		var shared *Shared

		_, ok := Borrow[Size](shared)
		require.False(t, ok)

		_, ok = BorrowMut[Size](shared)
		require.False(t, ok)

		_, err := TryBorrow[Size](shared)
		require.ErrorIs(t, err, ErrTypeMismatch)

		_, err = TryBorrowMut[Size](shared)
		require.ErrorIs(t, err, ErrTypeMismatch)

		require.Equal(t, typeid.None, shared.Type())
		require.Zero(t, shared.Readers())
		require.False(t, shared.Writing())
		require.Nil(t, shared.Value())
	})
}
