package cell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShared_Borrow(t *testing.T) {
	t.Run("multiple read views", func(t *testing.T) {
		shared := NewShared(Location{X: 1, Y: 2})

		first, ok := Borrow[Location](shared)
		require.True(t, ok)

		second, ok := Borrow[Location](shared)
		require.True(t, ok)

		require.Equal(t, 2, shared.Readers())
		require.Equal(t, first.Get(), second.Get())

		first.Release()
		second.Release()

		require.Zero(t, shared.Readers())
	})

	t.Run("write view is visible to later reads", func(t *testing.T) {
		shared := NewShared(Size{Value: 1})

		ref, ok := BorrowMut[Size](shared)
		require.True(t, ok)
		require.True(t, shared.Writing())

		ref.Get().Value = 2
		ref.Release()

		require.False(t, shared.Writing())

		read, _ := Borrow[Size](shared)
		defer read.Release()

		require.Equal(t, Size{Value: 2}, read.Get())
	})

	t.Run("set replaces the value", func(t *testing.T) {
		shared := NewShared(Size{Value: 1})

		ref, _ := BorrowMut[Size](shared)
		ref.Set(Size{Value: 7})
		ref.Release()

		require.Equal(t, Size{Value: 7}, shared.Value())
	})

	t.Run("wrong type is absent", func(t *testing.T) {
		shared := NewShared(Size{Value: 1})

		_, ok := Borrow[Location](shared)
		require.False(t, ok)

		_, ok = BorrowMut[Location](shared)
		require.False(t, ok)

		require.Zero(t, shared.Readers())
		require.False(t, shared.Writing())
	})
}

func TestShared_Conflicts(t *testing.T) {
	t.Run("write while reading", func(t *testing.T) {
		shared := NewShared(Size{Value: 1})

		read, _ := Borrow[Size](shared)

		_, err := TryBorrowMut[Size](shared)
		require.ErrorIs(t, err, ErrAlreadyBorrowed)

		var borrowErr *BorrowError
		require.True(t, errors.As(err, &borrowErr))
		require.Equal(t, Write, borrowErr.Mode)
		require.Equal(t, 1, borrowErr.Readers)

		// the failed attempt does not change the state
		require.Equal(t, 1, shared.Readers())
		require.False(t, shared.Writing())

		read.Release()

		write, err := TryBorrowMut[Size](shared)
		require.NoError(t, err)
		write.Release()
	})

	t.Run("read while writing", func(t *testing.T) {
		shared := NewShared(Size{Value: 1})

		write, _ := BorrowMut[Size](shared)
		defer write.Release()

		_, err := TryBorrow[Size](shared)
		require.ErrorIs(t, err, ErrAlreadyMutablyBorrowed)
	})

	t.Run("write while writing", func(t *testing.T) {
		shared := NewShared(Size{Value: 1})

		write, _ := BorrowMut[Size](shared)
		defer write.Release()

		_, err := TryBorrowMut[Size](shared)
		require.ErrorIs(t, err, ErrAlreadyMutablyBorrowed)
	})

	t.Run("conflicting borrow panics", func(t *testing.T) {
		shared := NewShared(Size{Value: 1})

		read, _ := Borrow[Size](shared)
		defer read.Release()

		require.PanicsWithError(t, "cell: cannot take write view of cell.Size: 1 read views outstanding", func() {
			BorrowMut[Size](shared)
		})
	})

	t.Run("value panics while writing", func(t *testing.T) {
		shared := NewShared(Size{Value: 1})

		write, _ := BorrowMut[Size](shared)
		defer write.Release()

		require.Panics(t, func() { shared.Value() })
	})

	t.Run("type mismatch", func(t *testing.T) {
		shared := NewShared(Size{Value: 1})

		_, err := TryBorrow[Location](shared)
		require.ErrorIs(t, err, ErrTypeMismatch)
		require.EqualError(t, err, "cell: holds cell.Size, not cell.Location")

		_, err = TryBorrowMut[Meters](shared)
		require.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("different cells never conflict", func(t *testing.T) {
		a := NewShared(Size{Value: 1})
		b := NewShared(Size{Value: 2})

		read, _ := Borrow[Size](a)
		defer read.Release()

		write, ok := BorrowMut[Size](b)
		require.True(t, ok)
		write.Release()
	})
}

func TestShared_Release(t *testing.T) {
	t.Run("release is idempotent", func(t *testing.T) {
		shared := NewShared(Size{Value: 1})

		first, _ := Borrow[Size](shared)
		second, _ := Borrow[Size](shared)

		first.Release()
		first.Release()

		require.Equal(t, 1, shared.Readers())
		second.Release()
		require.Zero(t, shared.Readers())

		write, _ := BorrowMut[Size](shared)
		write.Release()
		write.Release()
		require.False(t, shared.Writing())
	})

	t.Run("use after release panics", func(t *testing.T) {
		shared := NewShared(Size{Value: 1})

		read, _ := Borrow[Size](shared)
		read.Release()
		require.Panics(t, func() { read.Get() })

		write, _ := BorrowMut[Size](shared)
		write.Release()
		require.Panics(t, func() { write.Get() })
	})
}
