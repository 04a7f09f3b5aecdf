package guard_test

import (
	"errors"
	"testing"

	"checkout/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("entity not constructed")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_supplied_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(errNotConstructed)

		// Then
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})

	t.Run("embedded_guard_detects_struct_literals", func(t *testing.T) {
		type quantity struct {
			value int
			guard guard.ConstructorGuard
		}
		newQuantity := func(v int) quantity {
			return quantity{value: v, guard: guard.NewConstructorGuard()}
		}

		require.NoError(t, newQuantity(3).guard.Validate(nil))
		require.Error(t, quantity{value: 3}.guard.Validate(nil))
	})
}
