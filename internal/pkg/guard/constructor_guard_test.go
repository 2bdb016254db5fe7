package guard_test

import (
	"errors"
	"testing"

	"smartdelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates the intended embedding pattern.
func TestConstructorGuardUsageExample(t *testing.T) {
	type quantity struct {
		value int
		guard guard.ConstructorGuard
	}

	errQuantityNotConstructed := errors.New("quantity must be created via newQuantity")

	newQuantity := func(value int) (quantity, error) {
		if value <= 0 {
			return quantity{}, errors.New("value must be positive")
		}
		return quantity{value: value, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction", func(t *testing.T) {
		q, err := newQuantity(5)

		require.NoError(t, err)
		require.NoError(t, q.guard.Validate(errQuantityNotConstructed))
		assert.Equal(t, 5, q.value)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var q quantity

		err := q.guard.Validate(errQuantityNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errQuantityNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newQuantity(0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "positive")
	})
}

func TestConstructorGuardDefaultError(t *testing.T) {
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}
