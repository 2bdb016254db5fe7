package courier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/core/domain/model/courier"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/pkg/errs"
)

func TestNewCourier(t *testing.T) {
	id := kernel.NewUUID()
	tenantID := kernel.NewUUID()
	pos, err := kernel.NewGeoPoint(34.70, 10.70)
	require.NoError(t, err)

	t.Run("valid courier", func(t *testing.T) {
		c, err := courier.NewCourier(id, tenantID, "Amira", &pos, 2)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, id.IsEqual(c.ID()))
		assert.True(t, tenantID.IsEqual(c.TenantID()))
		assert.Equal(t, "Amira", c.Name())
		require.NotNil(t, c.Position())
		assert.True(t, pos.IsEqual(*c.Position()))
		assert.Equal(t, 2, c.ActiveOrders())
	})

	t.Run("nil position is allowed", func(t *testing.T) {
		c, err := courier.NewCourier(id, tenantID, "Amira", nil, 0)

		require.NoError(t, err)
		assert.Nil(t, c.Position())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := courier.NewCourier(id, tenantID, "", &pos, 0)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("negative active orders", func(t *testing.T) {
		_, err := courier.NewCourier(id, tenantID, "Amira", &pos, -1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.UUID{}, tenantID, "Amira", &pos, 0)
		require.Error(t, err)
	})

	t.Run("zero struct fails Validate", func(t *testing.T) {
		var c courier.Courier
		require.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})
}

func TestCourierIsEqual(t *testing.T) {
	id := kernel.NewUUID()
	tenantID := kernel.NewUUID()

	a, err := courier.NewCourier(id, tenantID, "A", nil, 0)
	require.NoError(t, err)
	b, err := courier.NewCourier(id, tenantID, "B", nil, 3)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(nil))
}
