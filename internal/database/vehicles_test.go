package database

import (
	"context"
	"testing"

	"parkhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicles(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	v := createTestVehicle(t, db, 1, "AB123CD")

	t.Run("duplicate plate", func(t *testing.T) {
		dup := &models.Vehicle{OwnerID: 2, Plate: "AB123CD", Type: models.VehicleTypeCar}
		err := db.CreateVehicle(ctx, dup)
		assert.ErrorIs(t, err, ErrDuplicatePlate)
	})

	t.Run("existence check honors ownership", func(t *testing.T) {
		ok, err := db.VehicleExists(ctx, v.ID, 1)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = db.VehicleExists(ctx, v.ID, 2)
		require.NoError(t, err)
		assert.False(t, ok, "vehicle owned by someone else")

		ok, err = db.VehicleExists(ctx, 9999, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list by owner", func(t *testing.T) {
		createTestVehicle(t, db, 1, "EF456GH")
		list, err := db.ListVehiclesByOwner(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		empty, err := db.ListVehiclesByOwner(ctx, 42)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestNotificationsStore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n := &models.Notification{UserID: 7, Message: "your reservation is active", Category: models.NotifyCategoryReservation}
	require.NoError(t, db.CreateNotification(ctx, n))
	assert.NotZero(t, n.ID)

	list, err := db.ListNotificationsByUser(ctx, 7, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsRead)

	t.Run("mark read", func(t *testing.T) {
		require.NoError(t, db.MarkNotificationRead(ctx, n.ID, 7))
		list, err := db.ListNotificationsByUser(ctx, 7, 0)
		require.NoError(t, err)
		assert.True(t, list[0].IsRead)
	})

	t.Run("mark read wrong owner", func(t *testing.T) {
		err := db.MarkNotificationRead(ctx, n.ID, 8)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
