package database

import (
	"context"
	"testing"
	"time"

	"parkhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSlotUnique(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestSlot(t, db, "U-01")

	dup := &models.ParkingSlot{
		SlotNumber: "U-01",
		Type:       models.SlotTypeCompact,
		Status:     models.SlotStatusAvailable,
	}
	err := db.CreateSlot(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateSlot)
}

func TestListSlotsFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	slots := []*models.ParkingSlot{
		{SlotNumber: "F1-01", Floor: "1", Type: models.SlotTypeStandard, Status: models.SlotStatusAvailable},
		{SlotNumber: "F1-02", Floor: "1", Type: models.SlotTypeElectric, Status: models.SlotStatusMaintenance},
		{SlotNumber: "F2-01", Floor: "2", Type: models.SlotTypeStandard, Status: models.SlotStatusAvailable},
	}
	for _, s := range slots {
		require.NoError(t, db.CreateSlot(ctx, s))
	}

	t.Run("by floor", func(t *testing.T) {
		list, err := db.ListSlots(ctx, models.SlotFilter{Floor: "1"})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("by type", func(t *testing.T) {
		list, err := db.ListSlots(ctx, models.SlotFilter{Type: models.SlotTypeElectric})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "F1-02", list[0].SlotNumber)
	})

	t.Run("by status", func(t *testing.T) {
		list, err := db.ListSlots(ctx, models.SlotFilter{Status: models.SlotStatusMaintenance})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("newest first", func(t *testing.T) {
		list, err := db.ListSlots(ctx, models.SlotFilter{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.GreaterOrEqual(t, list[0].ID, list[1].ID)
	})
}

func TestUpdateSlot(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	slot := createTestSlot(t, db, "M-01")
	other := createTestSlot(t, db, "M-02")

	t.Run("partial update", func(t *testing.T) {
		status := models.SlotStatusMaintenance
		require.NoError(t, db.UpdateSlot(ctx, slot.ID, models.SlotUpdate{Status: &status}))

		got, err := db.GetSlot(ctx, slot.ID)
		require.NoError(t, err)
		assert.Equal(t, models.SlotStatusMaintenance, got.Status)
		assert.Equal(t, "M-01", got.SlotNumber, "unset fields stay untouched")
	})

	t.Run("renumber collision", func(t *testing.T) {
		number := "M-01"
		err := db.UpdateSlot(ctx, other.ID, models.SlotUpdate{SlotNumber: &number})
		assert.ErrorIs(t, err, ErrDuplicateSlot)
	})

	t.Run("missing slot", func(t *testing.T) {
		floor := "3"
		err := db.UpdateSlot(ctx, 9999, models.SlotUpdate{Floor: &floor})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteSlot(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	vehicle := createTestVehicle(t, db, 1, "GG123HH")

	t.Run("blocked by live reservation", func(t *testing.T) {
		slot := createTestSlot(t, db, "DEL-01")
		start := time.Now().UTC().Add(time.Hour)
		res := testReservation(1, slot.ID, vehicle.ID, start, start.Add(time.Hour))
		require.NoError(t, db.CreateReservationWithLock(ctx, res))

		err := db.DeleteSlot(ctx, slot.ID)
		assert.ErrorIs(t, err, ErrSlotInUse)
	})

	t.Run("allowed once reservations are terminal", func(t *testing.T) {
		slot := createTestSlot(t, db, "DEL-02")
		start := time.Now().UTC().Add(time.Hour)
		res := testReservation(1, slot.ID, vehicle.ID, start, start.Add(time.Hour))
		require.NoError(t, db.CreateReservationWithLock(ctx, res))
		require.NoError(t, db.UpdateReservationStatusGuarded(ctx, res.ID, models.StatusPending, models.StatusCancelled))

		require.NoError(t, db.DeleteSlot(ctx, slot.ID))

		_, err := db.GetSlot(ctx, slot.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing slot", func(t *testing.T) {
		err := db.DeleteSlot(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSlotOccupancyDerived(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	slot := createTestSlot(t, db, "OCC-01")
	vehicle := createTestVehicle(t, db, 1, "HH456JJ")

	start := time.Now().UTC().Add(-30 * time.Minute)
	res := testReservation(1, slot.ID, vehicle.ID, start, start.Add(time.Hour))
	require.NoError(t, db.CreateReservationWithLock(ctx, res))

	// Pending does not count as occupied.
	got, err := db.GetSlot(ctx, slot.ID)
	require.NoError(t, err)
	assert.False(t, got.Occupied)

	require.NoError(t, db.UpdateReservationStatusGuarded(ctx, res.ID, models.StatusPending, models.StatusActive))

	got, err = db.GetSlot(ctx, slot.ID)
	require.NoError(t, err)
	assert.True(t, got.Occupied)
	assert.Equal(t, models.SlotStatusAvailable, got.Status, "stored status stays administrative")
}
