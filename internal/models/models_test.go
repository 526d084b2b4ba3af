package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	h := func(hours int) time.Time { return base.Add(time.Duration(hours) * time.Hour) }

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", h(0), h(1), h(0), h(1), true},
		{"contained", h(0), h(4), h(1), h(2), true},
		{"partial", h(0), h(2), h(1), h(3), true},
		{"touching boundary", h(0), h(1), h(1), h(2), false},
		{"touching boundary reversed", h(1), h(2), h(0), h(1), false},
		{"disjoint", h(0), h(1), h(2), h(3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1), "overlap must be symmetric")
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, IsLiveStatus(StatusPending))
	assert.True(t, IsLiveStatus(StatusActive))
	assert.False(t, IsLiveStatus(StatusRevoked))
	assert.False(t, IsLiveStatus(StatusCancelled))
	assert.False(t, IsLiveStatus(StatusCompleted))

	assert.False(t, IsTerminalStatus(StatusPending))
	assert.False(t, IsTerminalStatus(StatusActive))
	assert.True(t, IsTerminalStatus(StatusRevoked))
	assert.True(t, IsTerminalStatus(StatusCancelled))
	assert.True(t, IsTerminalStatus(StatusCompleted))
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleStaff))
	assert.True(t, ValidRole(RoleUser))
	assert.False(t, ValidRole("superuser"))

	assert.True(t, ValidSlotType(SlotTypeElectric))
	assert.False(t, ValidSlotType("hoverboard"))

	assert.True(t, ValidSlotStatus(SlotStatusMaintenance))
	assert.False(t, ValidSlotStatus("closed"))

	assert.True(t, ValidVehicleType(VehicleTypeTruck))
	assert.False(t, ValidVehicleType("bicycle"))
}
