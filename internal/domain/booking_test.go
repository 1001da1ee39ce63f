package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())

	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Booking{Status: StatusRejected}).IsActive())
}

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     BookingStatus
		to       BookingStatus
		expected bool
	}{
		{"pending → confirmed", StatusPending, StatusConfirmed, true},
		{"pending → cancelled", StatusPending, StatusCancelled, true},
		{"pending → rejected", StatusPending, StatusRejected, true},
		{"confirmed → completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed → cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed → confirmed", StatusConfirmed, StatusConfirmed, false},
		{"confirmed → pending", StatusConfirmed, StatusPending, false},
		{"cancelled → confirmed", StatusCancelled, StatusConfirmed, false},
		{"completed → cancelled", StatusCompleted, StatusCancelled, false},
		{"rejected → completed", StatusRejected, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.expected, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
}

func TestWeekdayFromTime(t *testing.T) {
	// 2026-08-24 — понедельник, 2026-08-30 — воскресенье
	assert.Equal(t, Monday, WeekdayFromTime(time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, Wednesday, WeekdayFromTime(time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, Sunday, WeekdayFromTime(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)))
}

func TestWeekday_IsValid(t *testing.T) {
	assert.True(t, Monday.IsValid())
	assert.True(t, Sunday.IsValid())
	assert.False(t, Weekday(-1).IsValid())
	assert.False(t, Weekday(7).IsValid())
}
