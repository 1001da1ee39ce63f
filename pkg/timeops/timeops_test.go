package timeops

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/booking-service/pkg/types"
)

func TestSlotStarts_FullDay(t *testing.T) {
	// 09:00-17:00, услуга 30 минут, шаг 15 минут:
	// последний допустимый старт 16:30
	starts, err := SlotStarts(types.TimeString("09:00"), types.TimeString("17:00"), 30, 15)
	require.NoError(t, err)

	require.NotEmpty(t, starts)
	assert.Equal(t, types.TimeString("09:00"), starts[0])
	assert.Equal(t, types.TimeString("16:30"), starts[len(starts)-1])
	assert.Len(t, starts, 31)
}

func TestSlotStarts_ServiceMustFitBeforeClose(t *testing.T) {
	// 09:00-10:00, услуга 45 минут: 09:15+45 = ровно 10:00 входит,
	// 09:30+45 = 10:15 уже не входит
	starts, err := SlotStarts(types.TimeString("09:00"), types.TimeString("10:00"), 45, 15)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:15"}, starts)
}

func TestSlotStarts_ServiceLongerThanDay(t *testing.T) {
	starts, err := SlotStarts(types.TimeString("09:00"), types.TimeString("10:00"), 90, 15)
	require.NoError(t, err)

	assert.Empty(t, starts)
}

func TestSlotStarts_InvalidTimes(t *testing.T) {
	_, err := SlotStarts(types.TimeString("25:00"), types.TimeString("17:00"), 30, 15)
	assert.Error(t, err)

	_, err = SlotStarts(types.TimeString("09:00"), types.TimeString("9am"), 30, 15)
	assert.Error(t, err)
}

func TestIntervalsOverlap(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{
			name:   "частичное пересечение",
			aStart: at(10, 0), aEnd: at(10, 30),
			bStart: at(10, 15), bEnd: at(10, 45),
			expected: true,
		},
		{
			name:   "вложенный интервал",
			aStart: at(10, 0), aEnd: at(11, 0),
			bStart: at(10, 15), bEnd: at(10, 30),
			expected: true,
		},
		{
			name:   "идентичные интервалы",
			aStart: at(10, 0), aEnd: at(10, 30),
			bStart: at(10, 0), bEnd: at(10, 30),
			expected: true,
		},
		{
			name:   "смежные интервалы не пересекаются",
			aStart: at(10, 0), aEnd: at(10, 30),
			bStart: at(10, 30), bEnd: at(11, 0),
			expected: false,
		},
		{
			name:   "непересекающиеся интервалы",
			aStart: at(10, 0), aEnd: at(10, 30),
			bStart: at(12, 0), bEnd: at(12, 30),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.expected, IntervalsOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestAt(t *testing.T) {
	date := time.Date(2026, 9, 1, 15, 42, 7, 0, time.UTC)

	got, err := At(date, types.TimeString("10:30"))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC), got)
}

func TestAt_InvalidTime(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := At(date, types.TimeString("bad"))
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	date := time.Date(2026, 9, 1, 15, 42, 7, 0, time.UTC)

	start, end := DayBounds(date)

	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), end)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 9, 1, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
}
