package get_available_slots

import (
	"time"

	"github.com/barberhub/booking-service/internal/domain"
	"github.com/barberhub/booking-service/pkg/timeops"
)

// buildSlots генерирует кандидатные слоты по правилу рабочих часов и размечает
// их доступность по активным бронированиям дня. Слот недоступен, если его
// полуинтервал [start, end) пересекается хотя бы с одним бронированием либо
// если его начало уже в прошлом (для сегодняшней даты)
func buildSlots(
	rule *domain.WorkingHoursRule,
	durationMinutes int,
	stepMinutes int,
	date time.Time,
	now time.Time,
	bookings []*domain.Booking,
) ([]Slot, error) {
	starts, err := timeops.SlotStarts(rule.StartTime, rule.EndTime, durationMinutes, stepMinutes)
	if err != nil {
		return nil, err
	}

	isToday := timeops.SameDay(date, now)

	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		startAt, err := timeops.At(date, start)
		if err != nil {
			return nil, err
		}
		endAt := startAt.Add(time.Duration(durationMinutes) * time.Minute)

		available := true

		// Слоты сегодняшнего дня, начало которых уже прошло, занять нельзя
		if isToday && startAt.Before(now) {
			available = false
		}

		if available {
			for _, booking := range bookings {
				if timeops.IntervalsOverlap(startAt, endAt, booking.StartTime, booking.EndTime) {
					available = false
					break
				}
			}
		}

		slots = append(slots, Slot{
			StartTime: startAt,
			EndTime:   endAt,
			Available: available,
		})
	}

	return slots, nil
}

func dayBoundsOf(date time.Time) (time.Time, time.Time) {
	return timeops.DayBounds(date)
}

func isDateInPast(date time.Time, now time.Time) bool {
	dayStart, _ := timeops.DayBounds(now)
	return date.Before(dayStart) && !timeops.SameDay(date, now)
}
