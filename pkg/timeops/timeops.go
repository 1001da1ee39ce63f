// Package timeops содержит чистую интервальную арифметику для расчёта слотов.
// Все функции детерминированы и не имеют побочных эффектов; генерация слотов
// и проверка пересечений во всех usecase должны идти только через этот пакет,
// чтобы разные обработчики не расходились в логике доступности.
package timeops

import (
	"fmt"
	"time"

	"github.com/barberhub/booking-service/pkg/types"
)

// SlotStarts генерирует все кандидатные времена начала слота в рабочем интервале.
// Возвращает каждое время t, для которого workStart <= t и t + duration <= workEnd,
// с шагом stepMinutes от workStart.
//
// Длительность не обязана быть кратной шагу: слоты — это кандидатные точки начала,
// а не разбиение интервала. Последний кандидат, конец которого выходит за workEnd,
// отбрасывается, а не обрезается.
func SlotStarts(workStart, workEnd types.TimeString, durationMinutes, stepMinutes int) ([]types.TimeString, error) {
	if durationMinutes <= 0 || stepMinutes <= 0 {
		return []types.TimeString{}, nil
	}

	startMin, err := workStart.Minutes()
	if err != nil {
		return nil, err
	}
	endMin, err := workEnd.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0)
	for cur := startMin; cur+durationMinutes <= endMin; cur += stepMinutes {
		slots = append(slots, minutesToTimeString(cur))
	}

	return slots, nil
}

// IntervalsOverlap проверяет пересечение двух полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd).
// Интервал, который заканчивается ровно в момент начала другого, НЕ пересекается с ним —
// это позволяет бронировать слоты встык.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// At комбинирует календарную дату и время "HH:MM" в полный timestamp в UTC.
// Все расчёты доступности и конфликтов ведутся в UTC; локальное время остаётся
// на границе API (спорные сравнения naive/aware исключены по построению).
func At(date time.Time, t types.TimeString) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute), nil
}

// DayBounds возвращает границы календарного дня [startOfDay, endOfDay) в UTC
func DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// SameDay проверяет, что две даты относятся к одному календарному дню (в UTC)
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func minutesToTimeString(minutes int) types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}
