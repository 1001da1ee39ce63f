package domain

import (
	"time"

	"github.com/barberhub/booking-service/pkg/types"
)

// Weekday день недели в хранимой конвенции: 0 = понедельник ... 6 = воскресенье.
// Конвенция сквозная: она же используется в working_hours.day_of_week и в
// расчёте слотов — менять в одном месте недостаточно
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek количество правил в полной рабочей неделе
const DaysPerWeek = 7

// WeekdayFromTime конвертирует time.Weekday (Sunday=0) в хранимую конвенцию (Monday=0)
func WeekdayFromTime(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// IsValid проверяет, что значение попадает в диапазон 0..6
func (w Weekday) IsValid() bool {
	return w >= Monday && w <= Sunday
}

// WorkingHoursRule правило рабочих часов мастера на один день недели.
// Для каждой пары (provider_id, day_of_week) существует не более одной записи.
// Если записи нет или IsWorking=false — мастер в этот день не принимает
type WorkingHoursRule struct {
	ID         int64
	ProviderID int64
	DayOfWeek  Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
	IsWorking  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
