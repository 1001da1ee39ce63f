package get_available_slots

import (
	"time"
)

// Request входные данные для получения доступных слотов
type Request struct {
	ProviderID int64     // ID мастера
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата, на которую запрашиваются слоты
}

// Slot слот в сетке дня: полуинтервал [StartTime, EndTime) и признак доступности
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
}

// Response результат расчёта доступности на дату
type Response struct {
	Date            time.Time
	ProviderID      int64
	ProviderName    string
	ServiceID       int64
	ServiceName     string
	DurationMinutes int
	Slots           []Slot
}

// AvailableTimes возвращает только доступные времена начала.
// Производное представление для клиентов, которым не нужна полная сетка
func (r *Response) AvailableTimes() []time.Time {
	times := make([]time.Time, 0, len(r.Slots))
	for _, slot := range r.Slots {
		if slot.Available {
			times = append(times, slot.StartTime)
		}
	}
	return times
}
