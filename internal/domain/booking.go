package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusRejected  BookingStatus = "rejected"
)

// Booking represents a customer appointment with a provider in the system
type Booking struct {
	ID         int64
	ProviderID int64
	ServiceID  int64
	CustomerID int64

	// Снимок данных клиента на момент бронирования — не зависит от дальнейших
	// изменений аккаунта
	CustomerEmail string
	CustomerName  string
	CustomerPhone *string

	// Полуоткрытый интервал [StartTime, EndTime), оба в UTC.
	// EndTime фиксируется при создании (StartTime + длительность услуги)
	// и больше не пересчитывается
	StartTime time.Time
	EndTime   time.Time

	Status BookingStatus

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies time on the provider's schedule
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no transition may leave the current status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted || b.Status == StatusRejected
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// CanTransitionTo проверяет допустимость перехода статуса.
// pending/confirmed → cancelled | completed | rejected; терминальные статусы
// переходов не имеют
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.IsTerminal() {
		return false
	}
	switch next {
	case StatusCancelled, StatusCompleted, StatusRejected:
		return true
	case StatusConfirmed:
		return b.Status == StatusPending
	default:
		return false
	}
}

// ProviderBookingsFilter фильтр для получения бронирований мастера
type ProviderBookingsFilter struct {
	ProviderID      int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые/завершённые/отклонённые
}
