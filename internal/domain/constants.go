package domain

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxCustomerNameLength     = 200
	MaxCustomerPhoneLength    = 32
)

// AnonymousCustomerName подставляется в снимок клиента, если в профиле нет имени
const AnonymousCustomerName = "Anonymous"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие время в расписании мастера.
// Используются при проверке конфликтов и расчёте доступных слотов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses терминальные статусы, не занимающие время в расписании
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusRejected,
}
