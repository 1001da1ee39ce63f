package create_booking

import (
	"time"

	"github.com/barberhub/booking-service/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64     // ID клиента (из заголовка аутентификации)
	ProviderID int64     // ID мастера
	ServiceID  int64     // ID услуги
	StartTime  time.Time // Время начала слота (UTC)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	ProviderID int64
	ServiceID  int64
	CustomerID int64

	// Снимок данных клиента
	CustomerEmail string
	CustomerName  string
	CustomerPhone *string

	StartTime time.Time
	EndTime   time.Time
	Status    string

	// Снимок данных услуги
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(booking *domain.Booking) *Response {
	return &Response{
		ID:            booking.ID,
		ProviderID:    booking.ProviderID,
		ServiceID:     booking.ServiceID,
		CustomerID:    booking.CustomerID,
		CustomerEmail: booking.CustomerEmail,
		CustomerName:  booking.CustomerName,
		CustomerPhone: booking.CustomerPhone,
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		Status:        string(booking.Status),
		ServiceName:   booking.ServiceName,
		ServicePrice:  booking.ServicePrice,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
}
