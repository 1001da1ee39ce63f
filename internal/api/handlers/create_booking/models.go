package create_booking

import (
	"time"

	createBooking "github.com/barberhub/booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID int64  `json:"providerId"`
	ServiceID  int64  `json:"serviceId"`
	StartTime  string `json:"startTime"` // ISO 8601, например "2026-09-01T10:00:00Z"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	ProviderID    int64   `json:"providerId"`
	ServiceID     int64   `json:"serviceId"`
	CustomerID    int64   `json:"customerId"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	ServiceName   string  `json:"serviceName"`
	ServicePrice  float64 `json:"servicePrice"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID: customerID,
		ProviderID: r.ProviderID,
		ServiceID:  r.ServiceID,
		StartTime:  startTime.UTC(),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		ProviderID:    resp.ProviderID,
		ServiceID:     resp.ServiceID,
		CustomerID:    resp.CustomerID,
		CustomerEmail: resp.CustomerEmail,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
		Status:        resp.Status,
		ServiceName:   resp.ServiceName,
		ServicePrice:  resp.ServicePrice,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
