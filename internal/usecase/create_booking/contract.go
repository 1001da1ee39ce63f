package create_booking

import (
	"context"
	"time"

	"github.com/barberhub/booking-service/internal/domain"
	"github.com/barberhub/booking-service/internal/integrations/catalogservice"
	"github.com/barberhub/booking-service/internal/integrations/identityservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindActiveOverlapping(ctx context.Context, providerID int64, start, end time.Time) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория рабочих часов
type ScheduleRepository interface {
	GetRule(ctx context.Context, providerID int64, day domain.Weekday) (*domain.WorkingHoursRule, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetProvider(ctx context.Context, providerID int64) (*identityservice.Provider, error)
	GetCustomer(ctx context.Context, customerID int64) (*identityservice.Customer, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
