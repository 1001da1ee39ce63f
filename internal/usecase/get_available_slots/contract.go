package get_available_slots

import (
	"context"
	"time"

	"github.com/barberhub/booking-service/internal/domain"
	"github.com/barberhub/booking-service/internal/integrations/catalogservice"
	"github.com/barberhub/booking-service/internal/integrations/identityservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByProviderWithFilter получает бронирования мастера по фильтру периода и статуса
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория рабочих часов
type ScheduleRepository interface {
	// GetRule получает правило рабочих часов мастера на день недели
	GetRule(ctx context.Context, providerID int64, day domain.Weekday) (*domain.WorkingHoursRule, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetProvider(ctx context.Context, providerID int64) (*identityservice.Provider, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
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
