package schedule

import (
	"context"

	"github.com/barberhub/booking-service/internal/domain"
	"github.com/barberhub/booking-service/internal/integrations/identityservice"
)

// ScheduleRepository интерфейс репозитория рабочих часов
type ScheduleRepository interface {
	GetWeek(ctx context.Context, providerID int64) ([]*domain.WorkingHoursRule, error)
	ReplaceWeek(ctx context.Context, providerID int64, rules []*domain.WorkingHoursRule) error
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetProvider(ctx context.Context, providerID int64) (*identityservice.Provider, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
