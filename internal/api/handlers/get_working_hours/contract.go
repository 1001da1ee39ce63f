package get_working_hours

import (
	"context"

	"github.com/barberhub/booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWeek(ctx context.Context, providerID int64) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
