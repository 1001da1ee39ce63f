package update_working_hours

import (
	"context"

	"github.com/barberhub/booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	ReplaceWeek(ctx context.Context, req *models.ReplaceWeekRequest) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
