package reject_booking

import (
	"context"
)

type BookingService interface {
	Reject(ctx context.Context, bookingID int64, requesterID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
