package create_booking

import (
	"fmt"
	"time"

	"github.com/barberhub/booking-service/internal/domain"
	"github.com/barberhub/booking-service/internal/integrations/catalogservice"
	"github.com/barberhub/booking-service/pkg/timeops"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customer_id must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: provider_id must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: start_time is required", ErrInvalidInput)
	}

	return nil
}

// validateServiceDuration проверяет доменные границы длительности услуги
func validateServiceDuration(service *catalogservice.Service) error {
	if service.DurationMinutes < domain.MinServiceDurationMinutes ||
		service.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: service duration %d minutes is out of range [%d, %d]",
			ErrInvalidInput, service.DurationMinutes,
			domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	return nil
}

// validateStartTime проверяет, что время начала строго в будущем (с учетом
// минимального запаса) и не выходит за горизонт бронирования
func validateStartTime(startTime, now time.Time, policy Policy) error {
	minAllowed := now.Add(time.Duration(policy.MinBookingNoticeMinutes) * time.Minute)

	// Строгое неравенство: бронирование ровно на "сейчас" тоже отклоняется
	if !startTime.After(minAllowed) {
		if policy.MinBookingNoticeMinutes > 0 {
			return fmt.Errorf("%w: must book at least %d minutes in advance",
				ErrInvalidTime, policy.MinBookingNoticeMinutes)
		}
		return fmt.Errorf("%w: start time must be in the future", ErrInvalidTime)
	}

	if policy.AdvanceBookingDays > 0 {
		dayStart, _ := timeops.DayBounds(now)
		horizon := dayStart.AddDate(0, 0, policy.AdvanceBookingDays)
		if !startTime.Before(horizon) {
			return fmt.Errorf("%w: can only book %d days in advance",
				ErrDateTooFarInFuture, policy.AdvanceBookingDays)
		}
	}

	return nil
}
