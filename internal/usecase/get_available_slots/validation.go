package get_available_slots

import (
	"fmt"
	"time"

	"github.com/barberhub/booking-service/internal/domain"
	"github.com/barberhub/booking-service/internal/integrations/catalogservice"
	"github.com/barberhub/booking-service/pkg/timeops"
)

// validateRequest проверяет входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: provider_id must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateServiceDuration проверяет, что длительность услуги умещается
// в допустимые доменные границы
func validateServiceDuration(service *catalogservice.Service) error {
	if service.DurationMinutes < domain.MinServiceDurationMinutes ||
		service.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: service duration %d minutes is out of range [%d, %d]",
			ErrInvalidInput, service.DurationMinutes,
			domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	return nil
}

// validateDate проверяет глубину бронирования. Прошлая дата ошибкой не считается —
// use case вернёт для неё пустой список слотов
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	if advanceBookingDays <= 0 {
		return nil
	}

	dayStart, _ := timeops.DayBounds(now)
	horizon := dayStart.AddDate(0, 0, advanceBookingDays)

	if !date.Before(horizon) {
		return fmt.Errorf("%w: date %s is more than %d days in the future",
			ErrDateTooFarInFuture, date.Format(domain.DateFormat), advanceBookingDays)
	}

	return nil
}
