package get_provider_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/barberhub/booking-service/internal/domain"
	"github.com/barberhub/booking-service/internal/service/bookings/models"
	"github.com/barberhub/booking-service/pkg/timeops"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	providerID int64,
	requesterID int64,
	statusStr string,
	dateStr string,
	includeInactiveStr string,
) (*models.GetProviderBookingsRequest, error) {
	req := &models.GetProviderBookingsRequest{
		RequesterID:     requesterID,
		ProviderID:      providerID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим date если указана: период - границы календарного дня
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		dayStart, dayEnd := timeops.DayBounds(date.UTC())
		req.StartDate = &dayStart
		req.EndDate = &dayEnd
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
