package get_customer_bookings

import (
	"errors"
	"net/http"

	"github.com/barberhub/booking-service/internal/api/handlers"
	"github.com/barberhub/booking-service/internal/api/middleware"
	"github.com/barberhub/booking-service/internal/service/bookings"
	"github.com/barberhub/booking-service/internal/service/bookings/models"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidStatus    = "некорректный статус бронирования"
	msgCustomerNotFound = "клиент не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/me/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/me/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	// Формируем запрос к сервису
	serviceReq := &models.GetCustomerBookingsRequest{
		CustomerID: userID,
		Status:     statusPtr,
	}

	// Получаем бронирования клиента
	result, err := h.service.GetCustomerBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /customers/me/bookings - Invalid status: customer_id=%d, status=%s", userID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrCustomerNotFound):
			h.logger.Warn("GET /customers/me/bookings - Customer not found: customer_id=%d", userID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		default:
			h.logger.Error("GET /customers/me/bookings - Failed to get bookings: customer_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/me/bookings - Bookings retrieved successfully: customer_id=%d, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
