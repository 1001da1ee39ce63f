package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberhub/booking-service/internal/domain"
	bookingRepo "github.com/barberhub/booking-service/internal/infra/storage/booking"
	identityClient "github.com/barberhub/booking-service/internal/integrations/identityservice"
	"github.com/barberhub/booking-service/internal/service/bookings/models"
)

// Service сервис для работы с жизненным циклом бронирований.
// Создание живёт в отдельном usecase с сериализуемой транзакцией;
// здесь — чтение и переходы статусов
type Service struct {
	bookingRepo    BookingRepository
	identityClient IdentityServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно только участникам бронирования: клиенту или мастеру
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, requesterID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if !isParticipant(booking, requesterID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента.
// История привязана к email из снимка, поэтому переживает смену аккаунта.
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	customer, err := s.identityClient.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, identityClient.ErrCustomerNotFound) {
			s.logger.Warn("GetCustomerBookings: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetCustomerBookings: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - failed to get customer: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetByCustomerEmail(ctx, customer.Email, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetProviderBookings получает бронирования мастера с гибкой фильтрацией.
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований.
// Доступно только самому мастеру
//
// Примеры использования:
// - Все активные бронирования: GetProviderBookings(ctx, &GetProviderBookingsRequest{ProviderID: 123, RequesterID: 123})
// - Бронирования на дату: StartDate и EndDate указывают границы дня
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetProviderBookings: fetching bookings for provider=%d, user=%d", req.ProviderID, req.RequesterID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Расписание мастера видит только он сам
	if req.RequesterID != req.ProviderID {
		s.logger.Warn("GetProviderBookings: access denied for user=%d to provider=%d bookings", req.RequesterID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: successfully fetched %d bookings for provider=%d", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование.
// Мастер отменяет по ID; клиент — по совпадению своего текущего email
// с зафиксированным в снимке, поэтому право на отмену переживает смену аккаунта
func (s *Service) Cancel(ctx context.Context, bookingID int64, requesterID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, requesterID)

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return err
	}

	allowed, err := s.canCancel(ctx, booking, requesterID)
	if err != nil {
		return err
	}
	if !allowed {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", requesterID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrAlreadyTerminal
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Complete отмечает бронирование завершённым.
// Доступно только мастеру
func (s *Service) Complete(ctx context.Context, bookingID int64, requesterID int64) error {
	s.logger.Info("Complete: completing booking id=%d by user=%d", bookingID, requesterID)
	return s.transition(ctx, bookingID, requesterID, domain.StatusCompleted, "Complete")
}

// Reject отклоняет бронирование.
// Доступно только мастеру
func (s *Service) Reject(ctx context.Context, bookingID int64, requesterID int64) error {
	s.logger.Info("Reject: rejecting booking id=%d by user=%d", bookingID, requesterID)
	return s.transition(ctx, bookingID, requesterID, domain.StatusRejected, "Reject")
}

// Вспомогательные методы

// canCancel проверяет право на отмену: мастеру достаточно совпадения ID,
// клиент сверяется по email против снимка в бронировании
func (s *Service) canCancel(ctx context.Context, booking *domain.Booking, requesterID int64) (bool, error) {
	if booking.ProviderID == requesterID {
		return true, nil
	}

	customer, err := s.identityClient.GetCustomer(ctx, requesterID)
	if err != nil {
		if errors.Is(err, identityClient.ErrCustomerNotFound) {
			return false, nil
		}
		s.logger.Error("Cancel: failed to get customer id=%d: %v", requesterID, err)
		return false, fmt.Errorf("%w: Cancel - failed to get customer: %v", ErrInternal, err)
	}

	return customer.Email == booking.CustomerEmail, nil
}

// transition выполняет переход статуса, доступный только мастеру бронирования
func (s *Service) transition(ctx context.Context, bookingID int64, requesterID int64, status domain.BookingStatus, op string) error {
	booking, err := s.getBooking(ctx, bookingID, op)
	if err != nil {
		return err
	}

	if booking.ProviderID != requesterID {
		s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, requesterID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanTransitionTo(status) {
		s.logger.Warn("%s: booking id=%d cannot transition from %s to %s", op, bookingID, booking.Status, status)
		return ErrAlreadyTerminal
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found during update", op, bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully updated booking id=%d to status=%s", op, bookingID, status)
	return nil
}

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// isParticipant проверяет, что пользователь является участником бронирования
func isParticipant(booking *domain.Booking, userID int64) bool {
	return booking.CustomerID == userID || booking.ProviderID == userID
}
