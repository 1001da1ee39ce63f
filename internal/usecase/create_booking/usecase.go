package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barberhub/booking-service/internal/domain"
	scheduleRepo "github.com/barberhub/booking-service/internal/infra/storage/schedule"
	catalogClient "github.com/barberhub/booking-service/internal/integrations/catalogservice"
	identityClient "github.com/barberhub/booking-service/internal/integrations/identityservice"
	"github.com/barberhub/booking-service/pkg/timeops"
)

// Policy политика допуска бронирований, передаётся при конструировании
type Policy struct {
	AdvanceBookingDays      int // 0 = без ограничения глубины бронирования
	MinBookingNoticeMinutes int // Минимальный запас до начала, 0 = достаточно строго будущего времени
}

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	scheduleRepo   ScheduleRepository
	identityClient IdentityServiceClient
	catalogClient  CatalogServiceClient
	txManager      TransactionManager
	policy         Policy
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	identityClient IdentityServiceClient,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		scheduleRepo:   scheduleRepo,
		identityClient: identityClient,
		catalogClient:  catalogClient,
		txManager:      txManager,
		policy:         policy,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликта и вставка идут в одной сериализуемой транзакции,
// поэтому два конкурентных запроса на один слот не могут пройти оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, provider=%d, service=%d, start=%s",
		req.CustomerID, req.ProviderID, req.ServiceID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время (все расчёты в UTC)
	now := uc.timeProvider.Now().UTC()
	startTime := req.StartTime.UTC()

	// 3. Получаем услугу — она задаёт длительность и снимок цены
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Услуга должна принадлежать указанному мастеру
	if service.ProviderID != req.ProviderID {
		uc.logger.Warn("CreateBooking: service id=%d belongs to provider id=%d, not id=%d",
			req.ServiceID, service.ProviderID, req.ProviderID)
		return nil, ErrServiceNotFound
	}

	if err := validateServiceDuration(service); err != nil {
		uc.logger.Warn("CreateBooking: service id=%d has invalid duration %d", req.ServiceID, service.DurationMinutes)
		return nil, err
	}

	// 5. Получаем мастера — должен существовать и быть активным
	provider, err := uc.identityClient.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, identityClient.ErrProviderNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	if !provider.IsActiveProvider {
		uc.logger.Warn("CreateBooking: user id=%d is not an active provider", req.ProviderID)
		return nil, ErrProviderNotFound
	}

	// 6. Получаем клиента — его данные фиксируются снимком в бронировании
	customer, err := uc.identityClient.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, identityClient.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 7. Валидация времени начала: строго в будущем с учетом запаса и горизонта
	if err := validateStartTime(startTime, now, uc.policy); err != nil {
		uc.logger.Warn("CreateBooking: start time validation failed: %v", err)
		return nil, err
	}

	// EndTime фиксируется здесь и больше не пересчитывается
	endTime := startTime.Add(time.Duration(service.DurationMinutes) * time.Minute)

	var result *domain.Booking

	// 8. Проверка конфликта и вставка — в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Слот должен целиком помещаться в рабочие часы дня
		rule, err := uc.scheduleRepo.GetRule(txCtx, req.ProviderID, domain.WeekdayFromTime(startTime))
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrRuleNotFound) {
				uc.logger.Warn("CreateBooking: provider id=%d has no working hours on %s",
					req.ProviderID, startTime.Format(domain.DateFormat))
				return ErrOutsideWorkingHours
			}
			uc.logger.Error("CreateBooking: failed to get working hours rule: %v", err)
			return fmt.Errorf("%w: failed to get working hours rule: %v", ErrInternal, err)
		}

		if err := validateWithinWorkingHours(startTime, endTime, rule); err != nil {
			uc.logger.Warn("CreateBooking: slot [%s, %s) outside working hours [%s, %s)",
				startTime.Format(time.RFC3339), endTime.Format(time.RFC3339), rule.StartTime, rule.EndTime)
			return err
		}

		// 8.2. Ищем активные бронирования, пересекающиеся с [start, end).
		// Внутри транзакции запрос захватывает строки FOR UPDATE
		overlapping, err := uc.bookingRepo.FindActiveOverlapping(txCtx, req.ProviderID, startTime, endTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to find overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to find overlapping bookings: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot conflict, booking id=%d occupies [%s, %s)",
				overlapping[0].ID, overlapping[0].StartTime.Format(time.RFC3339), overlapping[0].EndTime.Format(time.RFC3339))
			return ErrSlotConflict
		}

		// 8.3. Создаем бронирование со снимком данных клиента и услуги
		booking := &domain.Booking{
			ProviderID:    req.ProviderID,
			ServiceID:     req.ServiceID,
			CustomerID:    req.CustomerID,
			CustomerEmail: customer.Email,
			CustomerName:  customerName(customer),
			CustomerPhone: customer.Phone,
			StartTime:     startTime,
			EndTime:       endTime,
			Status:        domain.StatusConfirmed,
			ServiceName:   service.Name,
			ServicePrice:  service.Price,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return toResponse(result), nil
}

// customerName возвращает имя клиента для снимка.
// Если профиль не заполнен, используется плейсхолдер
func customerName(customer *identityClient.Customer) string {
	if name := customer.DisplayName(); name != "" {
		return name
	}
	return domain.AnonymousCustomerName
}

// validateWithinWorkingHours проверяет, что полуинтервал [start, end) целиком
// помещается в рабочие часы правила
func validateWithinWorkingHours(startTime, endTime time.Time, rule *domain.WorkingHoursRule) error {
	if !rule.IsWorking {
		return ErrOutsideWorkingHours
	}

	workStart, err := timeops.At(startTime, rule.StartTime)
	if err != nil {
		return fmt.Errorf("%w: invalid rule start time: %v", ErrInternal, err)
	}

	workEnd, err := timeops.At(startTime, rule.EndTime)
	if err != nil {
		return fmt.Errorf("%w: invalid rule end time: %v", ErrInternal, err)
	}

	if startTime.Before(workStart) || endTime.After(workEnd) {
		return ErrOutsideWorkingHours
	}

	return nil
}
