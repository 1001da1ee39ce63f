package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberhub/booking-service/internal/domain"
	scheduleRepo "github.com/barberhub/booking-service/internal/infra/storage/schedule"
	catalogClient "github.com/barberhub/booking-service/internal/integrations/catalogservice"
	identityClient "github.com/barberhub/booking-service/internal/integrations/identityservice"
)

// Policy политика генерации слотов, передаётся при конструировании
// (никакого глобального состояния — тесты варьируют политику локально)
type Policy struct {
	SlotStepMinutes    int // Шаг кандидатных времён начала
	AdvanceBookingDays int // 0 = без ограничения глубины бронирования
}

// UseCase use case для получения доступных слотов для бронирования.
// Единственная точка расчёта доступности: все обработчики обязаны ходить
// сюда, а не повторять интервальную арифметику локально
type UseCase struct {
	bookingRepo    BookingRepository
	scheduleRepo   ScheduleRepository
	identityClient IdentityServiceClient
	catalogClient  CatalogServiceClient
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
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		scheduleRepo:   scheduleRepo,
		identityClient: identityClient,
		catalogClient:  catalogClient,
		policy:         policy,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Путь чтения без блокировок: допускается слегка устаревший снимок бронирований,
// потому что создание бронирования перепроверяет конфликт атомарно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, service=%d, date=%s",
		req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время (UTC, как и все расчёты расписания)
	now := uc.timeProvider.Now().UTC()

	// 3. Получаем услугу — длительность задаёт размер слота
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := validateServiceDuration(service); err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d has invalid duration %d", req.ServiceID, service.DurationMinutes)
		return nil, err
	}

	// 4. Получаем мастера — должен существовать и быть активным
	provider, err := uc.identityClient.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, identityClient.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	if !provider.IsActiveProvider {
		uc.logger.Warn("GetAvailableSlots: user id=%d is not an active provider", req.ProviderID)
		return nil, ErrProviderNotFound
	}

	// 5. Валидация даты с учетом политики глубины бронирования
	if err := validateDate(req.Date, now, uc.policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	emptyResponse := &Response{
		Date:            req.Date,
		ProviderID:      provider.ID,
		ProviderName:    provider.DisplayName,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           []Slot{},
	}

	// Дата целиком в прошлом — пустой результат, не ошибка
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 6. Получаем правило рабочих часов на день недели (Monday=0)
	rule, err := uc.scheduleRepo.GetRule(ctx, req.ProviderID, domain.WeekdayFromTime(req.Date))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrRuleNotFound) {
			// Правила нет — мастер в этот день не принимает; это валидный пустой результат
			uc.logger.Info("GetAvailableSlots: provider id=%d has no rule for %s", req.ProviderID, req.Date.Format(domain.DateFormat))
			return emptyResponse, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get working hours rule: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours rule: %v", ErrInternal, err)
	}

	if !rule.IsWorking {
		uc.logger.Info("GetAvailableSlots: provider id=%d does not work on %s", req.ProviderID, req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 7. Загружаем активные бронирования мастера на эту дату
	bookings, err := uc.loadDayBookings(ctx, req)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Генерируем кандидатные слоты и размечаем доступность
	slots, err := buildSlots(rule, service.DurationMinutes, uc.policy.SlotStepMinutes, req.Date, now, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for provider=%d, service=%d, date=%s",
		len(slots), req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	response := *emptyResponse
	response.Slots = slots
	return &response, nil
}

// loadDayBookings загружает активные бронирования мастера, попадающие по start_time
// в границы календарного дня запроса. Это грубый префильтр — точную проверку
// пересечения делает buildSlots
func (uc *UseCase) loadDayBookings(ctx context.Context, req *Request) ([]*domain.Booking, error) {
	dayStart, dayEnd := dayBoundsOf(req.Date)

	filter := domain.ProviderBookingsFilter{
		ProviderID:      req.ProviderID,
		StartDate:       &dayStart,
		EndDate:         &dayEnd,
		IncludeInactive: false, // Только активные бронирования
	}

	return uc.bookingRepo.GetByProviderWithFilter(ctx, filter)
}
