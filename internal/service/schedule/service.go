package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberhub/booking-service/internal/domain"
	identityClient "github.com/barberhub/booking-service/internal/integrations/identityservice"
	"github.com/barberhub/booking-service/internal/service/schedule/models"
	"github.com/barberhub/booking-service/pkg/types"
)

// Service сервис для работы с недельным расписанием мастера
type Service struct {
	scheduleRepo   ScheduleRepository
	identityClient IdentityServiceClient
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:   scheduleRepo,
		identityClient: identityClient,
		txManager:      txManager,
		logger:         logger,
	}
}

// GetWeek получает недельное расписание мастера.
// Публичный метод - клиенты смотрят расписание перед бронированием
func (s *Service) GetWeek(ctx context.Context, providerID int64) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: fetching schedule for provider=%d", providerID)

	if err := s.checkProviderExists(ctx, providerID, "GetWeek"); err != nil {
		return nil, err
	}

	rules, err := s.scheduleRepo.GetWeek(ctx, providerID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWeek: successfully fetched %d rules for provider=%d", len(rules), providerID)
	return models.FromDomainWeek(providerID, rules), nil
}

// ReplaceWeek полностью заменяет недельное расписание мастера.
// Удаление старых правил и вставка новых идут в одной транзакции,
// поэтому читатели никогда не видят частично заменённую неделю.
// Доступно только самому мастеру
func (s *Service) ReplaceWeek(ctx context.Context, req *models.ReplaceWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("ReplaceWeek: replacing schedule for provider=%d by user=%d", req.ProviderID, req.RequesterID)

	// Расписание меняет только сам мастер
	if req.RequesterID != req.ProviderID {
		s.logger.Warn("ReplaceWeek: access denied for user=%d to provider=%d schedule", req.RequesterID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	if err := validateWeek(req.Rules); err != nil {
		s.logger.Warn("ReplaceWeek: validation failed for provider=%d: %v", req.ProviderID, err)
		return nil, err
	}

	if err := s.checkProviderExists(ctx, req.ProviderID, "ReplaceWeek"); err != nil {
		return nil, err
	}

	rules := req.ToDomainRules()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceWeek(txCtx, req.ProviderID, rules)
	})
	if err != nil {
		s.logger.Error("ReplaceWeek: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ReplaceWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeek: successfully replaced schedule for provider=%d", req.ProviderID)
	return models.FromDomainWeek(req.ProviderID, rules), nil
}

// Вспомогательные методы

// checkProviderExists проверяет, что мастер существует и активен
func (s *Service) checkProviderExists(ctx context.Context, providerID int64, op string) error {
	provider, err := s.identityClient.GetProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, identityClient.ErrProviderNotFound) {
			s.logger.Warn("%s: provider id=%d not found", op, providerID)
			return ErrProviderNotFound
		}
		s.logger.Error("%s: failed to get provider id=%d: %v", op, providerID, err)
		return fmt.Errorf("%w: %s - failed to get provider: %v", ErrInternal, op, err)
	}

	if !provider.IsActiveProvider {
		s.logger.Warn("%s: user id=%d is not an active provider", op, providerID)
		return ErrProviderNotFound
	}

	return nil
}

// validateWeek проверяет, что неделя задана полностью: ровно 7 правил,
// каждый день ровно один раз, у рабочих дней валидный интервал start < end
func validateWeek(rules []models.RuleInput) error {
	if len(rules) != domain.DaysPerWeek {
		return fmt.Errorf("%w: expected %d rules, got %d", ErrInvalidInput, domain.DaysPerWeek, len(rules))
	}

	seen := make(map[int]bool, domain.DaysPerWeek)
	for _, rule := range rules {
		day := domain.Weekday(rule.DayOfWeek)
		if !day.IsValid() {
			return fmt.Errorf("%w: invalid day of week %d", ErrInvalidInput, rule.DayOfWeek)
		}
		if seen[rule.DayOfWeek] {
			return fmt.Errorf("%w: duplicate day of week %d", ErrInvalidInput, rule.DayOfWeek)
		}
		seen[rule.DayOfWeek] = true

		if !rule.IsWorking {
			continue
		}

		start := types.TimeString(rule.StartTime)
		end := types.TimeString(rule.EndTime)

		if err := start.Validate(); err != nil {
			return fmt.Errorf("%w: invalid start time for day %d: %v", ErrInvalidInput, rule.DayOfWeek, err)
		}
		if err := end.Validate(); err != nil {
			return fmt.Errorf("%w: invalid end time for day %d: %v", ErrInvalidInput, rule.DayOfWeek, err)
		}
		if !start.IsBefore(end) {
			return fmt.Errorf("%w: start time must be before end time for day %d", ErrInvalidInput, rule.DayOfWeek)
		}
	}

	return nil
}
