package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/booking-service/internal/domain"
	scheduleRepo "github.com/barberhub/booking-service/internal/infra/storage/schedule"
	"github.com/barberhub/booking-service/internal/integrations/catalogservice"
	"github.com/barberhub/booking-service/internal/integrations/identityservice"
	"github.com/barberhub/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (r *fakeBookingRepo) GetByProviderWithFilter(_ context.Context, _ domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.bookings, nil
}

type fakeScheduleRepo struct {
	rule *domain.WorkingHoursRule
	err  error
}

func (r *fakeScheduleRepo) GetRule(_ context.Context, _ int64, _ domain.Weekday) (*domain.WorkingHoursRule, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.rule, nil
}

type fakeIdentityClient struct {
	provider *identityservice.Provider
	err      error
}

func (c *fakeIdentityClient) GetProvider(_ context.Context, _ int64) (*identityservice.Provider, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.provider, nil
}

type fakeCatalogClient struct {
	service *catalogservice.Service
	err     error
}

func (c *fakeCatalogClient) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.service, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (*nopLogger) Info(string, ...interface{})  {}
func (*nopLogger) Warn(string, ...interface{})  {}
func (*nopLogger) Error(string, ...interface{}) {}

// Фикстуры: мастер 1 работает по вторникам 09:00-12:00, услуга 10 длится 30 минут.
// "Сейчас" — понедельник 2026-09-07 10:00 UTC, запрос на вторник 2026-09-08

var (
	testNow  = time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
)

func newTestUseCase(
	bookingRepo *fakeBookingRepo,
	scheduleRepo *fakeScheduleRepo,
	identityClient *fakeIdentityClient,
	catalogClient *fakeCatalogClient,
) *UseCase {
	uc := NewUseCase(bookingRepo, scheduleRepo, identityClient, catalogClient, Policy{
		SlotStepMinutes:    30,
		AdvanceBookingDays: 30,
	}, &nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func testProvider() *identityservice.Provider {
	return &identityservice.Provider{ID: 1, DisplayName: "Иван Петров", IsActiveProvider: true}
}

func testService() *catalogservice.Service {
	return &catalogservice.Service{ID: 10, ProviderID: 1, Name: "Стрижка", DurationMinutes: 30, Price: 1500}
}

func testRule() *domain.WorkingHoursRule {
	return &domain.WorkingHoursRule{
		ProviderID: 1,
		DayOfWeek:  domain.Tuesday,
		StartTime:  types.TimeString("09:00"),
		EndTime:    types.TimeString("12:00"),
		IsWorking:  true,
	}
}

func TestExecute_FullGrid(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: testRule()},
		&fakeIdentityClient{provider: testProvider()},
		&fakeCatalogClient{service: testService()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	// 09:00-12:00, услуга 30 минут, шаг 30: старты 09:00..11:30
	require.Len(t, resp.Slots, 6)
	assert.Equal(t, time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC), resp.Slots[0].StartTime)
	assert.Equal(t, time.Date(2026, 9, 8, 9, 30, 0, 0, time.UTC), resp.Slots[0].EndTime)
	assert.Equal(t, time.Date(2026, 9, 8, 11, 30, 0, 0, time.UTC), resp.Slots[5].StartTime)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}

	assert.Equal(t, "Иван Петров", resp.ProviderName)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecute_BookedSlotUnavailable(t *testing.T) {
	booking := &domain.Booking{
		ProviderID: 1,
		StartTime:  time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 9, 8, 10, 30, 0, 0, time.UTC),
		Status:     domain.StatusConfirmed,
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booking}},
		&fakeScheduleRepo{rule: testRule()},
		&fakeIdentityClient{provider: testProvider()},
		&fakeCatalogClient{service: testService()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 6)

	byStart := make(map[string]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		byStart[slot.StartTime.Format("15:04")] = slot.Available
	}

	// Занят ровно слот 10:00; соседние 09:30 и 10:30 не задеты (стык не конфликт)
	assert.True(t, byStart["09:30"])
	assert.False(t, byStart["10:00"])
	assert.True(t, byStart["10:30"])
}

func TestExecute_OverlappingBookingBlocksNeighbors(t *testing.T) {
	// Бронирование 10:15-10:45 не совпадает с сеткой: пересекает старты 10:00 и 10:30
	booking := &domain.Booking{
		ProviderID: 1,
		StartTime:  time.Date(2026, 9, 8, 10, 15, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 9, 8, 10, 45, 0, 0, time.UTC),
		Status:     domain.StatusPending,
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booking}},
		&fakeScheduleRepo{rule: testRule()},
		&fakeIdentityClient{provider: testProvider()},
		&fakeCatalogClient{service: testService()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	byStart := make(map[string]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		byStart[slot.StartTime.Format("15:04")] = slot.Available
	}

	assert.True(t, byStart["09:00"])
	assert.False(t, byStart["10:00"])
	assert.False(t, byStart["10:30"])
	assert.True(t, byStart["11:00"])
}

func TestExecute_NonWorkingDay(t *testing.T) {
	rule := testRule()
	rule.IsWorking = false

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: rule},
		&fakeIdentityClient{provider: testProvider()},
		&fakeCatalogClient{service: testService()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoRuleForDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{err: scheduleRepo.ErrRuleNotFound},
		&fakeIdentityClient{provider: testProvider()},
		&fakeCatalogClient{service: testService()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: testRule()},
		&fakeIdentityClient{provider: testProvider()},
		&fakeCatalogClient{service: testService()},
	)

	pastDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 1, ServiceID: 10, Date: pastDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayFiltersElapsedStarts(t *testing.T) {
	// "Сейчас" — вторник 10:10, слоты запрошены на сегодня: 09:00..10:00 уже прошли
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: testRule()},
		&fakeIdentityClient{provider: testProvider()},
		&fakeCatalogClient{service: testService()},
	)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 8, 10, 10, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 6)

	byStart := make(map[string]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		byStart[slot.StartTime.Format("15:04")] = slot.Available
	}

	assert.False(t, byStart["09:00"])
	assert.False(t, byStart["10:00"])
	assert.True(t, byStart["10:30"])
	assert.True(t, byStart["11:30"])
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: testRule()},
		&fakeIdentityClient{provider: testProvider()},
		&fakeCatalogClient{service: testService()},
	)

	farDate := testNow.AddDate(0, 0, 31)

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 1, ServiceID: 10, Date: farDate})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InactiveProvider(t *testing.T) {
	provider := testProvider()
	provider.IsActiveProvider = false

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: testRule()},
		&fakeIdentityClient{provider: provider},
		&fakeCatalogClient{service: testService()},
	)

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 1, ServiceID: 10, Date: testDate})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: testRule()},
		&fakeIdentityClient{provider: testProvider()},
		&fakeCatalogClient{err: catalogservice.ErrServiceNotFound},
	)

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 1, ServiceID: 10, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: testRule()},
		&fakeIdentityClient{provider: testProvider()},
		&fakeCatalogClient{service: testService()},
	)

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 0, ServiceID: 10, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProviderID: 1, ServiceID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResponse_AvailableTimes(t *testing.T) {
	resp := &Response{Slots: []Slot{
		{StartTime: time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC), Available: true},
		{StartTime: time.Date(2026, 9, 8, 9, 30, 0, 0, time.UTC), Available: false},
		{StartTime: time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC), Available: true},
	}}

	times := resp.AvailableTimes()
	require.Len(t, times, 2)
	assert.Equal(t, time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC), times[0])
	assert.Equal(t, time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC), times[1])
}
