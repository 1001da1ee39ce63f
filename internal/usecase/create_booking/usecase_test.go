package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/booking-service/internal/domain"
	scheduleRepo "github.com/barberhub/booking-service/internal/infra/storage/schedule"
	"github.com/barberhub/booking-service/internal/integrations/catalogservice"
	"github.com/barberhub/booking-service/internal/integrations/identityservice"
	"github.com/barberhub/booking-service/pkg/timeops"
	"github.com/barberhub/booking-service/pkg/types"
)

// fakeBookingRepo хранит бронирования в памяти и реализует ту же семантику
// пересечения полуинтервалов, что и SQL-репозиторий
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	nextID   int64
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	created := *booking
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.bookings = append(r.bookings, &created)
	return &created, nil
}

func (r *fakeBookingRepo) FindActiveOverlapping(_ context.Context, providerID int64, start, end time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found []*domain.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID && b.IsActive() && timeops.IntervalsOverlap(start, end, b.StartTime, b.EndTime) {
			found = append(found, b)
		}
	}
	return found, nil
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
	customer *identityservice.Customer

	providerErr error
	customerErr error
}

func (c *fakeIdentityClient) GetProvider(_ context.Context, _ int64) (*identityservice.Provider, error) {
	if c.providerErr != nil {
		return nil, c.providerErr
	}
	return c.provider, nil
}

func (c *fakeIdentityClient) GetCustomer(_ context.Context, _ int64) (*identityservice.Customer, error) {
	if c.customerErr != nil {
		return nil, c.customerErr
	}
	return c.customer, nil
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

// fakeTxManager сериализует выполнение fn мьютексом — модель сериализуемых
// транзакций, достаточная для проверки допуска "ровно один победитель"
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
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

// Фикстуры: "сейчас" — понедельник 2026-09-07 10:00 UTC, мастер 1 работает
// по вторникам 09:00-18:00, услуга 10 длится 30 минут

var testNow = time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

func testStart() time.Time {
	return time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC)
}

func testProvider() *identityservice.Provider {
	return &identityservice.Provider{ID: 1, DisplayName: "Иван Петров", IsActiveProvider: true}
}

func testCustomer() *identityservice.Customer {
	phone := "+79991234567"
	return &identityservice.Customer{
		ID:        42,
		Email:     "customer@example.com",
		FirstName: "Анна",
		LastName:  "Смирнова",
		Phone:     &phone,
	}
}

func testService() *catalogservice.Service {
	return &catalogservice.Service{ID: 10, ProviderID: 1, Name: "Стрижка", DurationMinutes: 30, Price: 1500}
}

func testRule() *domain.WorkingHoursRule {
	return &domain.WorkingHoursRule{
		ProviderID: 1,
		DayOfWeek:  domain.Tuesday,
		StartTime:  types.TimeString("09:00"),
		EndTime:    types.TimeString("18:00"),
		IsWorking:  true,
	}
}

func newTestUseCase(
	bookingRepo *fakeBookingRepo,
	schedule *fakeScheduleRepo,
	identity *fakeIdentityClient,
	catalog *fakeCatalogClient,
) *UseCase {
	uc := NewUseCase(bookingRepo, schedule, identity, catalog, &fakeTxManager{}, Policy{
		AdvanceBookingDays: 30,
	}, &nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func testRequest() *Request {
	return &Request{CustomerID: 42, ProviderID: 1, ServiceID: 10, StartTime: testStart()}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider: testProvider(),
		customer: testCustomer(),
	}, &fakeCatalogClient{service: testService()})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, testStart(), resp.StartTime)
	assert.Equal(t, testStart().Add(30*time.Minute), resp.EndTime)

	// Снимок данных клиента и услуги
	assert.Equal(t, "customer@example.com", resp.CustomerEmail)
	assert.Equal(t, "Анна Смирнова", resp.CustomerName)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)

	require.Len(t, repo.bookings, 1)
}

func TestExecute_AnonymousCustomerFallback(t *testing.T) {
	customer := testCustomer()
	customer.FirstName = "  "
	customer.LastName = ""

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider: testProvider(),
		customer: customer,
	}, &fakeCatalogClient{service: testService()})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.AnonymousCustomerName, resp.CustomerName)
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider: testProvider(),
		customer: testCustomer(),
	}, &fakeCatalogClient{service: testService()})

	_, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// Второй запрос на пересекающийся интервал отклоняется
	req := testRequest()
	req.StartTime = testStart().Add(15 * time.Minute)

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Len(t, repo.bookings, 1)
}

func TestExecute_BackToBackSlotsAllowed(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider: testProvider(),
		customer: testCustomer(),
	}, &fakeCatalogClient{service: testService()})

	_, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// Слот встык: начало ровно в конец предыдущего — не конфликт
	req := testRequest()
	req.StartTime = testStart().Add(30 * time.Minute)

	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, repo.bookings, 2)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider: testProvider(),
		customer: testCustomer(),
	}, &fakeCatalogClient{service: testService()})

	_, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	repo.bookings[0].Status = domain.StatusCancelled

	_, err = uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
}

func TestExecute_StartTimeNotInFuture(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider: testProvider(),
		customer: testCustomer(),
	}, &fakeCatalogClient{service: testService()})

	req := testRequest()
	req.StartTime = testNow.Add(-time.Hour)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTime)

	// Ровно "сейчас" тоже отклоняется
	req.StartTime = testNow
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestExecute_MinBookingNotice(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider: testProvider(),
		customer: testCustomer(),
	}, &fakeCatalogClient{service: testService()})
	uc.policy.MinBookingNoticeMinutes = 120
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)}

	// 10:00 при запасе 120 минут от 09:00 — слишком рано
	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInvalidTime)

	req := testRequest()
	req.StartTime = time.Date(2026, 9, 8, 12, 0, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider: testProvider(),
		customer: testCustomer(),
	}, &fakeCatalogClient{service: testService()})

	req := testRequest()
	req.StartTime = testNow.AddDate(0, 0, 31)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider: testProvider(),
		customer: testCustomer(),
	}, &fakeCatalogClient{service: testService()})

	// Начало до открытия
	req := testRequest()
	req.StartTime = time.Date(2026, 9, 8, 8, 30, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// Конец за закрытием: 17:45 + 30 минут = 18:15
	req.StartTime = time.Date(2026, 9, 8, 17, 45, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// Конец ровно в закрытие допустим
	req.StartTime = time.Date(2026, 9, 8, 17, 30, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_NonWorkingDay(t *testing.T) {
	rule := testRule()
	rule.IsWorking = false

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{rule: rule}, &fakeIdentityClient{
		provider: testProvider(),
		customer: testCustomer(),
	}, &fakeCatalogClient{service: testService()})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_NoWorkingHoursRule(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{err: scheduleRepo.ErrRuleNotFound}, &fakeIdentityClient{
		provider: testProvider(),
		customer: testCustomer(),
	}, &fakeCatalogClient{service: testService()})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_ServiceOfAnotherProvider(t *testing.T) {
	service := testService()
	service.ProviderID = 99

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider: testProvider(),
		customer: testCustomer(),
	}, &fakeCatalogClient{service: service})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveProvider(t *testing.T) {
	provider := testProvider()
	provider.IsActiveProvider = false

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider: provider,
		customer: testCustomer(),
	}, &fakeCatalogClient{service: testService()})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_CustomerNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider:    testProvider(),
		customerErr: identityservice.ErrCustomerNotFound,
	}, &fakeCatalogClient{service: testService()})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_ConcurrentRequestsExactlyOneWinner(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{rule: testRule()}, &fakeIdentityClient{
		provider: testProvider(),
		customer: testCustomer(),
	}, &fakeCatalogClient{service: testService()})

	const attempts = 10

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), testRequest())
		}(i)
	}
	wg.Wait()

	var created, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case assert.ErrorIs(t, err, ErrSlotConflict):
			conflicts++
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)
	assert.Len(t, repo.bookings, 1)
}
