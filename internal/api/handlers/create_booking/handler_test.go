package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/booking-service/internal/api/middleware"
	createBooking "github.com/barberhub/booking-service/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp    *createBooking.Response
	err     error
	lastReq *createBooking.Request
}

func (uc *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	uc.lastReq = req
	if uc.err != nil {
		return nil, uc.err
	}
	return uc.resp, nil
}

type nopLogger struct{}

func (*nopLogger) Info(string, ...interface{})  {}
func (*nopLogger) Warn(string, ...interface{})  {}
func (*nopLogger) Error(string, ...interface{}) {}

// serve прогоняет запрос через цепочку Auth → Handler, как в production роутере
func serve(uc *fakeUseCase, userID string, body string) *httptest.ResponseRecorder {
	handler := NewHandler(uc, &nopLogger{})
	chain := middleware.Auth(&nopLogger{})(http.HandlerFunc(handler.Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()

	chain.ServeHTTP(rec, req)
	return rec
}

func validBody() string {
	return `{"providerId":1,"serviceId":10,"startTime":"2026-09-08T10:00:00Z"}`
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:            5,
		ProviderID:    1,
		ServiceID:     10,
		CustomerID:    42,
		CustomerEmail: "customer@example.com",
		CustomerName:  "Анна Смирнова",
		StartTime:     time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, 9, 8, 10, 30, 0, 0, time.UTC),
		Status:        "confirmed",
		ServiceName:   "Стрижка",
		ServicePrice:  1500,
	}}

	rec := serve(uc, "42", validBody())

	require.Equal(t, http.StatusCreated, rec.Code)

	// Клиент берётся из заголовка аутентификации, не из тела
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(42), uc.lastReq.CustomerID)
	assert.Equal(t, time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC), uc.lastReq.StartTime)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "2026-09-08T10:00:00Z", resp.StartTime)
}

func TestHandle_Unauthorized(t *testing.T) {
	rec := serve(&fakeUseCase{}, "", validBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := serve(&fakeUseCase{}, "42", `{"providerId":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Неизвестные поля отклоняются
	rec = serve(&fakeUseCase{}, "42", `{"providerId":1,"serviceId":10,"startTime":"2026-09-08T10:00:00Z","extra":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidStartTimeFormat(t *testing.T) {
	rec := serve(&fakeUseCase{}, "42", `{"providerId":1,"serviceId":10,"startTime":"завтра в 10"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"конфликт слота", createBooking.ErrSlotConflict, http.StatusConflict},
		{"мастер не найден", createBooking.ErrProviderNotFound, http.StatusNotFound},
		{"услуга не найдена", createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"клиент не найден", createBooking.ErrCustomerNotFound, http.StatusNotFound},
		{"время не в будущем", createBooking.ErrInvalidTime, http.StatusBadRequest},
		{"дата за горизонтом", createBooking.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"вне рабочих часов", createBooking.ErrOutsideWorkingHours, http.StatusBadRequest},
		{"внутренняя ошибка", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, "42", validBody())
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
