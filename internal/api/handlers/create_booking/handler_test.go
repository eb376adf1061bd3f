package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/courtflow/CF-BookingEngine/internal/usecase/create_booking"
)

type fakeUseCase struct {
	gotReq *createBooking.Request
	resp   *createBooking.Response
	err    error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type fakeMetrics struct {
	conflicts []string
}

func (f *fakeMetrics) IncBookingConflict(kind string) {
	f.conflicts = append(f.conflicts, kind)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const validBody = `{
	"customerName": "Alice",
	"customerEmail": "alice@example.com",
	"startAt": "2026-08-24T10:00:00Z",
	"endAt": "2026-08-24T11:00:00Z",
	"courtId": 1,
	"equipment": [{"equipmentTypeId": 7, "quantity": 2.9}]
}`

func doRequest(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{
		resp: &createBooking.Response{BookingID: 1, Status: "confirmed", TotalCents: 3000},
	}
	h := NewHandler(uc, &fakeMetrics{}, nopLogger{})

	rec := doRequest(t, h, validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, "confirmed", resp.Status)

	// Дробное количество инвентаря приводится к целому вниз
	require.NotNil(t, uc.gotReq)
	require.Len(t, uc.gotReq.Equipment, 1)
	assert.Equal(t, 2, uc.gotReq.Equipment[0].Quantity)
}

func TestHandle_MalformedBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, &fakeMetrics{}, nopLogger{})

	rec := doRequest(t, h, `{"customerName": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Неизвестные поля отклоняются
	rec = doRequest(t, h, `{"unknownField": true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{createBooking.ErrInvalidInput, http.StatusBadRequest},
		{createBooking.ErrCourtNotFound, http.StatusNotFound},
		{createBooking.ErrCoachNotFound, http.StatusNotFound},
		{createBooking.ErrEquipmentTypeNotFound, http.StatusNotFound},
		{createBooking.ErrResourceUnavailable, http.StatusConflict},
		{createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		h := NewHandler(&fakeUseCase{err: tc.err}, &fakeMetrics{}, nopLogger{})
		rec := doRequest(t, h, validBody)
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
	}
}

func TestHandle_ConflictCountsMetric(t *testing.T) {
	metrics := &fakeMetrics{}
	h := NewHandler(&fakeUseCase{err: createBooking.ErrResourceUnavailable}, metrics, nopLogger{})

	doRequest(t, h, validBody)

	assert.Equal(t, []string{"create"}, metrics.conflicts)
}
