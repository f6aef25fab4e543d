package get_booked_labels

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/pkg/types"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetBookedLabels(ctx context.Context, facilityID uuid.UUID, date types.Date) ([]string, error) {
	args := m.Called(ctx, facilityID, date)
	labels, _ := args.Get(0).([]string)
	return labels, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_ReturnsArray(t *testing.T) {
	facilityID := uuid.New()
	svc := new(mockService)
	svc.On("GetBookedLabels", mock.Anything, facilityID, types.Date("2026-02-01")).
		Return([]string{"06:00 - 07:00", "08:00 - 09:00"}, nil).Once()

	r := httptest.NewRequest(http.MethodGet, "/reservations/booked-labels?facilityId="+facilityID.String()+"&date=2026-02-01", nil)
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var labels []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &labels))
	assert.Equal(t, []string{"06:00 - 07:00", "08:00 - 09:00"}, labels)
}

func TestHandle_EmptyIsArray(t *testing.T) {
	svc := new(mockService)
	svc.On("GetBookedLabels", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil).Once()

	r := httptest.NewRequest(http.MethodGet, "/reservations/booked-labels?facilityId="+uuid.NewString()+"&date=2026-02-01", nil)
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandle_InvalidQuery(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, nopLogger{})

	for _, q := range []string{
		"",
		"?facilityId=abc&date=2026-02-01",
		"?facilityId=" + uuid.NewString() + "&date=2026-13-40",
		"?facilityId=" + uuid.NewString(),
	} {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/reservations/booked-labels"+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
	svc.AssertNotCalled(t, "GetBookedLabels", mock.Anything, mock.Anything, mock.Anything)
}
