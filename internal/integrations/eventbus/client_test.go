package eventbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	args := m.Called(ctx, key, v)
	return args.Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testReservation() *domain.Reservation {
	key := domain.SlotKey{FacilityID: uuid.New(), Date: "2026-02-01", SlotLabel: "06:00 - 07:00"}
	return domain.NewReservation(key, "user-a", time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))
}

func TestClient_PublishCreatedEvent(t *testing.T) {
	pub := new(mockPublisher)
	r := testReservation()

	pub.On("PublishJSON", mock.Anything, RoutingKeyReservationCreated, mock.MatchedBy(func(e ReservationEvent) bool {
		return e.ReservationID == r.ID.String() &&
			e.Date == "2026-02-01" &&
			e.Status == "active" &&
			e.Type == RoutingKeyReservationCreated
	})).Return(nil).Once()

	c := NewClient(pub, time.Second, nopLogger{})
	require.NoError(t, c.publish(context.Background(), RoutingKeyReservationCreated, r))
	pub.AssertExpectations(t)
}

func TestClient_PublishErrorWrapped(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("PublishJSON", mock.Anything, RoutingKeyReservationCancelled, mock.Anything).
		Return(errors.New("connection closed")).Once()

	c := NewClient(pub, 0, nopLogger{})
	err := c.publish(context.Background(), RoutingKeyReservationCancelled, testReservation())
	assert.ErrorIs(t, err, ErrPublish)
}

func TestClient_GracefulDegradationSwallowsError(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker down")).Once()

	c := NewClient(pub, time.Second, nopLogger{})
	assert.NotPanics(t, func() {
		c.NotifyWithGracefulDegradation(context.Background(), RoutingKeyReservationCreated, testReservation())
	})
	pub.AssertExpectations(t)
}

func TestClient_Disabled(t *testing.T) {
	c := NewClient(nil, time.Second, nopLogger{})
	assert.False(t, c.Enabled())
	assert.NoError(t, c.publish(context.Background(), RoutingKeyReservationCreated, testReservation()))
	c.NotifyWithGracefulDegradation(context.Background(), RoutingKeyReservationCreated, testReservation())

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
}
