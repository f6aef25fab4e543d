package stats

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TurfService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-TurfService/pkg/logger"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

var admin = domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) AggregateByFacility(ctx context.Context) ([]*domain.FacilityStats, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.FacilityStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func discard() *logger.Logger {
	return logger.NewWriter(io.Discard, logger.LevelError)
}

func TestByFacility_RevenueFromActiveOnly(t *testing.T) {
	ctx := context.Background()
	db := storagetest.NewDB(t)
	facilities := facilityRepo.NewRepository(db)
	reservations := reservationRepo.NewRepository(db)

	f, err := domain.NewFacility(domain.FacilityAttributes{
		Name:         "F",
		PricePerHour: decimal.NewFromInt(500),
		Location:     domain.GeoPoint{Latitude: 1, Longitude: 1},
	}, []string{"06:00 - 07:00"}, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, facilities.Create(ctx, f))

	dates := []types.Date{"2026-02-01", "2026-02-02", "2026-02-03", "2026-02-04", "2026-02-05"}
	for i, d := range dates {
		key := domain.SlotKey{FacilityID: f.ID, Date: d, SlotLabel: "06:00 - 07:00"}
		r := domain.NewReservation(key, "user-a", time.Now().UTC())
		require.NoError(t, reservations.Create(ctx, r))
		if i >= 3 {
			require.NoError(t, reservations.Cancel(ctx, r.ID, time.Now().UTC()))
		}
	}

	resp, err := NewService(reservations, discard()).ByFacility(ctx, admin)
	require.NoError(t, err)
	require.Len(t, resp.Stats, 1)

	st := resp.Stats[0]
	assert.Equal(t, f.ID.String(), st.FacilityID)
	assert.Equal(t, int64(5), st.TotalBookings)
	assert.Equal(t, int64(3), st.ActiveBookings)
	assert.Equal(t, int64(2), st.CancelledBookings)
	assert.Equal(t, 1500.0, st.Revenue)
}

func TestByFacility_Ordering(t *testing.T) {
	repo := new(mockRepo)
	repo.On("AggregateByFacility", mock.Anything).Return([]*domain.FacilityStats{
		{FacilityID: uuid.New(), FacilityName: "Cheap", PricePerHour: decimal.NewFromInt(100), ActiveBookings: 2, TotalBookings: 2},
		{FacilityID: uuid.New(), FacilityName: "B Tie", PricePerHour: decimal.NewFromInt(300), ActiveBookings: 1, TotalBookings: 3},
		{FacilityID: uuid.New(), FacilityName: "A Tie", PricePerHour: decimal.NewFromInt(150), ActiveBookings: 2, TotalBookings: 2},
		{FacilityID: uuid.New(), FacilityName: "Top", PricePerHour: decimal.NewFromInt(1000), ActiveBookings: 1, TotalBookings: 1},
	}, nil)

	resp, err := NewService(repo, discard()).ByFacility(context.Background(), admin)
	require.NoError(t, err)

	names := make([]string, 0, len(resp.Stats))
	for _, s := range resp.Stats {
		names = append(names, s.FacilityName)
	}
	assert.Equal(t, []string{"Top", "A Tie", "B Tie", "Cheap"}, names)
	repo.AssertExpectations(t)
}

func TestByFacility_AdminOnlyAndErrors(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, discard())

	_, err := svc.ByFacility(context.Background(), domain.Principal{UserID: "u", Role: domain.RoleUser})
	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "AggregateByFacility", mock.Anything)

	repo.On("AggregateByFacility", mock.Anything).Return(nil, errors.New("db down"))
	_, err = svc.ByFacility(context.Background(), admin)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestByFacility_Empty(t *testing.T) {
	repo := new(mockRepo)
	repo.On("AggregateByFacility", mock.Anything).Return([]*domain.FacilityStats{}, nil)

	resp, err := NewService(repo, discard()).ByFacility(context.Background(), admin)
	require.NoError(t, err)
	assert.NotNil(t, resp.Stats)
	assert.Empty(t, resp.Stats)
}
