package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-TurfService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

const slot = "06:00 - 07:00"

var baseTime = time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC)

type fixture struct {
	repo       *Repository
	facilities *facility.Repository
}

func newFixture(t *testing.T) *fixture {
	db := storagetest.NewDB(t)
	return &fixture{repo: NewRepository(db), facilities: facility.NewRepository(db)}
}

func (fx *fixture) facility(t *testing.T, name string, price int64) *domain.Facility {
	t.Helper()
	f, err := domain.NewFacility(domain.FacilityAttributes{
		Name:         name,
		PricePerHour: decimal.NewFromInt(price),
		Location:     domain.GeoPoint{Latitude: 1, Longitude: 1},
	}, []string{slot, "07:00 - 08:00"}, baseTime)
	require.NoError(t, err)
	require.NoError(t, fx.facilities.Create(context.Background(), f))
	return f
}

func (fx *fixture) reserve(t *testing.T, facilityID uuid.UUID, date types.Date, label, user string, at time.Time) *domain.Reservation {
	t.Helper()
	res := domain.NewReservation(domain.SlotKey{FacilityID: facilityID, Date: date, SlotLabel: label}, user, at)
	require.NoError(t, fx.repo.Create(context.Background(), res))
	return res
}

func TestRepository_CreateRejectsSecondActive(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	f := fx.facility(t, "F1", 500)

	first := fx.reserve(t, f.ID, "2026-02-01", slot, "user-a", baseTime)

	second := domain.NewReservation(first.Key(), "user-b", baseTime.Add(time.Minute))
	assert.ErrorIs(t, fx.repo.Create(ctx, second), ErrSlotTaken)

	// после отмены слот снова свободен
	require.NoError(t, fx.repo.Cancel(ctx, first.ID, baseTime.Add(2*time.Minute)))
	require.NoError(t, fx.repo.Create(ctx, second))

	// две отмененные брони на один слот допустимы
	require.NoError(t, fx.repo.Cancel(ctx, second.ID, baseTime.Add(3*time.Minute)))
	fx.reserve(t, f.ID, "2026-02-01", slot, "user-c", baseTime.Add(4*time.Minute))
}

func TestRepository_GetAndFindActive(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	f := fx.facility(t, "F1", 500)

	res := fx.reserve(t, f.ID, "2026-02-01", slot, "user-a", baseTime)

	got, err := fx.repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
	assert.Equal(t, f.ID, got.FacilityID)
	assert.Equal(t, types.Date("2026-02-01"), got.Date)
	assert.Equal(t, slot, got.SlotLabel)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.True(t, baseTime.Equal(got.CreatedAt))
	assert.Nil(t, got.CancelledAt)

	active, err := fx.repo.FindActive(ctx, res.Key())
	require.NoError(t, err)
	assert.Equal(t, res.ID, active.ID)

	_, err = fx.repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrReservationNotFound)

	require.NoError(t, fx.repo.Cancel(ctx, res.ID, baseTime.Add(time.Hour)))
	_, err = fx.repo.FindActive(ctx, res.Key())
	assert.ErrorIs(t, err, ErrReservationNotFound)

	got, err = fx.repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)
	assert.True(t, baseTime.Add(time.Hour).Equal(*got.CancelledAt))
}

func TestRepository_CancelNotActive(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	f := fx.facility(t, "F1", 500)
	res := fx.reserve(t, f.ID, "2026-02-01", slot, "user-a", baseTime)

	require.NoError(t, fx.repo.Cancel(ctx, res.ID, baseTime))
	assert.ErrorIs(t, fx.repo.Cancel(ctx, res.ID, baseTime), ErrNotActive)
	assert.ErrorIs(t, fx.repo.Cancel(ctx, uuid.New(), baseTime), ErrNotActive)
}

func TestRepository_ListBookedLabels(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	f := fx.facility(t, "F1", 500)

	fx.reserve(t, f.ID, "2026-02-01", "07:00 - 08:00", "user-a", baseTime)
	fx.reserve(t, f.ID, "2026-02-01", slot, "user-b", baseTime)
	fx.reserve(t, f.ID, "2026-02-02", slot, "user-b", baseTime)
	cancelled := fx.reserve(t, f.ID, "2026-02-03", slot, "user-b", baseTime)
	require.NoError(t, fx.repo.Cancel(ctx, cancelled.ID, baseTime))

	labels, err := fx.repo.ListBookedLabels(ctx, f.ID, "2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, []string{slot, "07:00 - 08:00"}, labels)

	again, err := fx.repo.ListBookedLabels(ctx, f.ID, "2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, labels, again)

	empty, err := fx.repo.ListBookedLabels(ctx, f.ID, "2026-02-03")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRepository_ListByUserOrderingAndHistory(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	f := fx.facility(t, "F1", 500)

	older := fx.reserve(t, f.ID, "2026-02-01", slot, "user-a", baseTime)
	newerSameDay := fx.reserve(t, f.ID, "2026-02-01", "07:00 - 08:00", "user-a", baseTime.Add(time.Minute))
	laterDate := fx.reserve(t, f.ID, "2026-02-05", slot, "user-a", baseTime.Add(-time.Hour))
	fx.reserve(t, f.ID, "2026-02-07", slot, "user-b", baseTime)
	require.NoError(t, fx.repo.Cancel(ctx, older.ID, baseTime.Add(time.Hour)))

	list, err := fx.repo.ListByUser(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, laterDate.ID, list[0].ID)
	assert.Equal(t, newerSameDay.ID, list[1].ID)
	assert.Equal(t, older.ID, list[2].ID)
	assert.Equal(t, domain.StatusCancelled, list[2].Status)
	assert.Equal(t, "F1", list[0].FacilityName)
	assert.True(t, decimal.NewFromInt(500).Equal(list[0].FacilityPrice))

	none, err := fx.repo.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_ListAllResolvesDeletedFacility(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	f := fx.facility(t, "Gone", 500)
	fx.reserve(t, f.ID, "2026-02-01", slot, "user-a", baseTime)
	require.NoError(t, fx.facilities.Delete(ctx, f.ID))

	all, err := fx.repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.UnknownFacilityName, all[0].FacilityName)
	assert.True(t, all[0].FacilityPrice.IsZero())
}

func TestRepository_AggregateByFacility(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	f1 := fx.facility(t, "F1", 500)
	f2 := fx.facility(t, "F2", 300)
	fx.facility(t, "Empty", 100)
	gone := fx.facility(t, "Gone", 900)

	dates := []types.Date{"2026-02-01", "2026-02-02", "2026-02-03", "2026-02-04", "2026-02-05"}
	for i, d := range dates {
		res := fx.reserve(t, f1.ID, d, slot, "user-a", baseTime)
		if i >= 3 {
			require.NoError(t, fx.repo.Cancel(ctx, res.ID, baseTime))
		}
	}
	fx.reserve(t, f2.ID, "2026-02-01", slot, "user-b", baseTime)
	fx.reserve(t, gone.ID, "2026-02-01", slot, "user-b", baseTime)
	require.NoError(t, fx.facilities.Delete(ctx, gone.ID))

	stats, err := fx.repo.AggregateByFacility(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, f1.ID, stats[0].FacilityID)
	assert.Equal(t, int64(5), stats[0].TotalBookings)
	assert.Equal(t, int64(3), stats[0].ActiveBookings)
	assert.Equal(t, int64(2), stats[0].CancelledBookings)
	assert.True(t, decimal.NewFromInt(500).Equal(stats[0].PricePerHour))

	assert.Equal(t, "F2", stats[1].FacilityName)
	assert.Equal(t, int64(1), stats[1].TotalBookings)
}

// statusRow отдает строку, в которой заполнен только статус
type statusRow string

func (s statusRow) Scan(dest ...interface{}) error {
	*dest[5].(*string) = string(s)
	return nil
}

func TestScanReservation_Status(t *testing.T) {
	res, err := scanReservation(statusRow("cancelled"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, res.Status)

	_, err = scanReservation(statusRow("pending"))
	assert.Error(t, err)
}
