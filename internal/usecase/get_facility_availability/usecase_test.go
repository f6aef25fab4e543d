package get_facility_availability

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TurfService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-TurfService/pkg/logger"
)

func setup(t *testing.T) (*UseCase, *domain.Facility, *reservationRepo.Repository) {
	t.Helper()

	db := storagetest.NewDB(t)
	facilities := facilityRepo.NewRepository(db)
	reservations := reservationRepo.NewRepository(db)

	f, err := domain.NewFacility(domain.FacilityAttributes{
		Name:         "Arena",
		PricePerHour: decimal.NewFromInt(800),
		Location:     domain.GeoPoint{Latitude: 12.97, Longitude: 77.59},
	}, []string{"06:00 - 07:00", "07:00 - 08:00", "08:00 - 09:00"}, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, facilities.Create(context.Background(), f))

	uc := NewUseCase(facilities, reservations, logger.NewWriter(io.Discard, logger.LevelError))
	return uc, f, reservations
}

func book(t *testing.T, repo *reservationRepo.Repository, f *domain.Facility, slot int) *domain.Reservation {
	t.Helper()
	key := domain.SlotKey{FacilityID: f.ID, Date: "2026-02-01", SlotLabel: f.Slots[slot].Label}
	r := domain.NewReservation(key, "user-a", time.Now().UTC())
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func TestExecute_MarksBookedSlots(t *testing.T) {
	uc, f, reservations := setup(t)
	book(t, reservations, f, 1)

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: f.ID, Date: "2026-02-01"})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, "Arena", resp.FacilityName)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	assert.Equal(t, "07:00 - 08:00", resp.Slots[1].Label)
	assert.True(t, resp.Slots[2].Available)

	other, err := uc.Execute(context.Background(), &Request{FacilityID: f.ID, Date: "2026-02-02"})
	require.NoError(t, err)
	for _, s := range other.Slots {
		assert.True(t, s.Available, s.Label)
	}
}

func TestExecute_CancelledFreesSlot(t *testing.T) {
	uc, f, reservations := setup(t)
	r := book(t, reservations, f, 0)
	require.NoError(t, reservations.Cancel(context.Background(), r.ID, time.Now().UTC()))

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: f.ID, Date: "2026-02-01"})
	require.NoError(t, err)
	assert.True(t, resp.Slots[0].Available)
}

func TestExecute_Errors(t *testing.T) {
	uc, f, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{FacilityID: uuid.New(), Date: "2026-02-01"})
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	_, err = uc.Execute(context.Background(), &Request{FacilityID: f.ID, Date: "2026-02-30"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: "2026-02-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
