package facility

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/infra/storage/storagetest"
)

func newFacility(t *testing.T, name string, lat, lng float64, labels ...string) *domain.Facility {
	t.Helper()
	f, err := domain.NewFacility(domain.FacilityAttributes{
		Name:         name,
		PricePerHour: decimal.NewFromInt(500),
		Location:     domain.GeoPoint{Latitude: lat, Longitude: lng},
	}, labels, time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return f
}

func TestRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storagetest.NewDB(t))

	f := newFacility(t, "Green Arena", 12.97, 77.59, "06:00 - 07:00", "07:00 - 08:00")
	require.NoError(t, repo.Create(ctx, f))

	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)

	assert.Equal(t, f.ID, got.ID)
	assert.Equal(t, "Green Arena", got.Name)
	assert.True(t, decimal.NewFromInt(500).Equal(got.PricePerHour))
	assert.InDelta(t, 12.97, got.Location.Latitude, 1e-9)
	assert.Equal(t, domain.DefaultImageURL, got.ImageURL)
	assert.True(t, f.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Slots, 2)
	assert.Equal(t, "06:00 - 07:00", got.Slots[0].Label)
	assert.Equal(t, f.Slots[1].ID, got.Slots[1].ID)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRepository(storagetest.NewDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestRepository_ListAndBox(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storagetest.NewDB(t))

	near := newFacility(t, "B Near", 12.97, 77.59, "06:00 - 07:00")
	far := newFacility(t, "A Far", 28.61, 77.20)
	require.NoError(t, repo.Create(ctx, near))
	require.NoError(t, repo.Create(ctx, far))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A Far", all[0].Name)
	assert.Empty(t, all[0].Slots)
	assert.NotNil(t, all[0].Slots)
	assert.Len(t, all[1].Slots, 1)

	inBox, err := repo.ListInBox(ctx, 12.9, 13.0, 77.5, 77.7)
	require.NoError(t, err)
	require.Len(t, inBox, 1)
	assert.Equal(t, near.ID, inBox[0].ID)
}

func TestRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storagetest.NewDB(t))

	f := newFacility(t, "Old", 1, 1, "06:00 - 07:00")
	require.NoError(t, repo.Create(ctx, f))

	f.Name = "New"
	f.PricePerHour = decimal.RequireFromString("750.50")
	f.UpdatedAt = f.UpdatedAt.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, f))

	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.True(t, decimal.RequireFromString("750.5").Equal(got.PricePerHour))

	require.NoError(t, repo.Delete(ctx, f.ID))
	_, err = repo.GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, f.ID), ErrFacilityNotFound)
	assert.ErrorIs(t, repo.Update(ctx, f), ErrFacilityNotFound)
}

func TestRepository_Slots(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storagetest.NewDB(t))

	f := newFacility(t, "Slots", 1, 1, "06:00 - 07:00")
	require.NoError(t, repo.Create(ctx, f))

	extra, err := domain.NewSlotDefinitions([]string{"07:00 - 08:00"}, 1)
	require.NoError(t, err)
	require.NoError(t, repo.InsertSlots(ctx, f.ID, extra))

	dup, err := domain.NewSlotDefinitions([]string{"06:00 - 07:00"}, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.InsertSlots(ctx, f.ID, dup), ErrDuplicateSlotLabel)

	require.NoError(t, repo.DeleteSlot(ctx, f.ID, f.Slots[0].ID))
	assert.ErrorIs(t, repo.DeleteSlot(ctx, f.ID, f.Slots[0].ID), ErrSlotNotFound)

	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, got.Slots, 1)
	assert.Equal(t, "07:00 - 08:00", got.Slots[0].Label)

	require.NoError(t, repo.DeleteSlots(ctx, f.ID))
	got, err = repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Slots)
}
