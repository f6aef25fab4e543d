package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	_, err := NewGeoPoint(12.97, 77.59)
	require.NoError(t, err)

	_, err = NewGeoPoint(91, 0)
	assert.ErrorIs(t, err, ErrInvalidLocation)

	_, err = NewGeoPoint(0, -181)
	assert.ErrorIs(t, err, ErrInvalidLocation)
}

func TestGeoPoint_DistanceMeters(t *testing.T) {
	// Bengaluru MG Road -> Cubbon Park, about 1.2 km
	a := GeoPoint{Latitude: 12.9756, Longitude: 77.6050}
	b := GeoPoint{Latitude: 12.9763, Longitude: 77.5929}

	d := a.DistanceMeters(b)
	assert.InDelta(t, 1313, d, 50)
	assert.InDelta(t, 0, a.DistanceMeters(a), 1e-6)
}

func TestGeoPoint_BoundingBoxContainsRadius(t *testing.T) {
	center := GeoPoint{Latitude: 12.9716, Longitude: 77.5946}
	minLat, maxLat, minLng, maxLng := center.BoundingBox(5000)

	north := GeoPoint{Latitude: maxLat, Longitude: center.Longitude}
	east := GeoPoint{Latitude: center.Latitude, Longitude: maxLng}
	assert.InDelta(t, 5005, center.DistanceMeters(north), 1)
	assert.GreaterOrEqual(t, center.DistanceMeters(east), 4995.0)
	assert.Less(t, minLat, center.Latitude)
	assert.Less(t, minLng, center.Longitude)
}

func TestNewFacility_DefaultsImageAndValidates(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	f, err := NewFacility(FacilityAttributes{
		Name:         "  Green Arena ",
		PricePerHour: decimal.NewFromInt(500),
		Location:     GeoPoint{Latitude: 12.9, Longitude: 77.6},
	}, []string{"06:00 - 07:00", " 07:00  -  08:00 "}, now)
	require.NoError(t, err)

	assert.Equal(t, "Green Arena", f.Name)
	assert.Equal(t, DefaultImageURL, f.ImageURL)
	require.Len(t, f.Slots, 2)
	assert.Equal(t, "07:00 - 08:00", f.Slots[1].Label)
	assert.Equal(t, 1, f.Slots[1].Position)
	assert.Equal(t, 2, f.NextSlotPosition())

	slot, ok := f.SlotByID(f.Slots[0].ID)
	assert.True(t, ok)
	assert.Equal(t, "06:00 - 07:00", slot.Label)

	_, ok = f.SlotByID(uuid.New())
	assert.False(t, ok)
}

func TestNewFacility_Rejects(t *testing.T) {
	now := time.Now()
	loc := GeoPoint{Latitude: 1, Longitude: 1}

	_, err := NewFacility(FacilityAttributes{Name: "", Location: loc}, nil, now)
	assert.ErrorIs(t, err, ErrInvalidFacility)

	_, err = NewFacility(FacilityAttributes{Name: "x", PricePerHour: decimal.NewFromInt(-1), Location: loc}, nil, now)
	assert.ErrorIs(t, err, ErrInvalidFacility)

	_, err = NewFacility(FacilityAttributes{Name: "x", Location: loc}, []string{"06:00", "06:00"}, now)
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, err = NewFacility(FacilityAttributes{Name: "x", Location: loc}, []string{"  "}, now)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestFacilityStats_CalculateRevenue(t *testing.T) {
	s := FacilityStats{
		PricePerHour:      decimal.NewFromInt(500),
		TotalBookings:     5,
		ActiveBookings:    3,
		CancelledBookings: 2,
	}
	s.CalculateRevenue()
	assert.True(t, decimal.NewFromInt(1500).Equal(s.Revenue))
}

func TestSlotKey_String(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	key := SlotKey{FacilityID: id, Date: "2026-02-01", SlotLabel: "06:00 - 07:00"}
	assert.Equal(t, "11111111-1111-1111-1111-111111111111|2026-02-01|06:00 - 07:00", key.String())
}

func TestReservation_Lifecycle(t *testing.T) {
	key := SlotKey{FacilityID: uuid.New(), Date: "2026-02-01", SlotLabel: "06:00 - 07:00"}
	r := NewReservation(key, "user-a", time.Now())

	assert.True(t, r.IsActive())
	assert.True(t, r.IsOwnedBy("user-a"))
	assert.False(t, r.IsOwnedBy("user-b"))
	assert.Equal(t, key, r.Key())
}
