package domain

import (
	"fmt"
	"math"
)

// GeoPoint geographic point in degrees
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// NewGeoPoint validates coordinates at the boundary
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{Latitude: lat, Longitude: lng}
	if err := p.Validate(); err != nil {
		return GeoPoint{}, err
	}
	return p, nil
}

// Validate checks coordinate ranges
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Latitude) || p.Latitude < MinLatitude || p.Latitude > MaxLatitude {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidLocation, p.Latitude)
	}
	if math.IsNaN(p.Longitude) || p.Longitude < MinLongitude || p.Longitude > MaxLongitude {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidLocation, p.Longitude)
	}
	return nil
}

// DistanceMeters returns the great-circle (haversine) distance to other
func (p GeoPoint) DistanceMeters(other GeoPoint) float64 {
	lat1 := toRadians(p.Latitude)
	lat2 := toRadians(other.Latitude)
	dLat := lat2 - lat1
	dLng := toRadians(other.Longitude - p.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// BoundingBox returns the lat/lng box that contains every point within radius meters.
// Used as a cheap prefilter before the exact distance check
func (p GeoPoint) BoundingBox(radiusMeters float64) (minLat, maxLat, minLng, maxLng float64) {
	// небольшой запас: дуга параллели длиннее дуги большого круга
	dLat := radiusMeters * 1.001 / EarthRadiusMeters * 180 / math.Pi
	minLat = math.Max(p.Latitude-dLat, MinLatitude)
	maxLat = math.Min(p.Latitude+dLat, MaxLatitude)

	cosLat := math.Cos(toRadians(p.Latitude))
	if cosLat < 1e-9 || minLat == MinLatitude || maxLat == MaxLatitude {
		return minLat, maxLat, MinLongitude, MaxLongitude
	}

	dLng := dLat / cosLat
	minLng = p.Longitude - dLng
	maxLng = p.Longitude + dLng
	if minLng < MinLongitude || maxLng > MaxLongitude {
		return minLat, maxLat, MinLongitude, MaxLongitude
	}
	return minLat, maxLat, minLng, maxLng
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
