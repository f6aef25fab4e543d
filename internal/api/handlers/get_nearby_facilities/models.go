package get_nearby_facilities

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-TurfService/internal/service/facilities/models"
)

// parseQuery разбирает lat, lng и необязательный radius (в метрах)
func parseQuery(q url.Values) (*models.NearbyRequest, error) {
	lat, err := parseFinite(q.Get("lat"))
	if err != nil {
		return nil, fmt.Errorf("lat: %w", err)
	}
	lng, err := parseFinite(q.Get("lng"))
	if err != nil {
		return nil, fmt.Errorf("lng: %w", err)
	}

	req := &models.NearbyRequest{Latitude: lat, Longitude: lng}
	if raw := q.Get("radius"); raw != "" {
		radius, err := parseFinite(raw)
		if err != nil {
			return nil, fmt.Errorf("radius: %w", err)
		}
		if radius <= 0 {
			return nil, fmt.Errorf("radius: must be positive")
		}
		req.RadiusMeters = radius
	}
	return req, nil
}

var errNotFinite = errors.New("must be a finite number")

// parseFinite разбирает число, отбрасывая NaN и ±Inf
func parseFinite(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}
