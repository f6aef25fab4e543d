package get_nearby_facilities

import (
	"context"

	"github.com/m04kA/SMC-TurfService/internal/service/facilities/models"
)

type FacilityService interface {
	Nearby(ctx context.Context, req *models.NearbyRequest) (*models.NearbyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
