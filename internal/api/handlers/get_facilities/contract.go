package get_facilities

import (
	"context"

	"github.com/m04kA/SMC-TurfService/internal/service/facilities/models"
)

type FacilityService interface {
	List(ctx context.Context) (*models.FacilityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
