package add_slots

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/service/facilities/models"
)

type FacilityService interface {
	AddSlots(ctx context.Context, principal domain.Principal, id uuid.UUID, req *models.SlotsRequest) (*models.FacilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
