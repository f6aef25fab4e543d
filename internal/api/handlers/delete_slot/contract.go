package delete_slot

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/service/facilities/models"
)

type FacilityService interface {
	DeleteSlot(ctx context.Context, principal domain.Principal, facilityID, slotID uuid.UUID) (*models.FacilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
