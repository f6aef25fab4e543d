package get_booked_labels

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/pkg/types"
)

type ReservationService interface {
	GetBookedLabels(ctx context.Context, facilityID uuid.UUID, date types.Date) ([]string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
