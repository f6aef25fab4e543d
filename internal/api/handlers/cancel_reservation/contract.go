package cancel_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

type ReservationService interface {
	Cancel(ctx context.Context, reservationID uuid.UUID, principal domain.Principal) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
