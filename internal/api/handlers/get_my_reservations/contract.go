package get_my_reservations

import (
	"context"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/service/reservations/models"
)

type ReservationService interface {
	GetUserReservations(ctx context.Context, principal domain.Principal) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
