package get_facility_availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// FacilityRepository интерфейс каталога площадок
type FacilityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error)
}

// ReservationRepository интерфейс журнала бронирований
type ReservationRepository interface {
	// ListBookedLabels метки слотов с активной бронью на дату
	ListBookedLabels(ctx context.Context, facilityID uuid.UUID, date types.Date) ([]string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
