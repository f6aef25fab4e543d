package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// ReservationRepository интерфейс журнала бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) error
	ListBookedLabels(ctx context.Context, facilityID uuid.UUID, date types.Date) ([]string, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.ReservationDetails, error)
	ListAll(ctx context.Context) ([]*domain.ReservationDetails, error)
}

// SlotLocker сериализует операции над одним (площадка, дата, слот)
type SlotLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// EventNotifier публикует события бронирований без влияния на результат операции
type EventNotifier interface {
	NotifyWithGracefulDegradation(ctx context.Context, key string, r *domain.Reservation)
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	IncReservation(outcome string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type utcClock struct{}

func (utcClock) Now() time.Time {
	return time.Now().UTC()
}
