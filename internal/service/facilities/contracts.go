package facilities

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	Create(ctx context.Context, f *domain.Facility) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error)
	List(ctx context.Context) ([]*domain.Facility, error)
	ListInBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64) ([]*domain.Facility, error)
	Update(ctx context.Context, f *domain.Facility) error
	Delete(ctx context.Context, id uuid.UUID) error
	InsertSlots(ctx context.Context, facilityID uuid.UUID, slots []domain.SlotDefinition) error
	DeleteSlots(ctx context.Context, facilityID uuid.UUID) error
	DeleteSlot(ctx context.Context, facilityID, slotID uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
