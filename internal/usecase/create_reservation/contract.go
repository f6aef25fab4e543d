package create_reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// FacilityRepository интерфейс каталога площадок (только чтение)
type FacilityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error)
}

// ReservationRepository интерфейс журнала бронирований
type ReservationRepository interface {
	FindActive(ctx context.Context, key domain.SlotKey) (*domain.Reservation, error)
	Create(ctx context.Context, res *domain.Reservation) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
