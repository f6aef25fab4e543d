package stats

import (
	"context"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// ReservationRepository источник агрегатов по бронированиям
type ReservationRepository interface {
	AggregateByFacility(ctx context.Context) ([]*domain.FacilityStats, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
