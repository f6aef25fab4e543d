package get_facility_stats

import (
	"context"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/service/stats/models"
)

type StatsService interface {
	ByFacility(ctx context.Context, principal domain.Principal) (*models.FacilityStatsListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
