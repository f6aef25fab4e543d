package stats

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/service/stats/models"
)

// Service отчеты по бронированиям. Только чтение
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// ByFacility считает бронирования и выручку по площадкам.
// revenue = activeBookings * текущая цена площадки; площадки без броней не включаются.
// Порядок: выручка по убыванию, при равенстве - название по возрастанию
func (s *Service) ByFacility(ctx context.Context, principal domain.Principal) (*models.FacilityStatsListResponse, error) {
	s.logger.Info("ByFacility: requested by user=%s", principal.UserID)

	if !principal.IsAdmin() {
		s.logger.Warn("ByFacility: access denied for user=%s, role=%s", principal.UserID, principal.Role)
		return nil, ErrAccessDenied
	}

	list, err := s.reservationRepo.AggregateByFacility(ctx)
	if err != nil {
		s.logger.Error("ByFacility: repository error: %v", err)
		return nil, fmt.Errorf("%w: ByFacility - repository error: %v", ErrInternal, err)
	}

	for _, st := range list {
		st.CalculateRevenue()
	}

	sort.SliceStable(list, func(i, j int) bool {
		if c := list[i].Revenue.Cmp(list[j].Revenue); c != 0 {
			return c > 0
		}
		return list[i].FacilityName < list[j].FacilityName
	})

	resp := &models.FacilityStatsListResponse{
		Stats: make([]models.FacilityStatsResponse, 0, len(list)),
	}
	for _, st := range list {
		resp.Stats = append(resp.Stats, models.FromDomainStats(st))
	}

	s.logger.Info("ByFacility: aggregated %d facilities", len(resp.Stats))
	return resp, nil
}
