package get_facility_availability

import (
	"context"
	"errors"
	"fmt"

	facilityRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/facility"
)

// UseCase собирает каталог слотов площадки и отмечает занятые на дату
type UseCase struct {
	facilityRepo    FacilityRepository
	reservationRepo ReservationRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilityRepo:    facilityRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Execute выполняет use case. Слоты идут в порядке каталога
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFacilityAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetFacilityAvailability: facility=%s, date=%s", req.FacilityID, req.Date)

	// 1. Каталог слотов площадки
	facility, err := uc.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("GetFacilityAvailability: facility id=%s not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetFacilityAvailability: failed to get facility id=%s: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 2. Занятые метки на дату
	booked, err := uc.reservationRepo.ListBookedLabels(ctx, req.FacilityID, req.Date)
	if err != nil {
		uc.logger.Error("GetFacilityAvailability: failed to list booked labels: %v", err)
		return nil, fmt.Errorf("%w: failed to list booked labels: %v", ErrInternal, err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, label := range booked {
		taken[label] = struct{}{}
	}

	// 3. Отмечаем занятость; бронь на метку, удаленную из каталога, не показывается
	resp := &Response{
		FacilityID:   facility.ID,
		FacilityName: facility.Name,
		Date:         req.Date,
		Slots:        make([]Slot, 0, len(facility.Slots)),
	}
	free := 0
	for _, s := range facility.Slots {
		_, isTaken := taken[s.Label]
		if !isTaken {
			free++
		}
		resp.Slots = append(resp.Slots, Slot{
			ID:        s.ID,
			Label:     s.Label,
			Position:  s.Position,
			Available: !isTaken,
		})
	}

	uc.logger.Info("GetFacilityAvailability: facility=%s, date=%s, free=%d of %d",
		req.FacilityID, req.Date, free, len(resp.Slots))
	return resp, nil
}
