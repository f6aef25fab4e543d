package facilities

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-TurfService/internal/service/facilities/models"
)

// Service сервис каталога площадок.
// Чтение доступно всем, изменения - только администратору
type Service struct {
	facilityRepo        FacilityRepository
	txManager           TransactionManager
	defaultRadiusMeters float64
	clock               TimeProvider
	logger              Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(
	facilityRepo FacilityRepository,
	txManager TransactionManager,
	defaultRadiusMeters float64,
	logger Logger,
) *Service {
	if defaultRadiusMeters <= 0 {
		defaultRadiusMeters = domain.DefaultNearbyRadiusMeters
	}
	return &Service{
		facilityRepo:        facilityRepo,
		txManager:           txManager,
		defaultRadiusMeters: defaultRadiusMeters,
		clock:               utcClock{},
		logger:              logger,
	}
}

// Get возвращает площадку с каталогом слотов
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.FacilityResponse, error) {
	f, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Get", id, err)
	}
	return models.FromDomainFacility(f), nil
}

// List возвращает все площадки
func (s *Service) List(ctx context.Context) (*models.FacilityListResponse, error) {
	list, err := s.facilityRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d facilities", len(list))
	return models.FromDomainFacilityList(list), nil
}

// Nearby ищет площадки в радиусе от точки, ближайшие первыми
func (s *Service) Nearby(ctx context.Context, req *models.NearbyRequest) (*models.NearbyListResponse, error) {
	center, err := domain.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		s.logger.Warn("Nearby: invalid point: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	radius := req.RadiusMeters
	if radius == 0 {
		radius = s.defaultRadiusMeters
	}
	if math.IsNaN(radius) || radius < 0 || radius > domain.MaxNearbyRadiusMeters {
		return nil, fmt.Errorf("%w: radius must be in (0, %d] meters", ErrInvalidInput, domain.MaxNearbyRadiusMeters)
	}

	s.logger.Info("Nearby: lat=%f, lng=%f, radius=%.0fm", center.Latitude, center.Longitude, radius)

	minLat, maxLat, minLng, maxLng := center.BoundingBox(radius)
	candidates, err := s.facilityRepo.ListInBox(ctx, minLat, maxLat, minLng, maxLng)
	if err != nil {
		s.logger.Error("Nearby: repository error: %v", err)
		return nil, fmt.Errorf("%w: Nearby - repository error: %v", ErrInternal, err)
	}

	resp := &models.NearbyListResponse{
		RadiusMeters: radius,
		Facilities:   make([]models.NearbyFacilityResponse, 0, len(candidates)),
	}
	for _, f := range candidates {
		distance := center.DistanceMeters(f.Location)
		if distance > radius {
			continue
		}
		resp.Facilities = append(resp.Facilities, models.NearbyFacilityResponse{
			FacilityResponse: *models.FromDomainFacility(f),
			DistanceMeters:   distance,
		})
	}

	sort.SliceStable(resp.Facilities, func(i, j int) bool {
		return resp.Facilities[i].DistanceMeters < resp.Facilities[j].DistanceMeters
	})

	s.logger.Info("Nearby: %d of %d candidates within radius", len(resp.Facilities), len(candidates))
	return resp, nil
}

// Create создает площадку с каталогом слотов
func (s *Service) Create(ctx context.Context, principal domain.Principal, req *models.CreateFacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("Create: creating facility name=%q by user=%s", req.Name, principal.UserID)

	if err := s.checkAdmin("Create", principal); err != nil {
		return nil, err
	}
	if req.Location == nil {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	f, err := domain.NewFacility(
		models.ToAttributes(req.Name, req.PricePerHour, req.Location, req.ImageURL),
		req.Slots,
		s.clock.Now(),
	)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.facilityRepo.Create(txCtx, f)
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created facility id=%s with %d slots", f.ID, len(f.Slots))
	return models.FromDomainFacility(f), nil
}

// Update обновляет атрибуты площадки. Каталог слотов не меняется
func (s *Service) Update(ctx context.Context, principal domain.Principal, id uuid.UUID, req *models.UpdateFacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("Update: updating facility id=%s by user=%s", id, principal.UserID)

	if err := s.checkAdmin("Update", principal); err != nil {
		return nil, err
	}
	if req.Location == nil {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	attrs := models.ToAttributes(req.Name, req.PricePerHour, req.Location, req.ImageURL)
	if err := attrs.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated *domain.Facility
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		f, err := s.facilityRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		f.Apply(attrs, s.clock.Now())
		if err := s.facilityRepo.Update(txCtx, f); err != nil {
			return err
		}

		updated = f
		return nil
	})
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: successfully updated facility id=%s", id)
	return models.FromDomainFacility(updated), nil
}

// Delete удаляет площадку и ее каталог. История бронирований сохраняется
func (s *Service) Delete(ctx context.Context, principal domain.Principal, id uuid.UUID) error {
	s.logger.Info("Delete: deleting facility id=%s by user=%s", id, principal.UserID)

	if err := s.checkAdmin("Delete", principal); err != nil {
		return err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.facilityRepo.Delete(txCtx, id)
	})
	if err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.logger.Info("Delete: successfully deleted facility id=%s", id)
	return nil
}

// AddSlots добавляет слоты в конец каталога
func (s *Service) AddSlots(ctx context.Context, principal domain.Principal, id uuid.UUID, req *models.SlotsRequest) (*models.FacilityResponse, error) {
	s.logger.Info("AddSlots: adding %d slots to facility id=%s by user=%s", len(req.Slots), id, principal.UserID)

	if err := s.checkAdmin("AddSlots", principal); err != nil {
		return nil, err
	}
	if len(req.Slots) == 0 {
		return nil, fmt.Errorf("%w: slots are required", ErrInvalidInput)
	}

	var updated *domain.Facility
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		f, err := s.facilityRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		for _, label := range req.Slots {
			if f.HasSlotLabel(label) {
				return fmt.Errorf("%w: %q", ErrDuplicateSlot, domain.NormalizeSlotLabel(label))
			}
		}

		slots, err := domain.NewSlotDefinitions(req.Slots, f.NextSlotPosition())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if len(f.Slots)+len(slots) > domain.MaxSlotsPerFacility {
			return fmt.Errorf("%w: a facility may have at most %d slots", ErrInvalidInput, domain.MaxSlotsPerFacility)
		}

		if err := s.facilityRepo.InsertSlots(txCtx, id, slots); err != nil {
			return err
		}

		f.Slots = append(f.Slots, slots...)
		updated = f
		return nil
	})
	if err != nil {
		return nil, s.mapRepoError("AddSlots", id, err)
	}

	s.logger.Info("AddSlots: facility id=%s now has %d slots", id, len(updated.Slots))
	return models.FromDomainFacility(updated), nil
}

// ReplaceSlots заменяет каталог слотов целиком.
// Существующие бронирования хранят метку слота и не затрагиваются
func (s *Service) ReplaceSlots(ctx context.Context, principal domain.Principal, id uuid.UUID, req *models.SlotsRequest) (*models.FacilityResponse, error) {
	s.logger.Info("ReplaceSlots: replacing catalog of facility id=%s with %d slots by user=%s", id, len(req.Slots), principal.UserID)

	if err := s.checkAdmin("ReplaceSlots", principal); err != nil {
		return nil, err
	}

	slots, err := domain.NewSlotDefinitions(req.Slots, 0)
	if err != nil {
		s.logger.Warn("ReplaceSlots: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated *domain.Facility
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		f, err := s.facilityRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.facilityRepo.DeleteSlots(txCtx, id); err != nil {
			return err
		}
		if err := s.facilityRepo.InsertSlots(txCtx, id, slots); err != nil {
			return err
		}

		f.Slots = slots
		updated = f
		return nil
	})
	if err != nil {
		return nil, s.mapRepoError("ReplaceSlots", id, err)
	}

	s.logger.Info("ReplaceSlots: facility id=%s now has %d slots", id, len(updated.Slots))
	return models.FromDomainFacility(updated), nil
}

// DeleteSlot удаляет один слот из каталога
func (s *Service) DeleteSlot(ctx context.Context, principal domain.Principal, facilityID, slotID uuid.UUID) (*models.FacilityResponse, error) {
	s.logger.Info("DeleteSlot: deleting slot id=%s of facility id=%s by user=%s", slotID, facilityID, principal.UserID)

	if err := s.checkAdmin("DeleteSlot", principal); err != nil {
		return nil, err
	}

	var updated *domain.Facility
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.facilityRepo.DeleteSlot(txCtx, facilityID, slotID); err != nil {
			return err
		}

		f, err := s.facilityRepo.GetByID(txCtx, facilityID)
		if err != nil {
			return err
		}
		updated = f
		return nil
	})
	if err != nil {
		return nil, s.mapRepoError("DeleteSlot", facilityID, err)
	}

	s.logger.Info("DeleteSlot: successfully deleted slot id=%s", slotID)
	return models.FromDomainFacility(updated), nil
}

func (s *Service) checkAdmin(op string, principal domain.Principal) error {
	if principal.IsAdmin() {
		return nil
	}
	s.logger.Warn("%s: access denied for user=%s, role=%s", op, principal.UserID, principal.Role)
	return ErrAccessDenied
}

// mapRepoError переводит ошибки репозитория в ошибки сервиса.
// Ошибки сервиса, возвращенные изнутри транзакции, пробрасываются как есть
func (s *Service) mapRepoError(op string, id uuid.UUID, err error) error {
	switch {
	case errors.Is(err, facilityRepo.ErrFacilityNotFound):
		s.logger.Warn("%s: facility id=%s not found", op, id)
		return ErrFacilityNotFound
	case errors.Is(err, facilityRepo.ErrSlotNotFound):
		s.logger.Warn("%s: slot not found in facility id=%s", op, id)
		return ErrSlotNotFound
	case errors.Is(err, facilityRepo.ErrDuplicateSlotLabel):
		s.logger.Warn("%s: duplicate slot label in facility id=%s", op, id)
		return ErrDuplicateSlot
	case errors.Is(err, ErrDuplicateSlot), errors.Is(err, ErrInvalidInput):
		s.logger.Warn("%s: rejected for facility id=%s: %v", op, id, err)
		return err
	default:
		s.logger.Error("%s: repository error for facility id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
