package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TurfService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-TurfService/internal/service/reservations/models"
	"github.com/m04kA/SMC-TurfService/pkg/metrics"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// Service сервис для работы с бронированиями: отмена и чтение журнала.
// Создание брони - usecase create_reservation
type Service struct {
	reservationRepo ReservationRepository
	locker          SlotLocker
	notifier        EventNotifier
	metrics         Metrics
	clock           TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// locker должен быть тем же, что и у create_reservation
func NewService(
	reservationRepo ReservationRepository,
	locker SlotLocker,
	notifier EventNotifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		locker:          locker,
		notifier:        notifier,
		metrics:         metrics,
		clock:           utcClock{},
		logger:          logger,
	}
}

// Cancel отменяет бронирование.
// Отменить можно только своё бронирование; у администратора нет права отмены чужих броней.
// Повторная отмена уже отмененной брони ничего не меняет и не является ошибкой
func (s *Service) Cancel(ctx context.Context, reservationID uuid.UUID, principal domain.Principal) error {
	s.logger.Info("Cancel: cancelling reservation id=%s by user=%s", reservationID, principal.UserID)

	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%s not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%s: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !principal.IsAuthenticated() || !res.IsOwnedBy(principal.UserID) {
		s.logger.Warn("Cancel: access denied for user=%s to reservation id=%s", principal.UserID, reservationID)
		return ErrAccessDenied
	}

	if res.IsCancelled() {
		s.logger.Info("Cancel: reservation id=%s already cancelled", reservationID)
		return nil
	}

	// та же блокировка, что и при бронировании: отмена и новая бронь слота не пересекаются
	unlock, err := s.locker.Lock(ctx, res.Key().String())
	if err != nil {
		s.logger.Error("Cancel: failed to lock slot %s: %v", res.Key(), err)
		return fmt.Errorf("%w: Cancel - failed to lock slot: %v", ErrInternal, err)
	}
	defer unlock()

	now := s.clock.Now()
	if err := s.reservationRepo.Cancel(ctx, reservationID, now); err != nil {
		if errors.Is(err, reservationRepo.ErrNotActive) {
			// отменили параллельным запросом
			s.logger.Info("Cancel: reservation id=%s was cancelled concurrently", reservationID)
			return nil
		}
		s.logger.Error("Cancel: repository error for reservation id=%s: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	res.Status = domain.StatusCancelled
	res.CancelledAt = &now

	s.metrics.IncReservation(metrics.OutcomeCancelled)
	s.logger.Info("Cancel: successfully cancelled reservation id=%s, slot %s is free", reservationID, res.Key())

	s.notifier.NotifyWithGracefulDegradation(ctx, eventbus.RoutingKeyReservationCancelled, res)
	return nil
}

// GetBookedLabels возвращает метки занятых слотов площадки на дату.
// Неизвестная площадка или дата без броней дают пустой список
func (s *Service) GetBookedLabels(ctx context.Context, facilityID uuid.UUID, date types.Date) ([]string, error) {
	s.logger.Info("GetBookedLabels: facility=%s, date=%s", facilityID, date)

	if facilityID == uuid.Nil {
		return nil, fmt.Errorf("%w: facilityId is required", ErrInvalidInput)
	}
	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	labels, err := s.reservationRepo.ListBookedLabels(ctx, facilityID, date)
	if err != nil {
		s.logger.Error("GetBookedLabels: repository error for facility=%s: %v", facilityID, err)
		return nil, fmt.Errorf("%w: GetBookedLabels - repository error: %v", ErrInternal, err)
	}

	return labels, nil
}

// GetUserReservations возвращает историю бронирований пользователя, включая отмененные
func (s *Service) GetUserReservations(ctx context.Context, principal domain.Principal) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%s", principal.UserID)

	if !principal.IsAuthenticated() {
		return nil, ErrAccessDenied
	}

	list, err := s.reservationRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%s: %v", principal.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%s", len(list), principal.UserID)
	return models.FromDomainDetailsList(list), nil
}

// GetAllReservations возвращает все бронирования. Только для администратора
func (s *Service) GetAllReservations(ctx context.Context, principal domain.Principal) (*models.ReservationListResponse, error) {
	s.logger.Info("GetAllReservations: requested by user=%s", principal.UserID)

	if !principal.IsAdmin() {
		s.logger.Warn("GetAllReservations: access denied for user=%s, role=%s", principal.UserID, principal.Role)
		return nil, ErrAccessDenied
	}

	list, err := s.reservationRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("GetAllReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllReservations: successfully fetched %d reservations", len(list))
	return models.FromDomainDetailsList(list), nil
}
