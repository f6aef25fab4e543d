package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TurfService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-TurfService/pkg/metrics"
)

// UseCase use case бронирования слота
type UseCase struct {
	facilityRepo    FacilityRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	locker          SlotLocker
	notifier        EventNotifier
	metrics         Metrics
	lockTimeout     time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// lockTimeout ограничивает ожидание блокировки слота; 0 - ждать до отмены контекста
func NewUseCase(
	facilityRepo FacilityRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	locker SlotLocker,
	notifier EventNotifier,
	metrics Metrics,
	lockTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilityRepo:    facilityRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		locker:          locker,
		notifier:        notifier,
		metrics:         metrics,
		lockTimeout:     lockTimeout,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute бронирует слот.
// Проверка и вставка выполняются под блокировкой ключа (площадка, дата, метка) в одной транзакции.
// Если другой процесс успел вставить бронь, уникальный индекс отклонит вставку - это тоже ErrSlotAlreadyBooked
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%s, facility=%s, date=%s, slot=%s",
		req.UserID, req.FacilityID, req.Date, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		uc.metrics.IncReservation(metrics.OutcomeRejected)
		return nil, err
	}

	// 2. Получаем площадку и метку слота
	facility, err := uc.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("CreateReservation: facility id=%s not found", req.FacilityID)
			uc.metrics.IncReservation(metrics.OutcomeRejected)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CreateReservation: failed to get facility id=%s: %v", req.FacilityID, err)
		uc.metrics.IncReservation(metrics.OutcomeStorageErr)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	slot, ok := facility.SlotByID(req.SlotID)
	if !ok {
		uc.logger.Warn("CreateReservation: slot id=%s not found in facility id=%s", req.SlotID, req.FacilityID)
		uc.metrics.IncReservation(metrics.OutcomeRejected)
		return nil, ErrSlotNotFound
	}

	key := domain.SlotKey{FacilityID: facility.ID, Date: req.Date, SlotLabel: slot.Label}

	// 3. Блокировка ключа: reserve и cancel одного слота выполняются строго по очереди
	unlock, err := uc.lock(ctx, key)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to lock slot %s: %v", key, err)
		uc.metrics.IncReservation(metrics.OutcomeStorageErr)
		return nil, fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Reservation

	// 4. Проверка и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := uc.reservationRepo.FindActive(txCtx, key)
		switch {
		case err == nil:
			uc.logger.Warn("CreateReservation: slot %s already booked by reservation id=%s", key, existing.ID)
			return ErrSlotAlreadyBooked
		case !errors.Is(err, reservationRepo.ErrReservationNotFound):
			uc.logger.Error("CreateReservation: failed to check slot %s: %v", key, err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		reservation := domain.NewReservation(key, req.UserID, uc.timeProvider.Now())
		if err := uc.reservationRepo.Create(txCtx, reservation); err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateReservation: slot %s taken concurrently", key)
				return ErrSlotAlreadyBooked
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = reservation
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotAlreadyBooked):
			uc.metrics.IncReservation(metrics.OutcomeSlotTaken)
			return nil, ErrSlotAlreadyBooked
		case errors.Is(err, ErrInternal):
			uc.metrics.IncReservation(metrics.OutcomeStorageErr)
			return nil, err
		default:
			// ошибка begin/commit из txmanager
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
			uc.metrics.IncReservation(metrics.OutcomeStorageErr)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.metrics.IncReservation(metrics.OutcomeReserved)
	uc.logger.Info("CreateReservation: successfully created reservation id=%s", result.ID)

	uc.notifier.NotifyWithGracefulDegradation(ctx, eventbus.RoutingKeyReservationCreated, result)

	return &Response{
		ID:           result.ID,
		FacilityID:   result.FacilityID,
		UserID:       result.UserID,
		Date:         result.Date,
		SlotLabel:    result.SlotLabel,
		Status:       string(result.Status),
		FacilityName: facility.Name,
		PricePerHour: facility.PricePerHour.InexactFloat64(),
		CreatedAt:    result.CreatedAt,
	}, nil
}

func (uc *UseCase) lock(ctx context.Context, key domain.SlotKey) (func(), error) {
	if uc.lockTimeout <= 0 {
		return uc.locker.Lock(ctx, key.String())
	}

	lockCtx, cancel := context.WithTimeout(ctx, uc.lockTimeout)
	defer cancel()

	return uc.locker.Lock(lockCtx, key.String())
}
