package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-TurfService/internal/usecase/create_reservation"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры бронирования: нужны facilityId, slotId и date в формате YYYY-MM-DD"
	msgFacilityNotFound   = "площадка не найдена"
	msgSlotNotFound       = "слот не найден в каталоге площадки"
	msgSlotAlreadyBooked  = "слот уже забронирован на эту дату"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /reservations - Slot already booked: facility_id=%s, date=%s, slot_id=%s",
				req.FacilityID, req.Date, req.SlotID)
			handlers.RespondErrorKind(w, http.StatusConflict, handlers.KindSlotAlreadyBooked, msgSlotAlreadyBooked)

		case errors.Is(err, createReservation.ErrFacilityNotFound):
			h.logger.Warn("POST /reservations - Facility not found: facility_id=%s", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createReservation.ErrSlotNotFound):
			h.logger.Warn("POST /reservations - Slot not found: facility_id=%s, slot_id=%s", req.FacilityID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%s, facility_id=%s, error=%v",
				userID, req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%s, user_id=%s, slot=%q",
		result.ID, userID, result.SlotLabel)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
