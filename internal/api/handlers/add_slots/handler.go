package add_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfService/internal/service/facilities"
	"github.com/m04kA/SMC-TurfService/internal/service/facilities/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidFacilityID  = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlots       = "некорректный список слотов"
	msgDuplicateSlot      = "слот с такой меткой уже есть"
	msgNotFound           = "площадка не найдена"
	msgForbidden          = "доступно только администратору"
)

type Handler struct {
	service FacilityService
	logger  Logger
}

func NewHandler(service FacilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/facilities/{facilityId}/slots
// добавляет слоты в конец каталога
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	facilityID, err := handlers.PathUUID(r, "facilityId")
	if err != nil {
		h.logger.Warn("POST /facilities/{id}/slots - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var req models.SlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddSlots(r.Context(), principal, facilityID, &req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("POST /facilities/{id}/slots - Access denied: user_id=%s", principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("POST /facilities/{id}/slots - Facility not found: facility_id=%s", facilityID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, facilities.ErrDuplicateSlot):
			h.logger.Warn("POST /facilities/{id}/slots - Duplicate slot: %v", err)
			handlers.RespondConflict(w, msgDuplicateSlot)

		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("POST /facilities/{id}/slots - Invalid slots: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlots)

		default:
			h.logger.Error("POST /facilities/{id}/slots - Failed to update slots: facility_id=%s, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities/{id}/slots - Slots added: facility_id=%s, slots=%d", facilityID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
