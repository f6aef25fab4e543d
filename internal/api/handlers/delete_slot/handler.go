package delete_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfService/internal/service/facilities"
)

const (
	msgUnauthorized      = "требуется авторизация"
	msgInvalidFacilityID = "некорректный ID площадки"
	msgInvalidSlotID     = "некорректный ID слота"
	msgFacilityNotFound  = "площадка не найдена"
	msgSlotNotFound      = "слот не найден"
	msgForbidden         = "доступно только администратору"
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

// Handle DELETE /api/v1/facilities/{facilityId}/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	facilityID, err := handlers.PathUUID(r, "facilityId")
	if err != nil {
		h.logger.Warn("DELETE /facilities/{id}/slots/{slotId} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}
	slotID, err := handlers.PathUUID(r, "slotId")
	if err != nil {
		h.logger.Warn("DELETE /facilities/{id}/slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.DeleteSlot(r.Context(), principal, facilityID, slotID)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("DELETE /facilities/{id}/slots/{slotId} - Access denied: user_id=%s", principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrFacilityNotFound):
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, facilities.ErrSlotNotFound):
			h.logger.Warn("DELETE /facilities/{id}/slots/{slotId} - Slot not found: facility_id=%s, slot_id=%s",
				facilityID, slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("DELETE /facilities/{id}/slots/{slotId} - Failed to delete slot: facility_id=%s, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /facilities/{id}/slots/{slotId} - Slot deleted: facility_id=%s, slot_id=%s", facilityID, slotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
