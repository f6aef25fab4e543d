package delete_facility

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
	msgNotFound          = "площадка не найдена"
	msgForbidden         = "доступно только администратору"
	msgDeleted           = "facility deleted"
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

// Handle DELETE /api/v1/facilities/{facilityId}
// Бронирования площадки остаются в журнале
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	facilityID, err := handlers.PathUUID(r, "facilityId")
	if err != nil {
		h.logger.Warn("DELETE /facilities/{id} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	if err := h.service.Delete(r.Context(), principal, facilityID); err != nil {
		switch {
		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("DELETE /facilities/{id} - Access denied: user_id=%s", principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("DELETE /facilities/{id} - Facility not found: facility_id=%s", facilityID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /facilities/{id} - Failed to delete facility: facility_id=%s, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /facilities/{id} - Facility deleted: facility_id=%s", facilityID)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgDeleted})
}
