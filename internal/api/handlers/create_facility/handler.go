package create_facility

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFacility    = "некорректные данные площадки"
	msgDuplicateSlot      = "метки слотов должны быть уникальными"
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

// Handle POST /api/v1/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateFacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), principal, &req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("POST /facilities - Access denied: user_id=%s", principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrDuplicateSlot):
			h.logger.Warn("POST /facilities - Duplicate slot label: %v", err)
			handlers.RespondConflict(w, msgDuplicateSlot)

		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("POST /facilities - Invalid facility: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFacility)

		default:
			h.logger.Error("POST /facilities - Failed to create facility: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities - Facility created: facility_id=%s, slots=%d", result.ID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
