package get_all_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfService/internal/service/reservations"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "доступно только администратору"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetAllReservations(r.Context(), principal)
	if err != nil {
		if errors.Is(err, reservations.ErrAccessDenied) {
			h.logger.Warn("GET /reservations - Access denied: user_id=%s", principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /reservations - Failed to get reservations: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations - All reservations retrieved: count=%d", len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
