package get_my_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
)

const msgUnauthorized = "требуется авторизация"

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

// Handle GET /api/v1/reservations/my
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetUserReservations(r.Context(), principal)
	if err != nil {
		h.logger.Error("GET /reservations/my - Failed to get reservations: user_id=%s, error=%v",
			principal.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations/my - Reservations retrieved: user_id=%s, count=%d",
		principal.UserID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
