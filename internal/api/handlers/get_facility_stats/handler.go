package get_facility_stats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfService/internal/service/stats"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "статистика доступна только администратору"
)

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stats/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.ByFacility(r.Context(), principal)
	if err != nil {
		if errors.Is(err, stats.ErrAccessDenied) {
			h.logger.Warn("GET /stats/facilities - Access denied: user_id=%s", principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /stats/facilities - Failed to aggregate stats: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stats/facilities - Stats computed: facilities=%d", len(result.Stats))
	handlers.RespondJSON(w, http.StatusOK, result)
}
