package get_nearby_facilities

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/service/facilities"
)

const msgInvalidQuery = "некорректные параметры: нужны lat в [-90, 90], lng в [-180, 180] и положительный radius"

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

// Handle GET /api/v1/facilities/nearby?lat=..&lng=..&radius=..
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /facilities/nearby - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.Nearby(r.Context(), req)
	if err != nil {
		if errors.Is(err, facilities.ErrInvalidInput) {
			h.logger.Warn("GET /facilities/nearby - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /facilities/nearby - Failed to search facilities: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /facilities/nearby - Found %d facilities within %.0fm", len(result.Facilities), result.RadiusMeters)
	handlers.RespondJSON(w, http.StatusOK, result)
}
