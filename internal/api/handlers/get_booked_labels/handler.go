package get_booked_labels

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/service/reservations"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

const (
	msgInvalidFacilityID = "некорректный facilityId"
	msgInvalidDate       = "некорректная дата, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/reservations/booked-labels?facilityId=...&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	facilityID, err := uuid.Parse(query.Get("facilityId"))
	if err != nil {
		h.logger.Warn("GET /reservations/booked-labels - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	date, err := types.ParseDate(query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /reservations/booked-labels - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	labels, err := h.service.GetBookedLabels(r.Context(), facilityID, date)
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /reservations/booked-labels - Failed to get labels: facility_id=%s, date=%s, error=%v",
			facilityID, date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations/booked-labels - facility_id=%s, date=%s, booked=%d", facilityID, date, len(labels))
	handlers.RespondJSON(w, http.StatusOK, labels)
}
