package get_facility_availability

import (
	getAvailability "github.com/m04kA/SMC-TurfService/internal/usecase/get_facility_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	FacilityID   string         `json:"facilityId"`
	FacilityName string         `json:"facilityName"`
	Date         string         `json:"date"`
	Slots        []SlotResponse `json:"slots"`
}

type SlotResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Position  int    `json:"position"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			ID:        s.ID.String(),
			Label:     s.Label,
			Position:  s.Position,
			Available: s.Available,
		})
	}

	return &AvailabilityResponse{
		FacilityID:   resp.FacilityID.String(),
		FacilityName: resp.FacilityName,
		Date:         resp.Date.String(),
		Slots:        slots,
	}
}
