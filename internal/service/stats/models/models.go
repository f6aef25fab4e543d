package models

import "github.com/m04kA/SMC-TurfService/internal/domain"

// FacilityStatsResponse статистика одной площадки
type FacilityStatsResponse struct {
	FacilityID        string  `json:"facilityId"`
	FacilityName      string  `json:"facilityName"`
	PricePerHour      float64 `json:"pricePerHour"`
	TotalBookings     int64   `json:"totalBookings"`
	ActiveBookings    int64   `json:"activeBookings"`
	CancelledBookings int64   `json:"cancelledBookings"`
	Revenue           float64 `json:"revenue"`
}

// FacilityStatsListResponse статистика по площадкам, по убыванию выручки
type FacilityStatsListResponse struct {
	Stats []FacilityStatsResponse `json:"stats"`
}

// FromDomainStats конвертирует domain модель в DTO
func FromDomainStats(s *domain.FacilityStats) FacilityStatsResponse {
	return FacilityStatsResponse{
		FacilityID:        s.FacilityID.String(),
		FacilityName:      s.FacilityName,
		PricePerHour:      s.PricePerHour.InexactFloat64(),
		TotalBookings:     s.TotalBookings,
		ActiveBookings:    s.ActiveBookings,
		CancelledBookings: s.CancelledBookings,
		Revenue:           s.Revenue.InexactFloat64(),
	}
}
