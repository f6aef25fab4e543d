package models

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// ReservationResponse бронирование с данными площадки
type ReservationResponse struct {
	ID           string  `json:"id"`
	FacilityID   string  `json:"facilityId"`
	FacilityName string  `json:"facilityName"`
	PricePerHour float64 `json:"pricePerHour"`
	UserID       string  `json:"userId"`
	Date         string  `json:"date"`      // "2026-02-01"
	SlotLabel    string  `json:"slotLabel"` // "06:00 - 07:00"
	Status       string  `json:"status"`

	CreatedAt   time.Time  `json:"createdAt"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainDetails конвертирует domain модель в DTO
func FromDomainDetails(d *domain.ReservationDetails) ReservationResponse {
	return ReservationResponse{
		ID:           d.ID.String(),
		FacilityID:   d.FacilityID.String(),
		FacilityName: d.FacilityName,
		PricePerHour: d.FacilityPrice.InexactFloat64(),
		UserID:       d.UserID,
		Date:         d.Date.String(),
		SlotLabel:    d.SlotLabel,
		Status:       string(d.Status),
		CreatedAt:    d.CreatedAt,
		CancelledAt:  d.CancelledAt,
	}
}

// FromDomainDetailsList конвертирует список domain моделей в DTO
func FromDomainDetailsList(list []*domain.ReservationDetails) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for _, d := range list {
		if d == nil {
			continue
		}
		resp.Reservations = append(resp.Reservations, FromDomainDetails(d))
	}
	return resp
}
