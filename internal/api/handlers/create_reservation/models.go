package create_reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	createReservation "github.com/m04kA/SMC-TurfService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	FacilityID string `json:"facilityId"`
	Date       string `json:"date"`   // "2026-02-01"
	SlotID     string `json:"slotId"` // ID слота из каталога площадки
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID string) (*createReservation.Request, error) {
	facilityID, err := uuid.Parse(r.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("facilityId: %w", err)
	}
	slotID, err := uuid.Parse(r.SlotID)
	if err != nil {
		return nil, fmt.Errorf("slotId: %w", err)
	}
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	return &createReservation.Request{
		UserID:     userID,
		FacilityID: facilityID,
		Date:       date,
		SlotID:     slotID,
	}, nil
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           string    `json:"id"`
	FacilityID   string    `json:"facilityId"`
	FacilityName string    `json:"facilityName"`
	PricePerHour float64   `json:"pricePerHour"`
	UserID       string    `json:"userId"`
	Date         string    `json:"date"`
	SlotLabel    string    `json:"slotLabel"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:           resp.ID.String(),
		FacilityID:   resp.FacilityID.String(),
		FacilityName: resp.FacilityName,
		PricePerHour: resp.PricePerHour,
		UserID:       resp.UserID,
		Date:         resp.Date.String(),
		SlotLabel:    resp.SlotLabel,
		Status:       resp.Status,
		CreatedAt:    resp.CreatedAt,
	}
}
