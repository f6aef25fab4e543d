package eventbus

import "time"

// Ключи маршрутизации
const (
	RoutingKeyReservationCreated   = "reservation.created"
	RoutingKeyReservationCancelled = "reservation.cancelled"
)

// ReservationEvent событие жизненного цикла бронирования
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservationId"`
	FacilityID    string    `json:"facilityId"`
	UserID        string    `json:"userId"`
	Date          string    `json:"date"`
	SlotLabel     string    `json:"slotLabel"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}
