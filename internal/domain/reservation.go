package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s ReservationStatus) IsValid() bool {
	return s == StatusActive || s == StatusCancelled
}

// Reservation binds a user to a facility/date/slot-label triple.
// Rows are never deleted: cancelling only flips the status
type Reservation struct {
	ID         uuid.UUID
	FacilityID uuid.UUID
	UserID     string
	Date       types.Date
	SlotLabel  string // snapshot of the slot definition label at booking time
	Status     ReservationStatus

	CreatedAt   time.Time
	CancelledAt *time.Time
}

// NewReservation creates an active reservation for the given slot
func NewReservation(key SlotKey, userID string, now time.Time) *Reservation {
	return &Reservation{
		ID:         uuid.New(),
		FacilityID: key.FacilityID,
		UserID:     userID,
		Date:       key.Date,
		SlotLabel:  key.SlotLabel,
		Status:     StatusActive,
		CreatedAt:  now,
	}
}

// IsActive returns true if the reservation holds its slot
func (r *Reservation) IsActive() bool {
	return r.Status == StatusActive
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// IsOwnedBy returns true if userID made the reservation
func (r *Reservation) IsOwnedBy(userID string) bool {
	return r.UserID == userID
}

// Key returns the triple the reservation occupies
func (r *Reservation) Key() SlotKey {
	return SlotKey{FacilityID: r.FacilityID, Date: r.Date, SlotLabel: r.SlotLabel}
}

// SlotKey is the (facility, date, slot label) triple.
// At most one active reservation may exist per key
type SlotKey struct {
	FacilityID uuid.UUID
	Date       types.Date
	SlotLabel  string
}

// String is used as the lock key
func (k SlotKey) String() string {
	var b strings.Builder
	b.WriteString(k.FacilityID.String())
	b.WriteByte('|')
	b.WriteString(k.Date.String())
	b.WriteByte('|')
	b.WriteString(k.SlotLabel)
	return b.String()
}

// ReservationDetails reservation joined with its facility.
// FacilityName is UnknownFacilityName when the facility was deleted
type ReservationDetails struct {
	Reservation
	FacilityName  string
	FacilityPrice decimal.Decimal
}

// FacilityStats aggregated reservation counts of one facility
type FacilityStats struct {
	FacilityID        uuid.UUID
	FacilityName      string
	PricePerHour      decimal.Decimal
	TotalBookings     int64
	ActiveBookings    int64
	CancelledBookings int64
	Revenue           decimal.Decimal
}

// CalculateRevenue sets Revenue = ActiveBookings x PricePerHour.
// Cancelled reservations contribute nothing; the current price is used
func (s *FacilityStats) CalculateRevenue() {
	s.Revenue = s.PricePerHour.Mul(decimal.NewFromInt(s.ActiveBookings))
}
