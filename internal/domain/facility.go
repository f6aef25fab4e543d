package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SlotDefinition is a catalog entry: a named time window of a facility.
// It carries no booked/free state; that lives in the reservation ledger
type SlotDefinition struct {
	ID       uuid.UUID
	Label    string // "06:00 - 07:00"
	Position int
}

// Facility represents a bookable turf
type Facility struct {
	ID           uuid.UUID
	Name         string
	PricePerHour decimal.Decimal
	Location     GeoPoint
	ImageURL     string
	Slots        []SlotDefinition

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FacilityAttributes editable attributes of a facility
type FacilityAttributes struct {
	Name         string
	PricePerHour decimal.Decimal
	Location     GeoPoint
	ImageURL     string
}

// Validate normalizes and checks the attributes
func (a *FacilityAttributes) Validate() error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidFacility)
	}
	if len(a.Name) > MaxFacilityNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidFacility, MaxFacilityNameLength)
	}
	if a.PricePerHour.IsNegative() {
		return fmt.Errorf("%w: price per hour must be non-negative", ErrInvalidFacility)
	}
	if err := a.Location.Validate(); err != nil {
		return err
	}

	a.ImageURL = strings.TrimSpace(a.ImageURL)
	if a.ImageURL == "" {
		a.ImageURL = DefaultImageURL
	}
	if len(a.ImageURL) > MaxImageURLLength {
		return fmt.Errorf("%w: image url is too long", ErrInvalidFacility)
	}
	return nil
}

// NewFacility builds a validated facility with a fresh id and slot catalog
func NewFacility(attrs FacilityAttributes, slotLabels []string, now time.Time) (*Facility, error) {
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	slots, err := NewSlotDefinitions(slotLabels, 0)
	if err != nil {
		return nil, err
	}

	return &Facility{
		ID:           uuid.New(),
		Name:         attrs.Name,
		PricePerHour: attrs.PricePerHour,
		Location:     attrs.Location,
		ImageURL:     attrs.ImageURL,
		Slots:        slots,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Apply replaces editable attributes. Attributes must already be validated
func (f *Facility) Apply(attrs FacilityAttributes, now time.Time) {
	f.Name = attrs.Name
	f.PricePerHour = attrs.PricePerHour
	f.Location = attrs.Location
	f.ImageURL = attrs.ImageURL
	f.UpdatedAt = now
}

// SlotByID finds a slot definition in the catalog
func (f *Facility) SlotByID(id uuid.UUID) (SlotDefinition, bool) {
	for _, s := range f.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return SlotDefinition{}, false
}

// HasSlotLabel reports whether the catalog already contains label
func (f *Facility) HasSlotLabel(label string) bool {
	label = NormalizeSlotLabel(label)
	for _, s := range f.Slots {
		if s.Label == label {
			return true
		}
	}
	return false
}

// NextSlotPosition returns the position for a slot appended to the catalog
func (f *Facility) NextSlotPosition() int {
	next := 0
	for _, s := range f.Slots {
		if s.Position >= next {
			next = s.Position + 1
		}
	}
	return next
}

// NormalizeSlotLabel trims the label and collapses inner whitespace
func NormalizeSlotLabel(label string) string {
	return strings.Join(strings.Fields(label), " ")
}

// NewSlotDefinitions validates labels and assigns ids and positions starting at startPosition.
// Labels must be unique within the batch
func NewSlotDefinitions(labels []string, startPosition int) ([]SlotDefinition, error) {
	if len(labels) > MaxSlotsPerFacility {
		return nil, fmt.Errorf("%w: a facility may have at most %d slots", ErrInvalidSlot, MaxSlotsPerFacility)
	}

	slots := make([]SlotDefinition, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))

	for i, raw := range labels {
		label := NormalizeSlotLabel(raw)
		if label == "" {
			return nil, fmt.Errorf("%w: label #%d is empty", ErrInvalidSlot, i+1)
		}
		if len(label) > MaxSlotLabelLength {
			return nil, fmt.Errorf("%w: label %q is longer than %d characters", ErrInvalidSlot, label, MaxSlotLabelLength)
		}
		if _, dup := seen[label]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidSlot, label)
		}
		seen[label] = struct{}{}

		slots = append(slots, SlotDefinition{
			ID:       uuid.New(),
			Label:    label,
			Position: startPosition + i,
		})
	}

	return slots, nil
}
