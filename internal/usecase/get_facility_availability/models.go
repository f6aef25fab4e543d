package get_facility_availability

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// Request модель запроса занятости слотов площадки
type Request struct {
	FacilityID uuid.UUID
	Date       types.Date
}

// Response каталог слотов площадки с отметкой занятости на дату
type Response struct {
	FacilityID   uuid.UUID
	FacilityName string
	Date         types.Date
	Slots        []Slot
}

// Slot слот каталога
type Slot struct {
	ID        uuid.UUID
	Label     string // "06:00 - 07:00"
	Position  int
	Available bool // нет активной брони на эту дату
}
