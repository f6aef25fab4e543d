package create_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	UserID     string     // ID пользователя из токена
	FacilityID uuid.UUID  // ID площадки
	Date       types.Date // Дата бронирования (YYYY-MM-DD)
	SlotID     uuid.UUID  // ID слота из каталога площадки
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         uuid.UUID
	FacilityID uuid.UUID
	UserID     string
	Date       types.Date
	SlotLabel  string // метка слота на момент бронирования
	Status     string

	// Денормализованные данные площадки
	FacilityName string
	PricePerHour float64

	CreatedAt time.Time
}
