package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// Request модели

// Location координаты площадки
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateFacilityRequest запрос на создание площадки
type CreateFacilityRequest struct {
	Name         string          `json:"name"`
	PricePerHour decimal.Decimal `json:"pricePerHour"`
	Location     *Location       `json:"location"`
	ImageURL     string          `json:"imageUrl,omitempty"` // если пусто - картинка по умолчанию
	Slots        []string        `json:"slots,omitempty"`    // "06:00 - 07:00"
}

// UpdateFacilityRequest запрос на обновление атрибутов площадки (без каталога слотов)
type UpdateFacilityRequest struct {
	Name         string          `json:"name"`
	PricePerHour decimal.Decimal `json:"pricePerHour"`
	Location     *Location       `json:"location"`
	ImageURL     string          `json:"imageUrl,omitempty"`
}

// SlotsRequest запрос на добавление или замену слотов
type SlotsRequest struct {
	Slots []string `json:"slots"`
}

// NearbyRequest запрос площадок рядом с точкой
type NearbyRequest struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64 // 0 - радиус по умолчанию
}

// ToAttributes конвертирует координаты и атрибуты в domain модель
func ToAttributes(name string, price decimal.Decimal, loc *Location, imageURL string) domain.FacilityAttributes {
	attrs := domain.FacilityAttributes{
		Name:         name,
		PricePerHour: price,
		ImageURL:     imageURL,
	}
	if loc != nil {
		attrs.Location = domain.GeoPoint{Latitude: loc.Latitude, Longitude: loc.Longitude}
	}
	return attrs
}

// Response модели

// SlotResponse слот каталога
type SlotResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// FacilityResponse площадка с каталогом слотов
type FacilityResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	PricePerHour float64        `json:"pricePerHour"`
	Location     Location       `json:"location"`
	ImageURL     string         `json:"imageUrl"`
	Slots        []SlotResponse `json:"slots"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FacilityListResponse ответ со списком площадок
type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
}

// NearbyFacilityResponse площадка с расстоянием до точки поиска
type NearbyFacilityResponse struct {
	FacilityResponse
	DistanceMeters float64 `json:"distanceMeters"`
}

// NearbyListResponse ответ поиска рядом, по возрастанию расстояния
type NearbyListResponse struct {
	RadiusMeters float64                  `json:"radiusMeters"`
	Facilities   []NearbyFacilityResponse `json:"facilities"`
}

// Методы конвертации

// FromDomainFacility конвертирует domain модель в DTO
func FromDomainFacility(f *domain.Facility) *FacilityResponse {
	if f == nil {
		return nil
	}

	slots := make([]SlotResponse, len(f.Slots))
	for i, s := range f.Slots {
		slots[i] = SlotResponse{ID: s.ID.String(), Label: s.Label}
	}

	return &FacilityResponse{
		ID:           f.ID.String(),
		Name:         f.Name,
		PricePerHour: f.PricePerHour.InexactFloat64(),
		Location:     Location{Latitude: f.Location.Latitude, Longitude: f.Location.Longitude},
		ImageURL:     f.ImageURL,
		Slots:        slots,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// FromDomainFacilityList конвертирует список domain моделей в DTO
func FromDomainFacilityList(list []*domain.Facility) *FacilityListResponse {
	resp := &FacilityListResponse{
		Facilities: make([]FacilityResponse, 0, len(list)),
	}
	for _, f := range list {
		if fr := FromDomainFacility(f); fr != nil {
			resp.Facilities = append(resp.Facilities, *fr)
		}
	}
	return resp
}
