package domain

// Default values
const (
	// DefaultImageURL используется, если администратор не указал изображение площадки
	DefaultImageURL = "https://i.pinimg.com/736x/f2/1f/bc/f21fbcf2a18af50ef59f444558f15d33.jpg"

	// DefaultNearbyRadiusMeters радиус поиска площадок рядом с пользователем
	DefaultNearbyRadiusMeters = 5000

	// UnknownFacilityName подставляется, когда бронирование ссылается на удаленную площадку
	UnknownFacilityName = "unknown"
)

// Business validation constants
const (
	MaxFacilityNameLength = 200
	MaxSlotLabelLength    = 64
	MaxSlotsPerFacility   = 96
	MaxNearbyRadiusMeters = 50000
	MaxImageURLLength     = 2048
)

// Geo constants
const (
	EarthRadiusMeters = 6371000.0
	MinLatitude       = -90.0
	MaxLatitude       = 90.0
	MinLongitude      = -180.0
	MaxLongitude      = 180.0
)
