package create_reservation

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("create_reservation: facility not found")

	// ErrSlotNotFound возвращается, когда у площадки нет слота с указанным ID
	ErrSlotNotFound = errors.New("create_reservation: slot not found")

	// ErrSlotAlreadyBooked возвращается, когда на слот уже есть активная бронь
	ErrSlotAlreadyBooked = errors.New("create_reservation: slot already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
