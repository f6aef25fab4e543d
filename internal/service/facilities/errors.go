package facilities

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrSlotNotFound возвращается, когда слот не найден в каталоге площадки
	ErrSlotNotFound = errors.New("slot not found")

	// ErrDuplicateSlot возвращается, когда метка слота уже есть в каталоге
	ErrDuplicateSlot = errors.New("slot label already exists")

	// ErrAccessDenied возвращается, когда операцию вызывает не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
