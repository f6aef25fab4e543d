package facility

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("facility.repository: facility not found")

	// ErrSlotNotFound возвращается, когда слот не найден у площадки
	ErrSlotNotFound = errors.New("facility.repository: slot not found")

	// ErrDuplicateSlotLabel возвращается, когда у площадки уже есть слот с такой меткой
	ErrDuplicateSlotLabel = errors.New("facility.repository: duplicate slot label")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("facility.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("facility.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("facility.repository: failed to scan row")
)
