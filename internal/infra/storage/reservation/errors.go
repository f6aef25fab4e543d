package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotTaken возвращается, когда на (площадка, дата, слот) уже есть активная бронь.
	// Источник - уникальный частичный индекс ux_reservations_active_slot
	ErrSlotTaken = errors.New("reservation.repository: slot already has an active reservation")

	// ErrNotActive возвращается, когда отменяемое бронирование уже не активно
	ErrNotActive = errors.New("reservation.repository: reservation is not active")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
