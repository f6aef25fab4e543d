package stats

import "errors"

var (
	// ErrAccessDenied возвращается, когда статистику запрашивает не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
