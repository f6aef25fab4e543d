package domain

import "errors"

var (
	// ErrInvalidFacility возвращается валидирующими конструкторами площадки
	ErrInvalidFacility = errors.New("domain: invalid facility")

	// ErrInvalidLocation возвращается при координатах вне допустимого диапазона
	ErrInvalidLocation = errors.New("domain: invalid location")

	// ErrInvalidSlot возвращается при пустой, слишком длинной или повторяющейся метке слота
	ErrInvalidSlot = errors.New("domain: invalid slot definition")
)
