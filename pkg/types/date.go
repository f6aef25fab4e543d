package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout формат календарной даты YYYY-MM-DD
const DateLayout = "2006-01-02"

// ErrInvalidDate возвращается при некорректной строке даты
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Date календарная дата без времени и часового пояса, хранится как "YYYY-MM-DD".
// Строковое представление сортируется так же, как сами даты
type Date string

// ParseDate разбирает и валидирует строку вида "2026-02-01"
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date(t.Format(DateLayout)), nil
}

func (d Date) String() string {
	return string(d)
}

func (d Date) IsZero() bool {
	return d == ""
}

// Validate проверяет, что значение является корректной датой
func (d Date) Validate() error {
	_, err := ParseDate(string(d))
	return err
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return string(d), nil
}

// Scan реализует sql.Scanner. lib/pq отдает DATE как time.Time,
// go-sqlite3 - как time.Time или строку
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = Date(v.UTC().Format(DateLayout))
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case nil:
		*d = ""
		return nil
	default:
		return fmt.Errorf("types.Date: unsupported scan type %T", src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalJSON валидирует дату при декодировании запроса
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
