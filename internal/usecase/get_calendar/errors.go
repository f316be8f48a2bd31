package get_calendar

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("usecase.get_calendar: invalid input")

	// ErrAccessDenied доступ к чужому календарю запрещён
	ErrAccessDenied = errors.New("usecase.get_calendar: access denied")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("usecase.get_calendar: internal error")
)
