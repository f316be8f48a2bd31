package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidDate возвращается при попытке записи на прошедшую дату
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDayOff возвращается, когда у профессионала выходной в указанную дату
	ErrDayOff = errors.New("create_appointment: professional does not work on this date")

	// ErrOutsideWorkingHours возвращается, когда слот выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("create_appointment: slot is outside working hours")

	// ErrSlotNotAvailable возвращается, когда слот занят записью или блокировкой
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
