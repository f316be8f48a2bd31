package schedule

import "errors"

var (
	// ErrWorkingHoursNotFound возвращается, когда у профессионала нет записи рабочих часов
	ErrWorkingHoursNotFound = errors.New("schedule.repository: working hours not found")

	// ErrOverrideNotFound возвращается, когда на дату нет действующего переопределения расписания
	ErrOverrideNotFound = errors.New("schedule.repository: custom working hours not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
