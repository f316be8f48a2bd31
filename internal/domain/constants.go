package domain

// Default configuration values
const (
	// SlotStepMinutes фиксированный шаг генерации слотов
	// Все услуги начинаются на границе получаса
	SlotStepMinutes = 30

	// DefaultServiceDurationMinutes длительность услуги, если клиент её не указал
	DefaultServiceDurationMinutes = 30

	// Рабочие часы по умолчанию для профессионала без настроенного расписания
	DefaultDayStart = "09:00"
	DefaultDayEnd   = "17:00"
)

// Business validation constants
const (
	MaxNotesLength        = 500
	MaxStatusReasonLength = 500
	MaxTitleLength        = 200
	MaxCalendarRangeDays  = 92 // Максимальный период выборки календаря (один квартал)
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default status reasons written by the state machine
const (
	ReasonApprovedByProfessional    = "Approved by professional"
	ReasonRescheduledByProfessional = "Rescheduled by professional"
	ReasonCancelledByClient         = "Cancelled by client"
	ReasonCancelledByProfessional   = "Cancelled by professional"
)

// PendingTitlePrefix префикс заголовка события календаря для записей, ожидающих подтверждения
const PendingTitlePrefix = "[PENDING] "

// CancelledStatuses список статусов, не занимающих слот
// Используется при подсчёте доступных слотов
var CancelledStatuses = []AppointmentStatus{
	StatusCancelled,
}

// AwaitingApprovalStatuses статусы, из которых запись может быть подтверждена
var AwaitingApprovalStatuses = []AppointmentStatus{
	StatusRequested,
	StatusPending,
	StatusPrebooked,
}

// AllStatuses полный список допустимых статусов записи
var AllStatuses = []AppointmentStatus{
	StatusRequested,
	StatusPending,
	StatusPrebooked,
	StatusScheduled,
	StatusCompleted,
	StatusCancelled,
}
