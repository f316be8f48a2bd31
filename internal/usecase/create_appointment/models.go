package create_appointment

import (
	"time"

	"github.com/m04kA/BMP-ScheduleService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID        int64            // ID клиента (из заголовка авторизации)
	ProfessionalID  int64            // ID профессионала
	ServiceID       int64            // ID услуги
	Date            time.Time        // Дата записи (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность услуги в минутах (0 = по умолчанию)

	// Денормализованные данные из профиля и каталога услуг
	ClientName       string
	ProfessionalName string
	ServiceName      string
	Location         *string
	Notes            *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID               int64
	ClientID         int64
	ProfessionalID   int64
	ServiceID        int64
	Date             time.Time
	StartAt          time.Time
	EndAt            time.Time
	Status           string
	ClientName       string
	ProfessionalName string
	ServiceName      string
	Location         *string
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
