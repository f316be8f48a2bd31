package domain

import "time"

// BlockedTimeSlot represents an interval a professional has manually marked unavailable
// Independent lifecycle from appointments: created, edited and removed directly by the owner
type BlockedTimeSlot struct {
	ID             int64
	ProfessionalID int64
	Title          string
	StartAt        time.Time
	EndAt          time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Overlaps returns true if the blocked interval [StartAt, EndAt) overlaps [start, end)
// Touching boundaries do not count as overlap
func (b *BlockedTimeSlot) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndAt) && end.After(b.StartAt)
}
