package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Status of a scheduled dose.
const (
	StatusPending = "pending"
	StatusTaken   = "taken"
	StatusMissed  = "missed"
)

// ValidStatuses is the closed set a reminder status may hold.
var ValidStatuses = map[string]bool{
	StatusPending: true,
	StatusTaken:   true,
	StatusMissed:  true,
}

type Reminder struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	OwnerID    string     `db:"owner_id" json:"-"`
	Medication string     `db:"medication" json:"medication"`
	Dosage     string     `db:"dosage" json:"dosage"`
	Time       string     `db:"time" json:"time"`
	Date       time.Time  `db:"date" json:"date"`
	Notes      *string    `db:"notes" json:"notes,omitempty"`
	Status     string     `db:"status" json:"status"`
	TakenAt    *time.Time `db:"taken_at" json:"takenAt,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}

// Input is the create payload for a reminder.
type Input struct {
	Medication string  `json:"medication"`
	Dosage     string  `json:"dosage"`
	Time       string  `json:"time"`
	Date       string  `json:"date"`
	Notes      *string `json:"notes"`
}
