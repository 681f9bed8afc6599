package prescription

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSideEffects is stored when a prescription is created without a
// side-effects note.
const DefaultSideEffects = "None reported"

// Prescription maps to the prescription table. Every row belongs to exactly
// one owner; the owner id never appears in API payloads.
type Prescription struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OwnerID        string    `db:"owner_id" json:"-"`
	MedicationName string    `db:"medication_name" json:"medicationName"`
	DoctorName     string    `db:"doctor_name" json:"doctorName"`
	PatientName    string    `db:"patient_name" json:"patientName"`
	Date           time.Time `db:"date" json:"date"`
	Dosage         string    `db:"dosage" json:"dosage"`
	Instructions   string    `db:"instructions" json:"instructions"`
	SideEffects    string    `db:"side_effects" json:"sideEffects"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// Input is the payload accepted by create and update. Updates are
// full-replace: every required field must be present again.
type Input struct {
	MedicationName string `json:"medicationName"`
	DoctorName     string `json:"doctorName"`
	PatientName    string `json:"patientName"`
	Date           string `json:"date"`
	Dosage         string `json:"dosage"`
	Instructions   string `json:"instructions"`
	SideEffects    string `json:"sideEffects"`
}

// ShareInput is the payload accepted by the share operation.
type ShareInput struct {
	RecipientEmail string `json:"recipientEmail"`
}
