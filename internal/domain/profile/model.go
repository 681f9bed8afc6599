package profile

import (
	"time"

	"github.com/google/uuid"
)

// DefaultImage is the sentinel meaning "no user-supplied image". It is never
// a real asset-store path and is never deleted.
const DefaultImage = "/default-profile.png"

// Genders is the closed set for the gender field.
var Genders = map[string]bool{
	"Male":   true,
	"Female": true,
	"Other":  true,
}

// BloodGroups is the closed set for the blood group field.
var BloodGroups = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"AB+": true, "AB-": true,
	"O+": true, "O-": true,
}

// Profile is the singleton health record, at most one per owner. Name and
// email are seeded from the owner's identity claims on first access; the
// free-text fields start empty.
type Profile struct {
	ID           uuid.UUID `db:"id" json:"id"`
	OwnerID      string    `db:"owner_id" json:"-"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	ProfileImage string    `db:"profile_image" json:"profileImage"`

	Age        *int     `db:"age" json:"age,omitempty"`
	Gender     *string  `db:"gender" json:"gender,omitempty"`
	BloodGroup *string  `db:"blood_group" json:"bloodGroup,omitempty"`
	Height     *float64 `db:"height" json:"height,omitempty"`
	Weight     *float64 `db:"weight" json:"weight,omitempty"`

	Address  string `db:"address" json:"address"`
	City     string `db:"city" json:"city"`
	Province string `db:"province" json:"province"`
	CNIC     string `db:"cnic" json:"cnic"`

	MedicalConditions  string `db:"medical_conditions" json:"medicalConditions"`
	CurrentMedications string `db:"current_medications" json:"currentMedications"`
	PastSurgeries      string `db:"past_surgeries" json:"pastSurgeries"`
	FoodAllergies      string `db:"food_allergies" json:"foodAllergies"`
	DrugAllergies      string `db:"drug_allergies" json:"drugAllergies"`
	OtherAllergies     string `db:"other_allergies" json:"otherAllergies"`

	EmergencyContactName         string `db:"emergency_contact_name" json:"emergencyContactName"`
	EmergencyContactRelationship string `db:"emergency_contact_relationship" json:"emergencyContactRelationship"`
	EmergencyContactPhone        string `db:"emergency_contact_phone" json:"emergencyContactPhone"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// UpdateInput is the merge payload: every field is optional, and only keys
// present in the request are applied to the stored profile.
type UpdateInput struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`

	Age        *int     `json:"age"`
	Gender     *string  `json:"gender"`
	BloodGroup *string  `json:"bloodGroup"`
	Height     *float64 `json:"height"`
	Weight     *float64 `json:"weight"`

	Address  *string `json:"address"`
	City     *string `json:"city"`
	Province *string `json:"province"`
	CNIC     *string `json:"cnic"`

	MedicalConditions  *string `json:"medicalConditions"`
	CurrentMedications *string `json:"currentMedications"`
	PastSurgeries      *string `json:"pastSurgeries"`
	FoodAllergies      *string `json:"foodAllergies"`
	DrugAllergies      *string `json:"drugAllergies"`
	OtherAllergies     *string `json:"otherAllergies"`

	EmergencyContactName         *string `json:"emergencyContactName"`
	EmergencyContactRelationship *string `json:"emergencyContactRelationship"`
	EmergencyContactPhone        *string `json:"emergencyContactPhone"`
}
