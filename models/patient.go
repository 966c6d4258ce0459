package models

import "time"

// Patient represents a patient profile document.
type Patient struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Age        int    `bson:"age,omitempty" json:"age,omitempty"`
	Gender     string `bson:"gender,omitempty" json:"gender,omitempty"`
	Email      string `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
	Occupation string `bson:"occupation,omitempty" json:"occupation,omitempty"`
	Church     string `bson:"church,omitempty" json:"church,omitempty"`
	Concerns   string `bson:"concerns,omitempty" json:"concerns,omitempty"`

	// PreferredDays is the patient's recurring weekly availability.
	PreferredDays WeeklyAvailability `bson:"preferredDays" json:"preferredDays"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Contact returns the patient's notification recipient details.
func (p Patient) Contact() Recipient {
	return Recipient{Name: p.Name, Email: p.Email, Phone: p.Phone}
}
