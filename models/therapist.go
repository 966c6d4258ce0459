package models

import "time"

// Therapist represents a therapist profile document.
type Therapist struct {
	ID            string   `bson:"id" json:"id"`
	Name          string   `bson:"name" json:"name"`
	Age           int      `bson:"age,omitempty" json:"age,omitempty"`
	Gender        string   `bson:"gender,omitempty" json:"gender,omitempty"`
	MaritalStatus string   `bson:"maritalStatus,omitempty" json:"maritalStatus,omitempty"`
	Specialty     string   `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Email         string   `bson:"email,omitempty" json:"email,omitempty"`
	Phone         string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Experience    string   `bson:"experience,omitempty" json:"experience,omitempty"`
	Education     string   `bson:"education,omitempty" json:"education,omitempty"`
	Languages     []string `bson:"languages,omitempty" json:"languages,omitempty"`
	Bio           string   `bson:"bio,omitempty" json:"bio,omitempty"`

	// Availability is the therapist's recurring weekly open hours.
	Availability WeeklyAvailability `bson:"availability" json:"availability"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Contact returns the therapist's notification recipient details.
func (t Therapist) Contact() Recipient {
	return Recipient{Name: t.Name, Email: t.Email, Phone: t.Phone}
}
