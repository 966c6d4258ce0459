package models

import "time"

// Session status values. A session is never hard-deleted; cancellation and
// completion are status transitions.
const (
	SessionScheduled = "scheduled"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// Session represents a committed therapy session between a patient and a
// therapist. Start/End are minutes from midnight on Date ("YYYY-MM-DD",
// local time), forming a half-open [Start, End) interval.
type Session struct {
	ID          string    `bson:"id" json:"id"`
	PatientID   string    `bson:"patient_id" json:"patientId"`
	TherapistID string    `bson:"therapist_id" json:"therapistId"`
	Date        string    `bson:"date" json:"date"`
	Start       TimeOfDay `bson:"start" json:"start"`
	End         TimeOfDay `bson:"end" json:"end"`
	Status      string    `bson:"status" json:"status"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`

	// Name snapshots captured at creation time; not kept in sync with the
	// profile records.
	PatientName   string `bson:"patient_name" json:"patientName"`
	TherapistName string `bson:"therapist_name" json:"therapistName"`

	// SlotKeys lists the minutes of Date this session covers, as a half-open
	// range. A partial unique index over (party, date, slotKeys) makes
	// overlapping scheduled sessions unrepresentable in the store while
	// leaving back-to-back sessions untouched.
	SlotKeys []int `bson:"slotKeys" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// StartTime returns the absolute start instant in the local timezone.
func (s Session) StartTime() (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", s.Date, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return s.Start.At(day), nil
}

// BookedInterval is a read-only projection of a persisted session used for
// conflict checks. It exists only transiently during slot generation.
type BookedInterval struct {
	PartyID string
	Date    string
	Start   TimeOfDay
	End     TimeOfDay
}

// CandidateSlot is a bookable start/end pair on a specific date, produced by
// the slot generator and never persisted.
type CandidateSlot struct {
	Date  string    `json:"date"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// SlotResponse is the wire shape for a candidate slot, with clock strings.
type SlotResponse struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ToResponse renders the slot for clients.
func (s CandidateSlot) ToResponse() SlotResponse {
	return SlotResponse{Date: s.Date, Start: s.Start.String(), End: s.End.String()}
}
