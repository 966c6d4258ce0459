package models

// Channel identifies a notification delivery channel.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// DefaultChannels is used when a caller does not request specific channels.
var DefaultChannels = []Channel{ChannelSMS, ChannelEmail}

// Party names the recipient side of a session notification.
const (
	PartyTherapist = "therapist"
	PartyPatient   = "patient"
)

// Recipient carries the contact details a provider needs to deliver.
// Email and Phone may each be empty; a channel whose required field is
// missing is skipped, not failed.
type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// SessionNotice is the rendered payload handed to a notification provider
// for one recipient of one committed session.
type SessionNotice struct {
	SessionID     string    `json:"sessionId"`
	Recipient     Recipient `json:"recipient"`
	TherapistName string    `json:"therapistName"`
	PatientName   string    `json:"patientName"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	Notes         string    `json:"notes,omitempty"`
}

// OtherParty returns the counterpart name to show the recipient.
func (n SessionNotice) OtherParty() string {
	if n.Recipient.Name == n.TherapistName {
		return n.PatientName
	}
	return n.TherapistName
}

// DispatchResult records the outcome of one (party, channel) send attempt.
type DispatchResult struct {
	Channel Channel `json:"channel"`
	Party   string  `json:"party"`
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
}

// DispatchReport maps party -> channel -> result. A missing entry means the
// pair was skipped because the recipient lacks the required contact field.
type DispatchReport map[string]map[Channel]*DispatchResult
