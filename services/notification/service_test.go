package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"harmony/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider records the notices it receives and fails on demand.
type fakeProvider struct {
	mu          sync.Mutex
	sent        []models.SessionNotice
	err         error
	unavailable bool
}

func (f *fakeProvider) Send(ctx context.Context, notice models.SessionNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, notice)
	return nil
}

func (f *fakeProvider) IsAvailable() bool {
	return !f.unavailable
}

func (f *fakeProvider) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func testSession() *models.Session {
	return &models.Session{
		ID:            "sess-1",
		TherapistID:   "t1",
		PatientID:     "p1",
		Date:          "2026-03-02",
		Start:         600,
		End:           630,
		Status:        models.SessionScheduled,
		TherapistName: "Dr. Achieng",
		PatientName:   "Brian Otieno",
	}
}

func fullContacts() (models.Recipient, models.Recipient) {
	therapist := models.Recipient{Name: "Dr. Achieng", Email: "achieng@example.com", Phone: "+254700000001"}
	patient := models.Recipient{Name: "Brian Otieno", Email: "brian@example.com", Phone: "+254700000002"}
	return therapist, patient
}

func TestSendSessionNotificationsFansOutToBothParties(t *testing.T) {
	sms := &fakeProvider{}
	email := &fakeProvider{}
	svc := NewDefaultNotificationService(sms, email, 0)

	therapist, patient := fullContacts()
	report := svc.SendSessionNotifications(context.Background(), testSession(), therapist, patient, models.DefaultChannels)

	assert.Equal(t, 2, sms.sentCount())
	assert.Equal(t, 2, email.sentCount())

	for _, party := range []string{models.PartyTherapist, models.PartyPatient} {
		for _, ch := range models.DefaultChannels {
			result := report[party][ch]
			require.NotNil(t, result, "%s/%s", party, ch)
			assert.True(t, result.Success)
			assert.Empty(t, result.Error)
		}
	}
}

func TestProviderFailureIsIsolated(t *testing.T) {
	sms := &fakeProvider{}
	email := &fakeProvider{err: errors.New("gateway rejected message")}
	svc := NewDefaultNotificationService(sms, email, 0)

	therapist, patient := fullContacts()
	report := svc.SendSessionNotifications(context.Background(), testSession(), therapist, patient, models.DefaultChannels)

	for _, party := range []string{models.PartyTherapist, models.PartyPatient} {
		smsResult := report[party][models.ChannelSMS]
		require.NotNil(t, smsResult)
		assert.True(t, smsResult.Success)

		emailResult := report[party][models.ChannelEmail]
		require.NotNil(t, emailResult)
		assert.False(t, emailResult.Success)
		assert.Contains(t, emailResult.Error, "gateway rejected")
	}
}

func TestMissingContactIsSkippedNotFailed(t *testing.T) {
	sms := &fakeProvider{}
	email := &fakeProvider{}
	svc := NewDefaultNotificationService(sms, email, 0)

	// Therapist has no phone; patient has no email.
	therapist := models.Recipient{Name: "Dr. Achieng", Email: "achieng@example.com"}
	patient := models.Recipient{Name: "Brian Otieno", Phone: "+254700000002"}

	report := svc.SendSessionNotifications(context.Background(), testSession(), therapist, patient, models.DefaultChannels)

	assert.Nil(t, report[models.PartyTherapist][models.ChannelSMS])
	assert.NotNil(t, report[models.PartyTherapist][models.ChannelEmail])
	assert.NotNil(t, report[models.PartyPatient][models.ChannelSMS])
	assert.Nil(t, report[models.PartyPatient][models.ChannelEmail])

	assert.Equal(t, 1, sms.sentCount())
	assert.Equal(t, 1, email.sentCount())
}

func TestUnavailableProviderIsSkipped(t *testing.T) {
	sms := &fakeProvider{unavailable: true}
	email := &fakeProvider{}
	svc := NewDefaultNotificationService(sms, email, 0)

	therapist, patient := fullContacts()
	report := svc.SendSessionNotifications(context.Background(), testSession(), therapist, patient, models.DefaultChannels)

	assert.Equal(t, 0, sms.sentCount())
	assert.Equal(t, 2, email.sentCount())
	assert.Nil(t, report[models.PartyTherapist][models.ChannelSMS])
}

func TestRequestedChannelsAreRespected(t *testing.T) {
	sms := &fakeProvider{}
	email := &fakeProvider{}
	svc := NewDefaultNotificationService(sms, email, 0)

	therapist, patient := fullContacts()
	svc.SendSessionNotifications(context.Background(), testSession(), therapist, patient, []models.Channel{models.ChannelEmail})

	assert.Equal(t, 0, sms.sentCount())
	assert.Equal(t, 2, email.sentCount())
}

func TestNoticeRendersHumanReadableDate(t *testing.T) {
	sms := &fakeProvider{}
	svc := NewDefaultNotificationService(sms, &fakeProvider{}, 0)

	therapist, patient := fullContacts()
	svc.SendSessionNotifications(context.Background(), testSession(), therapist, patient, []models.Channel{models.ChannelSMS})

	require.Equal(t, 2, sms.sentCount())
	notice := sms.sent[0]
	assert.Equal(t, "Monday, March 2, 2026", notice.Date)
	assert.Equal(t, "10:00", notice.StartTime)
	assert.Equal(t, "10:30", notice.EndTime)
}

func TestFormatPhoneNumber(t *testing.T) {
	cases := map[string]string{
		"0712345678":    "+254712345678",
		"+254712345678": "+254712345678",
		"254712345678":  "+254712345678",
		"712345678":     "+254712345678",
		"0712 345 678":  "+254712345678",
		"12345":         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatPhoneNumber(in), in)
	}
}
