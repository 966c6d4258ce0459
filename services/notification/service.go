package notification

import (
	"context"
	"sync"

	"harmony/models"
	"harmony/utils"

	"go.uber.org/zap"
)

// SendSessionNotifications delivers the notice to each (party, channel) pair
// concurrently. A recipient missing the contact field a channel needs is
// skipped silently; a provider failure is recorded in the report and never
// propagated. The session is already committed by the time this runs.
func (svc *DefaultNotificationService) SendSessionNotifications(ctx context.Context, session *models.Session, therapist, patient models.Recipient, channels []models.Channel) models.DispatchReport {
	logger := utils.GetLogger().With(zap.String("sessionID", session.ID))

	report := models.DispatchReport{
		models.PartyTherapist: {},
		models.PartyPatient:   {},
	}

	parties := []struct {
		name      string
		recipient models.Recipient
	}{
		{models.PartyTherapist, therapist},
		{models.PartyPatient, patient},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, party := range parties {
		for _, ch := range channels {
			provider, ok := svc.Providers[ch]
			if !ok || provider == nil || !provider.IsAvailable() {
				continue
			}
			if !hasContact(party.recipient, ch) {
				continue
			}

			wg.Add(1)
			go func(partyName string, recipient models.Recipient, channel models.Channel, provider Provider) {
				defer wg.Done()

				notice := renderNotice(session, recipient)
				err := svc.send(ctx, provider, notice)

				result := &models.DispatchResult{Channel: channel, Party: partyName, Success: err == nil}
				if err != nil {
					result.Error = err.Error()
					logger.Warn("Notification delivery failed",
						zap.String("party", partyName),
						zap.String("channel", string(channel)),
						zap.Error(err))
				}

				mu.Lock()
				report[partyName][channel] = result
				mu.Unlock()
			}(party.name, party.recipient, ch, provider)
		}
	}

	wg.Wait()
	return report
}

func (svc *DefaultNotificationService) send(ctx context.Context, provider Provider, notice models.SessionNotice) error {
	if svc.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, svc.SendTimeout)
		defer cancel()
	}
	return provider.Send(ctx, notice)
}

func hasContact(r models.Recipient, ch models.Channel) bool {
	switch ch {
	case models.ChannelSMS:
		return r.Phone != ""
	case models.ChannelEmail:
		return r.Email != ""
	}
	return false
}

// renderNotice builds the per-recipient payload. The date renders as a
// human-readable long form ("Monday, January 2, 2006") when parseable.
func renderNotice(session *models.Session, recipient models.Recipient) models.SessionNotice {
	date := session.Date
	if start, err := session.StartTime(); err == nil {
		date = start.Format("Monday, January 2, 2006")
	}
	return models.SessionNotice{
		SessionID:     session.ID,
		Recipient:     recipient,
		TherapistName: session.TherapistName,
		PatientName:   session.PatientName,
		Date:          date,
		StartTime:     session.Start.String(),
		EndTime:       session.End.String(),
		Notes:         session.Notes,
	}
}
