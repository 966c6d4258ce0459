package notification

import (
	"context"
	"time"

	"harmony/models"
)

// Provider delivers one rendered notice over a single channel.
type Provider interface {
	Send(ctx context.Context, notice models.SessionNotice) error
	// IsAvailable reports whether the provider is configured well enough to
	// attempt delivery at all (credentials present etc.).
	IsAvailable() bool
}

// Service fans a committed session out to both parties over the requested
// channels. It never returns an error; every outcome lands in the report.
type Service interface {
	SendSessionNotifications(ctx context.Context, session *models.Session, therapist, patient models.Recipient, channels []models.Channel) models.DispatchReport
}

// DefaultNotificationService dispatches through the configured providers.
type DefaultNotificationService struct {
	Providers map[models.Channel]Provider
	// SendTimeout bounds each individual provider call. Zero means no
	// per-send bound beyond the caller's context.
	SendTimeout time.Duration
}

// NewDefaultNotificationService wires the standard sms and email providers.
func NewDefaultNotificationService(sms, email Provider, sendTimeout time.Duration) *DefaultNotificationService {
	return &DefaultNotificationService{
		Providers: map[models.Channel]Provider{
			models.ChannelSMS:   sms,
			models.ChannelEmail: email,
		},
		SendTimeout: sendTimeout,
	}
}
