package notification

import (
	"context"
	"fmt"
	"html"

	"harmony/models"
	"harmony/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridEmailProvider delivers session notices over the SendGrid API.
type SendGridEmailProvider struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewSendGridEmailProvider builds the email provider. An empty API key yields
// a provider that reports itself unavailable rather than failing sends.
func NewSendGridEmailProvider(apiKey, fromEmail, fromName string) *SendGridEmailProvider {
	p := &SendGridEmailProvider{fromEmail: fromEmail, fromName: fromName}
	if apiKey != "" {
		p.client = sendgrid.NewSendClient(apiKey)
	}
	return p
}

// IsAvailable reports whether credentials were configured.
func (p *SendGridEmailProvider) IsAvailable() bool {
	return p.client != nil && p.fromEmail != ""
}

// Send delivers the session confirmation email.
func (p *SendGridEmailProvider) Send(ctx context.Context, notice models.SessionNotice) error {
	if !p.IsAvailable() {
		return fmt.Errorf("email provider not configured")
	}
	if notice.Recipient.Email == "" {
		return fmt.Errorf("recipient email address is required")
	}

	from := mail.NewEmail(p.fromName, p.fromEmail)
	to := mail.NewEmail(notice.Recipient.Name, notice.Recipient.Email)
	subject := fmt.Sprintf("Therapy Session Scheduled on %s", notice.Date)
	plain := fmt.Sprintf("Hello %s, your therapy session with %s is scheduled for %s at %s.",
		notice.Recipient.Name, notice.OtherParty(), notice.Date, notice.StartTime)
	message := mail.NewSingleEmail(from, subject, to, plain, sessionEmailHTML(notice))

	resp, err := p.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}

	utils.GetLogger().Debug("Session email sent",
		zap.String("sessionID", notice.SessionID),
		zap.Int("status", resp.StatusCode))
	return nil
}

// Recipient names and notes are free text from profile and booking forms;
// escape them before they land in markup.
func sessionEmailHTML(notice models.SessionNotice) string {
	notes := ""
	if notice.Notes != "" {
		notes = fmt.Sprintf("<p><strong>Notes:</strong> %s</p>", html.EscapeString(notice.Notes))
	}
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 8px;">
  <h2 style="color: #3a6ea5;">Session Confirmation</h2>
  <p>Hello %s,</p>
  <p>Your therapy session with <strong>%s</strong> has been scheduled for:</p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Date:</strong> %s</p>
    <p><strong>Time:</strong> %s - %s</p>
    %s
  </div>
  <p>Please make sure to be available at the scheduled time.</p>
  <p>If you need to reschedule or cancel your session, please contact us as soon as possible.</p>
  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #e0e0e0;">
    <p style="font-size: 12px; color: #777;">This is an automated message, please do not reply to this email.</p>
  </div>
</div>`,
		html.EscapeString(notice.Recipient.Name), html.EscapeString(notice.OtherParty()),
		notice.Date, notice.StartTime, notice.EndTime, notes)
}
