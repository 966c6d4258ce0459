package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"harmony/models"
	"harmony/utils"

	"go.uber.org/zap"
)

const africasTalkingEndpoint = "https://api.africastalking.com/version1/messaging"

// AfricasTalkingSMSProvider delivers session notices over the Africa's
// Talking messaging API.
type AfricasTalkingSMSProvider struct {
	apiKey   string
	username string
	senderID string
	client   *http.Client
}

// NewAfricasTalkingSMSProvider builds the SMS provider. Missing credentials
// yield a provider that reports itself unavailable rather than failing sends.
func NewAfricasTalkingSMSProvider(apiKey, username, senderID string) *AfricasTalkingSMSProvider {
	return &AfricasTalkingSMSProvider{
		apiKey:   apiKey,
		username: username,
		senderID: senderID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// IsAvailable reports whether credentials were configured.
func (p *AfricasTalkingSMSProvider) IsAvailable() bool {
	return p.apiKey != "" && p.username != ""
}

type atResponse struct {
	SMSMessageData struct {
		Recipients []struct {
			Number string `json:"number"`
			Status string `json:"status"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// Send delivers the session confirmation SMS.
func (p *AfricasTalkingSMSProvider) Send(ctx context.Context, notice models.SessionNotice) error {
	if !p.IsAvailable() {
		return fmt.Errorf("sms provider not configured")
	}

	phone := FormatPhoneNumber(notice.Recipient.Phone)
	if phone == "" {
		return fmt.Errorf("invalid phone number format: %s", notice.Recipient.Phone)
	}

	form := url.Values{}
	form.Set("username", p.username)
	form.Set("to", phone)
	form.Set("message", smsMessage(notice))
	if p.senderID != "" {
		form.Set("from", p.senderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, africasTalkingEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading sms response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode, body)
	}

	var parsed atResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("decoding sms response: %w", err)
	}
	if len(parsed.SMSMessageData.Recipients) == 0 {
		return fmt.Errorf("sms gateway returned no recipients")
	}
	if status := parsed.SMSMessageData.Recipients[0].Status; status != "Success" {
		return fmt.Errorf("sms delivery rejected: %s", status)
	}

	utils.GetLogger().Debug("Session SMS sent",
		zap.String("sessionID", notice.SessionID),
		zap.String("to", phone))
	return nil
}

func smsMessage(notice models.SessionNotice) string {
	msg := fmt.Sprintf("Hello %s, your therapy session with %s is scheduled for %s at %s.",
		notice.Recipient.Name, notice.OtherParty(), notice.Date, notice.StartTime)
	if notice.Notes != "" {
		msg += " Notes: " + notice.Notes
	}
	return msg
}

// FormatPhoneNumber normalizes a phone number into the international form the
// gateway requires. Local numbers are assumed Kenyan (+254). Returns "" when
// the input cannot be a valid number.
func FormatPhoneNumber(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 9 {
		return ""
	}

	switch {
	case strings.HasPrefix(phone, "0"):
		return "+254" + d[1:]
	case strings.HasPrefix(d, "254"):
		return "+" + d
	case strings.HasPrefix(phone, "+"):
		return "+" + d
	case len(d) <= 10:
		if strings.HasPrefix(d, "7") || strings.HasPrefix(d, "1") {
			return "+254" + d
		}
		return "+254" + d[1:]
	default:
		return "+" + d
	}
}
