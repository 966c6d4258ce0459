package notification

import (
	"testing"

	"harmony/models"

	"github.com/stretchr/testify/assert"
)

func TestSessionEmailEscapesUserContent(t *testing.T) {
	notice := models.SessionNotice{
		SessionID:     "sess-1",
		Recipient:     models.Recipient{Name: `Brian <b>"O"</b>`, Email: "brian@example.com"},
		TherapistName: "Dr. <script>alert(1)</script>",
		PatientName:   `Brian <b>"O"</b>`,
		Date:          "Monday, March 2, 2026",
		StartTime:     "10:00",
		EndTime:       "10:30",
		Notes:         `<img src=x onerror=alert(1)> follow-up`,
	}

	body := sessionEmailHTML(notice)

	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<img src=x")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "&lt;img src=x onerror=alert(1)&gt; follow-up")
	assert.Contains(t, body, "Brian &lt;b&gt;&#34;O&#34;&lt;/b&gt;")
}

func TestUnconfiguredEmailProviderReportsUnavailable(t *testing.T) {
	p := NewSendGridEmailProvider("", "noreply@example.com", "Harmony")
	assert.False(t, p.IsAvailable())

	p = NewSendGridEmailProvider("SG.key", "", "Harmony")
	assert.False(t, p.IsAvailable())

	p = NewSendGridEmailProvider("SG.key", "noreply@example.com", "Harmony")
	assert.True(t, p.IsAvailable())
}
