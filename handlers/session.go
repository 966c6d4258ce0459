package handlers

import (
	"net/http"

	"harmony/models"
	"harmony/services/session"
	"harmony/utils"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves the session listing and lifecycle endpoints.
type SessionHandler struct {
	Service session.SessionService
}

func NewSessionHandler(svc session.SessionService) *SessionHandler {
	return &SessionHandler{Service: svc}
}

// ListSessions handles GET /api/sessions?therapistId=...|patientId=...
// Exactly one of the two query params must be provided.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	therapistID := c.Query("therapistId")
	patientID := c.Query("patientId")

	switch {
	case therapistID != "" && patientID != "":
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "provide either therapistId or patientId, not both")
	case therapistID != "":
		sessions, err := h.Service.ListByTherapist(c.Request.Context(), therapistID)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to list sessions", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	case patientID != "":
		sessions, err := h.Service.ListByPatient(c.Request.Context(), patientID)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to list sessions", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	default:
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "therapistId or patientId is required")
	}
}

// GetSession handles GET /api/sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, s)
}

// CancelSession handles POST /api/sessions/:id/cancel.
func (h *SessionHandler) CancelSession(c *gin.Context) {
	if err := h.Service.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusConflict, "could not cancel session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.SessionCancelled})
}

// CompleteSession handles POST /api/sessions/:id/complete.
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	if err := h.Service.Complete(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusConflict, "could not complete session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.SessionCompleted})
}

// ResendNotifications handles POST /api/notifications/session. It re-runs
// the notification fan-out for an already-committed session.
func (h *SessionHandler) ResendNotifications(c *gin.Context) {
	var input struct {
		SessionID string   `json:"sessionId" binding:"required"`
		Channels  []string `json:"channels"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	channels := make([]models.Channel, 0, len(input.Channels))
	for _, ch := range input.Channels {
		channels = append(channels, models.Channel(ch))
	}

	report, err := h.Service.ResendNotifications(c.Request.Context(), input.SessionID, channels)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "could not resend notifications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": report})
}
