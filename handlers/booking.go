package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"harmony/models"
	"harmony/services/scheduling"
	"harmony/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// BookingHandler serves the slot listing and booking endpoints.
type BookingHandler struct {
	Engine scheduling.SchedulingEngine
	Cache  *redis.Client
	Logger *zap.Logger
}

func NewBookingHandler(engine scheduling.SchedulingEngine, cache *redis.Client, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Engine: engine, Cache: cache, Logger: logger}
}

// GetAvailableSlots handles GET /api/slots. Query params: therapistId (required),
// date (required, YYYY-MM-DD), duration (minutes, required), patientId,
// granularity (minutes, optional).
func (h *BookingHandler) GetAvailableSlots(c *gin.Context) {
	therapistID := c.Query("therapistId")
	date := c.Query("date")
	if therapistID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "therapistId and date are required")
		return
	}
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "duration must be an integer")
		return
	}
	granularity, _ := strconv.Atoi(c.DefaultQuery("granularity", "0"))
	patientID := c.Query("patientId")

	// Short-lived cache keeps repeated calendar views off the database.
	cacheKey := fmt.Sprintf("%s%s:%s:%s:%d:%d", utils.SlotCachePrefix, therapistID, patientID, date, duration, granularity)
	if h.Cache != nil {
		cacheCtx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
		cached, err := h.Cache.Get(cacheCtx, cacheKey).Result()
		cancel()
		if err == nil {
			var responses []models.SlotResponse
			if err := json.Unmarshal([]byte(cached), &responses); err == nil {
				c.JSON(http.StatusOK, gin.H{"slots": responses, "cached": true})
				return
			}
		}
	}

	slots, err := h.Engine.AvailableSlots(c.Request.Context(), scheduling.SlotRequest{
		TherapistID:        therapistID,
		PatientID:          patientID,
		Date:               date,
		DurationMinutes:    duration,
		GranularityMinutes: granularity,
	})
	if err != nil {
		h.respondSchedulingError(c, err)
		return
	}

	responses := make([]models.SlotResponse, 0, len(slots))
	for _, s := range slots {
		responses = append(responses, s.ToResponse())
	}

	if h.Cache != nil {
		if data, err := json.Marshal(responses); err == nil {
			cacheCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			_ = h.Cache.Set(cacheCtx, cacheKey, data, utils.SlotCacheTTL).Err()
			cancel()
		}
	}

	c.JSON(http.StatusOK, gin.H{"slots": responses})
}

// bookSessionInput is the POST /api/sessions request body.
type bookSessionInput struct {
	PatientID   string   `json:"patientId" binding:"required"`
	TherapistID string   `json:"therapistId" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Start       string   `json:"start" binding:"required"`
	End         string   `json:"end" binding:"required"`
	Notes       string   `json:"notes"`
	Channels    []string `json:"channels"`
}

// BookSession handles POST /api/sessions.
func (h *BookingHandler) BookSession(c *gin.Context) {
	var input bookSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	start, err := models.ParseClock(input.Start)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	end, err := models.ParseClock(input.End)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	channels := make([]models.Channel, 0, len(input.Channels))
	for _, ch := range input.Channels {
		channels = append(channels, models.Channel(ch))
	}

	result, err := h.Engine.BookSession(c.Request.Context(), scheduling.BookingRequest{
		PatientID:   input.PatientID,
		TherapistID: input.TherapistID,
		Date:        input.Date,
		Start:       start,
		End:         end,
		Notes:       input.Notes,
		Channels:    channels,
	})
	if err != nil {
		h.respondSchedulingError(c, err)
		return
	}

	// Drop cached slot listings touching either party so the booked slot
	// disappears immediately.
	h.invalidateSlotCache(input.TherapistID, input.PatientID)

	c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) invalidateSlotCache(therapistID, patientID string) {
	if h.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for _, pattern := range []string{
		utils.SlotCachePrefix + therapistID + ":*",
		utils.SlotCachePrefix + "*:" + patientID + ":*",
	} {
		keys, err := h.Cache.Keys(ctx, pattern).Result()
		if err != nil {
			continue
		}
		if len(keys) > 0 {
			_ = h.Cache.Del(ctx, keys...).Err()
		}
	}
}

// respondSchedulingError maps engine error codes onto HTTP statuses.
func (h *BookingHandler) respondSchedulingError(c *gin.Context, err error) {
	switch {
	case scheduling.HasCode(err, scheduling.CodeInvalidDuration):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	case scheduling.HasCode(err, scheduling.CodeSlotUnavailable):
		utils.JSONError(c, http.StatusConflict, "slot no longer available", err.Error())
	case scheduling.HasCode(err, scheduling.CodeConflictCheckUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, "scheduling temporarily unavailable", err.Error())
	default:
		h.Logger.Error("Unexpected scheduling failure", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "an unexpected error occurred")
	}
}
