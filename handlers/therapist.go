package handlers

import (
	"net/http"

	"harmony/models"
	"harmony/services/therapist"
	"harmony/utils"

	"github.com/gin-gonic/gin"
)

// TherapistHandler serves the therapist profile endpoints.
type TherapistHandler struct {
	Service therapist.TherapistService
}

func NewTherapistHandler(svc therapist.TherapistService) *TherapistHandler {
	return &TherapistHandler{Service: svc}
}

type therapistInput struct {
	Name          string                   `json:"name" binding:"required"`
	Age           int                      `json:"age"`
	Gender        string                   `json:"gender"`
	MaritalStatus string                   `json:"maritalStatus"`
	Specialty     string                   `json:"specialty"`
	Email         string                   `json:"email"`
	Phone         string                   `json:"phone"`
	Experience    string                   `json:"experience"`
	Education     string                   `json:"education"`
	Languages     []string                 `json:"languages"`
	Bio           string                   `json:"bio"`
	Availability  models.AvailabilityInput `json:"availability"`
}

func (in therapistInput) toModel() (*models.Therapist, error) {
	avail, err := in.Availability.Normalize()
	if err != nil {
		return nil, err
	}
	return &models.Therapist{
		Name:          in.Name,
		Age:           in.Age,
		Gender:        in.Gender,
		MaritalStatus: in.MaritalStatus,
		Specialty:     in.Specialty,
		Email:         in.Email,
		Phone:         in.Phone,
		Experience:    in.Experience,
		Education:     in.Education,
		Languages:     in.Languages,
		Bio:           in.Bio,
		Availability:  avail,
	}, nil
}

// CreateTherapist handles POST /api/therapists.
func (h *TherapistHandler) CreateTherapist(c *gin.Context) {
	var input therapistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	t, err := input.toModel()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid availability", err.Error())
		return
	}
	if err := h.Service.Create(c.Request.Context(), t); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create therapist", err.Error())
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GetTherapist handles GET /api/therapists/:id.
func (h *TherapistHandler) GetTherapist(c *gin.Context) {
	t, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "therapist not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTherapist handles PUT /api/therapists/:id.
func (h *TherapistHandler) UpdateTherapist(c *gin.Context) {
	var input therapistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	t, err := input.toModel()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid availability", err.Error())
		return
	}
	existing, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "therapist not found", err.Error())
		return
	}
	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt
	if err := h.Service.Update(c.Request.Context(), t); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update therapist", err.Error())
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTherapist handles DELETE /api/therapists/:id.
func (h *TherapistHandler) DeleteTherapist(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "therapist not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListTherapists handles GET /api/therapists.
func (h *TherapistHandler) ListTherapists(c *gin.Context) {
	therapists, err := h.Service.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list therapists", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"therapists": therapists})
}
