package handlers

import (
	"net/http"

	"harmony/models"
	"harmony/services/patient"
	"harmony/utils"

	"github.com/gin-gonic/gin"
)

// PatientHandler serves the patient profile endpoints.
type PatientHandler struct {
	Service patient.PatientService
}

func NewPatientHandler(svc patient.PatientService) *PatientHandler {
	return &PatientHandler{Service: svc}
}

// patientInput is the create/update request body. Availability arrives as
// day names and "HH:MM" windows and is normalized at this boundary.
type patientInput struct {
	Name          string                   `json:"name" binding:"required"`
	Age           int                      `json:"age"`
	Gender        string                   `json:"gender"`
	Email         string                   `json:"email"`
	Phone         string                   `json:"phone"`
	Occupation    string                   `json:"occupation"`
	Church        string                   `json:"church"`
	Concerns      string                   `json:"concerns"`
	PreferredDays models.AvailabilityInput `json:"preferredDays"`
}

func (in patientInput) toModel() (*models.Patient, error) {
	avail, err := in.PreferredDays.Normalize()
	if err != nil {
		return nil, err
	}
	return &models.Patient{
		Name:          in.Name,
		Age:           in.Age,
		Gender:        in.Gender,
		Email:         in.Email,
		Phone:         in.Phone,
		Occupation:    in.Occupation,
		Church:        in.Church,
		Concerns:      in.Concerns,
		PreferredDays: avail,
	}, nil
}

// CreatePatient handles POST /api/patients.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var input patientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	p, err := input.toModel()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid availability", err.Error())
		return
	}
	if err := h.Service.Create(c.Request.Context(), p); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create patient", err.Error())
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetPatient handles GET /api/patients/:id.
func (h *PatientHandler) GetPatient(c *gin.Context) {
	p, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "patient not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdatePatient handles PUT /api/patients/:id.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var input patientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	p, err := input.toModel()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid availability", err.Error())
		return
	}
	existing, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "patient not found", err.Error())
		return
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if err := h.Service.Update(c.Request.Context(), p); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update patient", err.Error())
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePatient handles DELETE /api/patients/:id.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "patient not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListPatients handles GET /api/patients. An optional ?q= filters by name.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	var (
		patients []models.Patient
		err      error
	)
	if q := c.Query("q"); q != "" {
		patients, err = h.Service.Search(c.Request.Context(), q)
	} else {
		patients, err = h.Service.List(c.Request.Context())
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list patients", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}
