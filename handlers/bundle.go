// File: harmony/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth endpoints
	RegisterChurchHandler gin.HandlerFunc
	LoginChurchHandler    gin.HandlerFunc

	// Patient endpoints
	CreatePatientHandler gin.HandlerFunc
	GetPatientHandler    gin.HandlerFunc
	UpdatePatientHandler gin.HandlerFunc
	DeletePatientHandler gin.HandlerFunc
	ListPatientsHandler  gin.HandlerFunc

	// Therapist endpoints
	CreateTherapistHandler gin.HandlerFunc
	GetTherapistHandler    gin.HandlerFunc
	UpdateTherapistHandler gin.HandlerFunc
	DeleteTherapistHandler gin.HandlerFunc
	ListTherapistsHandler  gin.HandlerFunc

	// Scheduling endpoints
	GetAvailableSlotsHandler gin.HandlerFunc
	BookSessionHandler       gin.HandlerFunc

	// Session endpoints
	ListSessionsHandler        gin.HandlerFunc
	GetSessionHandler          gin.HandlerFunc
	CancelSessionHandler       gin.HandlerFunc
	CompleteSessionHandler     gin.HandlerFunc
	ResendNotificationsHandler gin.HandlerFunc
}
