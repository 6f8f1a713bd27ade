package handlers

import (
	"net/http"

	"github.com/Pratik-911/skillswap/models"
	appointmentService "github.com/Pratik-911/skillswap/services/appointment"
	"github.com/Pratik-911/skillswap/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the appointment lifecycle endpoints.
type AppointmentHandler struct {
	Service appointmentService.AppointmentService
}

// NewAppointmentHandler creates an AppointmentHandler backed by the given service.
func NewAppointmentHandler(svc appointmentService.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

// CreateHandler handles POST /api/appointments. The requester books as learner.
func (h *AppointmentHandler) CreateHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in models.AppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.Create(c.Request.Context(), userID, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// ListHandler handles GET /api/appointments. Supports status and type
// (teaching or learning) query filters.
func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	appts, err := h.Service.ListForUser(c.Request.Context(), userID, c.Query("status"), c.Query("type"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// GetHandler handles GET /api/appointments/:id.
func (h *AppointmentHandler) GetHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	appt, err := h.Service.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// UpdateStatusHandler handles PUT /api/appointments/:id/status.
func (h *AppointmentHandler) UpdateStatusHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in models.StatusUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), userID, in.Status, in.Notes)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// SubmitFeedbackHandler handles PUT /api/appointments/:id/feedback.
func (h *AppointmentHandler) SubmitFeedbackHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in models.FeedbackInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.SubmitFeedback(c.Request.Context(), c.Param("id"), userID, in.Rating, in.Feedback)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}
