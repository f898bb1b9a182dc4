package controllers

import (
	"net/http"

	"jamaluki-backend/models"
	"jamaluki-backend/services"
	"jamaluki-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateStatusInput struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
}

type AppointmentController struct {
	Appointments *services.AppointmentService
}

// GetAppointments lists the caller's bookings, or for a salon owner the
// appointments of every salon they own.
func (ac AppointmentController) GetAppointments(c *gin.Context) {
	appointments, err := ac.Appointments.ListForCaller(c.Request.Context(), utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (ac AppointmentController) GetAppointment(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return
	}
	detail, err := ac.Appointments.Get(c.Request.Context(), id, utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (ac AppointmentController) CreateAppointment(c *gin.Context) {
	var input services.CreateAppointmentInput
	if !bindJSON(c, &input) {
		return
	}
	appointment, err := ac.Appointments.Create(c.Request.Context(), input, utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

func (ac AppointmentController) UpdateAppointmentStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return
	}
	var input UpdateStatusInput
	if !bindJSON(c, &input) {
		return
	}
	appointment, err := ac.Appointments.SetStatus(c.Request.Context(), id, input.Status, utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}
