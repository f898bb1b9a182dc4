package controllers

import (
	"net/http"
	"strconv"

	"jamaluki-backend/services"
	"jamaluki-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dashboard *services.DashboardService
}

func (dc DashboardController) GetDashboardOverview(c *gin.Context) {
	salonID, err := strconv.ParseUint(c.Query("salonId"), 10, 64)
	if err != nil || salonID == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "salonId query parameter is required")
		return
	}

	overview, err := dc.Dashboard.Overview(c.Request.Context(), uint(salonID), utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
