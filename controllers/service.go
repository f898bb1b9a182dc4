// controllers/service.go
package controllers

import (
	"net/http"

	"jamaluki-backend/models"
	"jamaluki-backend/services"
	"jamaluki-backend/utils"

	"github.com/gin-gonic/gin"
)

// ServiceController serves the category taxonomy and salon services.
type ServiceController struct {
	Catalog *services.CatalogService
}

func (sc ServiceController) GetServiceCategories(c *gin.Context) {
	categories, err := sc.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetSalonServices lists the services of the salon in the path.
func (sc ServiceController) GetSalonServices(c *gin.Context) {
	salonID, ok := parseID(c, "id", "salon")
	if !ok {
		return
	}
	list, err := sc.Catalog.ListServices(c.Request.Context(), salonID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (sc ServiceController) CreateService(c *gin.Context) {
	var input services.CreateServiceInput
	if !bindJSON(c, &input) {
		return
	}
	service, err := sc.Catalog.CreateService(c.Request.Context(), input, utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (sc ServiceController) UpdateService(c *gin.Context) {
	id, ok := parseID(c, "id", "service")
	if !ok {
		return
	}
	var patch models.ServicePatch
	if !bindJSON(c, &patch) {
		return
	}
	service, err := sc.Catalog.UpdateService(c.Request.Context(), id, patch, utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (sc ServiceController) DeleteService(c *gin.Context) {
	id, ok := parseID(c, "id", "service")
	if !ok {
		return
	}
	if err := sc.Catalog.DeleteService(c.Request.Context(), id, utils.CallerFrom(c)); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
