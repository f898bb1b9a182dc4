package controllers

import (
	"net/http"

	"jamaluki-backend/models"
	"jamaluki-backend/services"
	"jamaluki-backend/utils"

	"github.com/gin-gonic/gin"
)

type SalonController struct {
	Salons *services.SalonService
}

func (sc SalonController) GetSalons(c *gin.Context) {
	salons, err := sc.Salons.List(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, salons)
}

func (sc SalonController) GetSalon(c *gin.Context) {
	id, ok := parseID(c, "id", "salon")
	if !ok {
		return
	}
	salon, err := sc.Salons.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, salon)
}

func (sc SalonController) CreateSalon(c *gin.Context) {
	var input services.CreateSalonInput
	if !bindJSON(c, &input) {
		return
	}
	salon, err := sc.Salons.Create(c.Request.Context(), input, utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, salon)
}

func (sc SalonController) UpdateSalon(c *gin.Context) {
	id, ok := parseID(c, "id", "salon")
	if !ok {
		return
	}
	var patch models.SalonPatch
	if !bindJSON(c, &patch) {
		return
	}
	salon, err := sc.Salons.Update(c.Request.Context(), id, patch, utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, salon)
}
