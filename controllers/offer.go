package controllers

import (
	"net/http"

	"jamaluki-backend/models"
	"jamaluki-backend/services"
	"jamaluki-backend/utils"

	"github.com/gin-gonic/gin"
)

type OfferController struct {
	Offers *services.OfferService
}

func (oc OfferController) GetSpecialOffers(c *gin.Context) {
	offers, err := oc.Offers.List(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (oc OfferController) GetSalonSpecialOffers(c *gin.Context) {
	salonID, ok := parseID(c, "id", "salon")
	if !ok {
		return
	}
	offers, err := oc.Offers.ListForSalon(c.Request.Context(), salonID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (oc OfferController) CreateSpecialOffer(c *gin.Context) {
	var input services.CreateSpecialOfferInput
	if !bindJSON(c, &input) {
		return
	}
	offer, err := oc.Offers.Create(c.Request.Context(), input, utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (oc OfferController) UpdateSpecialOffer(c *gin.Context) {
	id, ok := parseID(c, "id", "special offer")
	if !ok {
		return
	}
	var patch models.SpecialOfferPatch
	if !bindJSON(c, &patch) {
		return
	}
	offer, err := oc.Offers.Update(c.Request.Context(), id, patch, utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}
