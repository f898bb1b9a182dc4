package controllers

import (
	"net/http"

	"jamaluki-backend/services"
	"jamaluki-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func (rc ReviewController) GetSalonReviews(c *gin.Context) {
	salonID, ok := parseID(c, "id", "salon")
	if !ok {
		return
	}
	reviews, err := rc.Reviews.List(c.Request.Context(), salonID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (rc ReviewController) CreateReview(c *gin.Context) {
	var input services.CreateReviewInput
	if !bindJSON(c, &input) {
		return
	}
	review, err := rc.Reviews.Create(c.Request.Context(), input, utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
