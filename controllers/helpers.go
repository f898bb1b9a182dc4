package controllers

import (
	"net/http"
	"strconv"

	"jamaluki-backend/utils"

	"github.com/gin-gonic/gin"
)

// parseID reads a positive integer path parameter, responding 400 when it
// is malformed.
func parseID(c *gin.Context, param, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+resource+" ID format")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return false
	}
	return true
}
