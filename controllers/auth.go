package controllers

import (
	"net/http"

	"jamaluki-backend/models"
	"jamaluki-backend/services"
	"jamaluki-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func (ac AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	user, token, err := ac.Auth.Register(c.Request.Context(), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	ac.setTokenCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    user,
	})
}

func (ac AuthController) Login(c *gin.Context) {
	var input services.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	user, token, err := ac.Auth.Login(c.Request.Context(), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	ac.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout clears the token cookie. Tokens are stateless, so a copy held by
// the client stays valid until it expires.
func (ac AuthController) Logout(c *gin.Context) {
	c.SetCookie(utils.TokenCookie, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (ac AuthController) Me(c *gin.Context) {
	user, err := ac.Auth.Me(c.Request.Context(), utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ac AuthController) UpdateProfile(c *gin.Context) {
	var patch models.UserPatch
	if !bindJSON(c, &patch) {
		return
	}

	user, err := ac.Auth.UpdateProfile(c.Request.Context(), patch, utils.CallerFrom(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ac AuthController) setTokenCookie(c *gin.Context, token string) {
	maxAge := int(ac.Auth.TokenTTL().Seconds())
	c.SetCookie(utils.TokenCookie, token, maxAge, "/", "", true, true)
}
