package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	// Ping checks the database; nil skips the check.
	Ping func(ctx context.Context) error
}

func (hc HealthController) Check(c *gin.Context) {
	dbStatus := "ok"
	code := http.StatusOK
	if hc.Ping != nil {
		if err := hc.Ping(c.Request.Context()); err != nil {
			dbStatus = "unhealthy: " + err.Error()
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"db":        dbStatus,
	})
}
