package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getStatus godoc
// @Summary Show the status of the server
// @Description Reports the service name and whether it is up.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"service": "pfa-backend",
		"status":  "ok",
	})
}

// registerStatusRoutes registers the unauthenticated root status route
func registerStatusRoutes(r *gin.Engine) {
	r.GET("/", getStatus)
}
