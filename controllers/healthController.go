package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping is the gateway's liveness probe.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
