package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/LoreKeep/models"
	"github.com/LoreKeep/services"
	"github.com/gin-gonic/gin"
)

// GetCommunityConfig returns the community's channel and role wiring.
func GetCommunityConfig(c *gin.Context) {
	communityID, err := strconv.ParseInt(c.Param("community_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID", "details": err.Error()})
		return
	}

	config, err := services.GetConfig(communityID)
	if err != nil {
		log.Printf("Failed to fetch config: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch configuration"})
		return
	}

	if config == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No configuration found. Run setup commands to configure the bot."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": config})
}

// UpdateCommunityConfig applies a partial configuration write. Fields absent
// from the body keep their current values; a first write creates the row.
func UpdateCommunityConfig(c *gin.Context) {
	communityID, err := strconv.ParseInt(c.Param("community_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID", "details": err.Error()})
		return
	}

	var update models.ConfigUpdate
	if err := c.BindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := services.SetConfig(communityID, update); err != nil {
		log.Printf("Failed to update config: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update configuration"})
		return
	}

	config, err := services.GetConfig(communityID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Configuration updated successfully"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Configuration updated successfully",
		"config":  config,
	})
}
