package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/LoreKeep/models"
	"github.com/LoreKeep/services"
	"github.com/gin-gonic/gin"
)

// SubmitLore handles a completed lore submission modal. The submission is
// created pending and sent to the verification channel.
func SubmitLore(c *gin.Context) {
	member := c.MustGet("currentMember").(models.Member)

	communityID, err := strconv.ParseInt(c.Param("community_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID", "details": err.Error()})
		return
	}

	var submissionData struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.BindJSON(&submissionData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if len(submissionData.Title) > 255 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title exceeds maximum length of 255 characters"})
		return
	}

	submissionID, err := services.SubmitLore(communityID, member.Member_ID, submissionData.Title, submissionData.Content)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":          "Your lore submission has been sent to the verification channel!",
		"loreSubmissionId": submissionID,
	})
}

// DecideLoreSubmission handles a verifier's button click on a pending lore
// submission. The decision is decoded once here; downstream code only sees
// the enum.
func DecideLoreSubmission(c *gin.Context) {
	member := c.MustGet("currentMember").(models.Member)

	submissionID, err := strconv.Atoi(c.Param("submission_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID", "details": err.Error()})
		return
	}

	var decisionData struct {
		Decision models.Decision `json:"decision" binding:"required"`
	}
	if err := c.BindJSON(&decisionData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if !decisionData.Decision.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Decision must be accept or reject"})
		return
	}

	if err := services.DecideLore(submissionID, member, decisionData.Decision); err != nil {
		respondWorkflowError(c, err)
		return
	}

	switch decisionData.Decision {
	case models.DecisionAccept:
		c.JSON(http.StatusOK, gin.H{"message": "Lore submission accepted and integrated!"})
	case models.DecisionReject:
		c.JSON(http.StatusOK, gin.H{"message": "Lore submission rejected."})
	}
}

// GetCurrentLore returns the community's lore document.
func GetCurrentLore(c *gin.Context) {
	communityID, err := strconv.ParseInt(c.Param("community_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID", "details": err.Error()})
		return
	}

	lore, err := services.CurrentLore(communityID)
	if err != nil {
		log.Printf("Failed to fetch lore: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lore"})
		return
	}
	if lore == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "This community has no lore yet."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lore": lore})
}

// GetLoreHistory returns the community's archived lore versions, newest
// first.
func GetLoreHistory(c *gin.Context) {
	communityID, err := strconv.ParseInt(c.Param("community_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID", "details": err.Error()})
		return
	}

	history, err := services.LoreHistory(communityID)
	if err != nil {
		log.Printf("Failed to fetch lore history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lore history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// GetPendingLoreSubmissions returns the community's undecided lore
// submissions, oldest first.
func GetPendingLoreSubmissions(c *gin.Context) {
	communityID, err := strconv.ParseInt(c.Param("community_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID", "details": err.Error()})
		return
	}

	submissions, err := services.PendingLoreSubmissions(communityID)
	if err != nil {
		log.Printf("Failed to fetch pending lore submissions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}
