package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/LoreKeep/models"
	"github.com/LoreKeep/services"
	"github.com/gin-gonic/gin"
)

// SubmitMoment handles a completed moment submission modal.
func SubmitMoment(c *gin.Context) {
	member := c.MustGet("currentMember").(models.Member)

	communityID, err := strconv.ParseInt(c.Param("community_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID", "details": err.Error()})
		return
	}

	var submissionData struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.BindJSON(&submissionData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	submissionID, err := services.SubmitMoment(communityID, member.Member_ID, submissionData.Content)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":            "Your moment has been submitted for verification!",
		"momentSubmissionId": submissionID,
	})
}

// DecideMomentSubmission handles a verifier's button click on a pending
// moment submission.
func DecideMomentSubmission(c *gin.Context) {
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

	if err := services.DecideMoment(submissionID, member, decisionData.Decision); err != nil {
		respondWorkflowError(c, err)
		return
	}

	switch decisionData.Decision {
	case models.DecisionAccept:
		c.JSON(http.StatusOK, gin.H{"message": "Moment accepted and added to the archive!"})
	case models.DecisionReject:
		c.JSON(http.StatusOK, gin.H{"message": "Moment submission rejected."})
	}
}

// GetMoments lists the community's moments, newest first, paged by limit and
// offset.
func GetMoments(c *gin.Context) {
	communityID, err := strconv.ParseInt(c.Param("community_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID", "details": err.Error()})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	moments, err := services.ListMoments(communityID, limit, offset)
	if err != nil {
		log.Printf("Failed to fetch moments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch moments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"moments": moments})
}

// GetRandomMoment returns one uniformly chosen moment from the community's
// archive.
func GetRandomMoment(c *gin.Context) {
	communityID, err := strconv.ParseInt(c.Param("community_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID", "details": err.Error()})
		return
	}

	moment, err := services.RandomMoment(communityID)
	if err != nil {
		log.Printf("Failed to fetch random moment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch a moment"})
		return
	}
	if moment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "This community has no moments yet."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"moment": moment})
}

// GetPendingMomentSubmissions returns the community's undecided moment
// submissions, oldest first.
func GetPendingMomentSubmissions(c *gin.Context) {
	communityID, err := strconv.ParseInt(c.Param("community_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID", "details": err.Error()})
		return
	}

	submissions, err := services.PendingMomentSubmissions(communityID)
	if err != nil {
		log.Printf("Failed to fetch pending moment submissions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}
