package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/LoreKeep/models"
	"github.com/LoreKeep/services"
	"github.com/gin-gonic/gin"
)

const viewPageSize = 10

// OpenView starts a paginated browsing session (lore history or moments)
// and returns the first page. The session expires on its own after a period
// of inactivity; expiry never affects stored content.
func OpenView(c *gin.Context) {
	member := c.MustGet("currentMember").(models.Member)

	communityID, err := strconv.ParseInt(c.Param("community_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID", "details": err.Error()})
		return
	}

	var viewData struct {
		View string `json:"view" binding:"required"`
	}
	if err := c.BindJSON(&viewData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if viewData.View != "lore_history" && viewData.View != "moments" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "View must be lore_history or moments"})
		return
	}

	session := services.GetSessionStore().Create(communityID, member.Member_ID, viewData.View)

	page, err := viewPage(session)
	if err != nil {
		log.Printf("Failed to load view page: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load view"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session": session,
		"page":    page,
	})
}

// TurnViewPage moves an open session to the given page and returns its
// contents. A session that idled out is gone and the view must be reopened.
func TurnViewPage(c *gin.Context) {
	sessionID := c.Param("session_id")

	var pageData struct {
		Page *int `json:"page" binding:"required"`
	}
	if err := c.BindJSON(&pageData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	store := services.GetSessionStore()
	if !store.SetPage(sessionID, *pageData.Page) {
		c.JSON(http.StatusGone, gin.H{"error": "This view has expired. Open it again."})
		return
	}

	session, _ := store.Get(sessionID)
	page, err := viewPage(session)
	if err != nil {
		log.Printf("Failed to load view page: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
		"page":    page,
	})
}

func viewPage(session services.PageSession) (interface{}, error) {
	switch session.View {
	case "moments":
		return services.ListMoments(session.Community_ID, viewPageSize, session.Page*viewPageSize)
	case "lore_history":
		history, err := services.LoreHistory(session.Community_ID)
		if err != nil {
			return nil, err
		}
		start := session.Page * viewPageSize
		if start >= len(history) {
			return []models.LoreVersion{}, nil
		}
		end := start + viewPageSize
		if end > len(history) {
			end = len(history)
		}
		return history[start:end], nil
	}
	return nil, nil
}
