package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckAdmin gates community configuration routes. The member is already
// authenticated at this point, so a missing admin flag is a 403, not a 401.
func CheckAdmin(c *gin.Context) {
	isAdmin := c.MustGet("admin").(bool)

	if !isAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Community configuration requires admin rights"})
		return
	}
}
