package middleware

import (
	"net/http"
	"strings"

	"agroweb-bff/models"
	"agroweb-bff/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware validates the bearer token and loads the backing session
// row. The session row is the owner of the cart identifier and display
// name; handlers read them from the gin context, never from anywhere else.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		var session models.Session
		if err := db.Where("id = ?", claims.SessionID).First(&session).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
			c.Abort()
			return
		}
		if session.Expired() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			c.Abort()
			return
		}

		c.Set("session_id", session.ID)
		c.Set("user_document", session.UserDocument)
		c.Set("doc_type", session.DocType)
		c.Set("cart_id", session.CartID)
		c.Set("user_name", session.UserName)
		c.Next()
	}
}
