package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"agroweb-bff/cartview"
	"agroweb-bff/clients"
	"agroweb-bff/models"
	"agroweb-bff/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthHandler signs users in and out. Credentials never stay here: the
// users service verifies them, the carrito service owns the cart, and the
// only local state is the session row binding the two.
type AuthHandler struct {
	DB    *gorm.DB
	Users *clients.UsersClient
	Carts *clients.CartClient
	Views *cartview.Registry
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		FirstName      string `json:"first_name" binding:"required"`
		SurName        string `json:"sur_name" binding:"required"`
		Email          string `json:"email" binding:"required,email"`
		Password       string `json:"password" binding:"required,min=8"`
		TypeDocument   string `json:"type_document" binding:"required"`
		NumberDocument string `json:"number_document" binding:"required"`
		Username       string `json:"username"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	username := req.Username
	if username == "" {
		username = strings.Split(req.Email, "@")[0]
	}

	user, err := h.Users.Register(c.Request.Context(), clients.RegisterUserRequest{
		FirstName:      req.FirstName,
		SurName1:       req.SurName,
		Email:          req.Email,
		TypeDocument:   req.TypeDocument,
		NumberDocument: req.NumberDocument,
		HashPassword:   req.Password,
		Username:       username,
	})
	if err != nil {
		var se *clients.ServerError
		if errors.As(err, &se) && se.Status == http.StatusConflict {
			c.JSON(http.StatusConflict, gin.H{"error": "Email or document already registered"})
			return
		}
		log.Printf("Register: users service failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Registration service unavailable"})
		return
	}

	// New identity, new cart. The carrito service is the issuer of the cart
	// session identifier; we only store what it hands back.
	cartID, err := h.Carts.CreateCart(c.Request.Context(), req.NumberDocument, req.TypeDocument)
	if err != nil {
		log.Printf("Register: cart creation failed for %s: %v", req.NumberDocument, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not create a cart for the new account"})
		return
	}

	h.createSession(c, http.StatusCreated, user.FirstName+" "+user.SurName1, req.NumberDocument, req.TypeDocument, cartID)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, clients.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Printf("Login: users service failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Authentication service unavailable"})
		return
	}

	cartID, err := h.Carts.GetCartID(c.Request.Context(), user.NumberDocument, user.TypeDocument)
	if err != nil {
		// A missing cart must not lock a user out; the cart view will report
		// its error state until a cart exists for this identity.
		if clients.IsNotFound(err) {
			log.Printf("Login: no cart for %s/%s", user.TypeDocument, user.NumberDocument)
			cartID = ""
		} else {
			log.Printf("Login: cart id lookup failed for %s: %v", user.NumberDocument, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Cart service unavailable"})
			return
		}
	}

	h.createSession(c, http.StatusOK, user.FirstName+" "+user.SurName1, user.NumberDocument, user.TypeDocument, cartID)
}

func (h *AuthHandler) createSession(c *gin.Context, status int, userName, userDocument, docType, cartID string) {
	session := models.Session{
		ID:           uuid.New(),
		UserDocument: userDocument,
		DocType:      docType,
		CartID:       cartID,
		UserName:     userName,
		ExpiresAt:    time.Now().Add(utils.SessionLifetime),
	}
	if err := h.DB.Create(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	token, err := utils.GenerateToken(session.ID, userDocument, docType, userName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(status, gin.H{
		"token": token,
		"user": gin.H{
			"name":            userName,
			"user_document":   userDocument,
			"doc_type":        docType,
			"cart_id":         cartID,
			"session_expires": session.ExpiresAt,
		},
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var session models.Session
	if err := h.DB.Where("id = ?", sessionID).First(&session).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":            session.UserName,
		"user_document":   session.UserDocument,
		"doc_type":        session.DocType,
		"cart_id":         session.CartID,
		"session_expires": session.ExpiresAt,
	})
}

// Logout clears the session row and the in-memory cart view. The issued
// token is useless afterwards: the middleware requires the row.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := sessionID.(uuid.UUID)
	if err := h.DB.Where("id = ?", id).Delete(&models.Session{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}
	h.Views.Drop(id)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
