package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock-trading-platform/internal/services"
)

type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type UpdateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// GetUser returns a user's details. Admin or self.
func (h *UserHandler) GetUser(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return
	}
	username := c.Param("username")
	if !canAccess(actor, username) {
		abortError(c, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
		return
	}

	user, err := h.authService.GetByUsername(username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUser replaces the email and password of a user. Admin or self.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return
	}
	username := c.Param("username")
	if !canAccess(actor, username) {
		abortError(c, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := h.authService.UpdateDetails(username, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeactivateUser marks a user inactive rather than deleting the record.
// Admin or self.
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return
	}
	username := c.Param("username")
	if !canAccess(actor, username) {
		abortError(c, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
		return
	}

	if err := h.authService.Deactivate(username); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User '" + username + "' deactivated successfully"})
}

// ListUsers returns every user. Admin-only route.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// VerifyAdmin confirms the caller holds admin privileges; the RequireAdmin
// middleware does the actual check.
func (h *UserHandler) VerifyAdmin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Admin privileges verified"})
}
