package handlers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"stock-trading-platform/internal/models"
	"stock-trading-platform/internal/services"
)

const tokenTTL = 2 * time.Hour

// userDirectory is the slice of AuthService the handler uses.
type userDirectory interface {
	Register(user *models.User) error
	Authenticate(username, password string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}

type AuthHandler struct {
	authService userDirectory
	jwtSecret   []byte
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-jwt-secret-change-in-production"
	}
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(secret),
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	UserType string `json:"userType" binding:"required,oneof=customer admin"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		UserType: req.UserType,
	}
	if err := h.authService.Register(user); err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   token,
		"user":    user,
	})
}

// Login accepts either HTTP Basic credentials or a JSON body and returns
// a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
		username, password = req.Username, req.Password
	}

	user, err := h.authService.Authenticate(username, password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"token":     token,
		"expiresIn": int(tokenTTL.Seconds()),
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.Username,
		"userType": user.UserType,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(h.jwtSecret)
}

// AuthMiddleware authenticates the request with either a bearer token or
// HTTP Basic credentials, loads the user document and stores it in the
// gin context.
func (h *AuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Authorization header required")
			return
		}

		var user *models.User
		var err error
		switch {
		case strings.HasPrefix(header, "Basic "):
			username, password, ok := c.Request.BasicAuth()
			if !ok {
				abortError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Malformed Basic credentials")
				return
			}
			user, err = h.authService.Authenticate(username, password)
		default:
			tokenString := strings.TrimPrefix(header, "Bearer ")
			username, perr := h.parseToken(tokenString)
			if perr != nil {
				abortError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
				return
			}
			user, err = h.authService.GetByUsername(username)
		}
		if err != nil {
			respondServiceError(c, err)
			return
		}

		// A token outlives deactivation; the lookup itself no longer
		// filters on the active flag.
		if !user.IsActive {
			abortError(c, http.StatusForbidden, "ACCOUNT_INACTIVE", "User account is inactive")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAdmin gates a route to admin users. Must run after
// AuthMiddleware.
func (h *AuthHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
			return
		}
		if !user.IsAdmin() {
			abortError(c, http.StatusForbidden, "ADMIN_ACCESS_REQUIRED", "Admin access required")
			return
		}
		c.Next()
	}
}

func (h *AuthHandler) parseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return h.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sub, nil
}
