package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"stock-trading-platform/internal/models"
)

func testAuthHandler() *AuthHandler {
	return &AuthHandler{jwtSecret: []byte("test-secret")}
}

func TestTokenRoundTrip(t *testing.T) {
	h := testAuthHandler()

	token, err := h.generateToken(&models.User{Username: "alice", UserType: models.RoleCustomer})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := h.parseToken(token)
	require.NoError(t, err)
	require.Equal(t, "alice", sub)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	h := testAuthHandler()

	_, err := h.parseToken("not-a-token")
	require.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	h := testAuthHandler()
	other := &AuthHandler{jwtSecret: []byte("a-different-secret")}

	token, err := other.generateToken(&models.User{Username: "mallory"})
	require.NoError(t, err)

	_, err = h.parseToken(token)
	require.Error(t, err)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := testAuthHandler()

	router := gin.New()
	router.GET("/secure", h.AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/secure", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "UNAUTHENTICATED")
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := testAuthHandler()

	router := gin.New()
	router.GET("/secure", h.AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer bogus.token.value")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

// stubDirectory serves canned users in place of the Mongo-backed
// AuthService.
type stubDirectory struct {
	user *models.User
	err  error
}

func (s *stubDirectory) Register(*models.User) error { return s.err }

func (s *stubDirectory) Authenticate(string, string) (*models.User, error) {
	return s.user, s.err
}

func (s *stubDirectory) GetByUsername(string) (*models.User, error) {
	return s.user, s.err
}

func TestAuthMiddlewareRejectsInactiveUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := testAuthHandler()
	h.authService = &stubDirectory{user: &models.User{
		Username: "alice",
		UserType: models.RoleCustomer,
		IsActive: false,
	}}

	token, err := h.generateToken(&models.User{Username: "alice", UserType: models.RoleCustomer})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/secure", h.AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "ACCOUNT_INACTIVE")
}

func TestAuthMiddlewareAcceptsActiveUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := testAuthHandler()
	h.authService = &stubDirectory{user: &models.User{
		Username: "alice",
		UserType: models.RoleCustomer,
		IsActive: true,
	}}

	token, err := h.generateToken(&models.User{Username: "alice", UserType: models.RoleCustomer})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/secure", h.AuthMiddleware(), func(c *gin.Context) {
		user, ok := currentUser(c)
		require.True(t, ok)
		require.Equal(t, "alice", user.Username)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := testAuthHandler()

	asUser := func(user *models.User) *httptest.ResponseRecorder {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set(currentUserKey, user)
		})
		router.GET("/admin", h.RequireAdmin(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
		return w
	}

	require.Equal(t, http.StatusOK, asUser(&models.User{Username: "root", UserType: models.RoleAdmin}).Code)

	w := asUser(&models.User{Username: "alice", UserType: models.RoleCustomer})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "ADMIN_ACCESS_REQUIRED")
}
