package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"github.com/yukikurage/task-tracker-api/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	tokens      services.TokenService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)

	tokens, err := services.NewJWTTokenService(testutil.TestSecret, 0)
	require.NoError(t, err)

	authService := services.NewAuthService(
		repository.NewUserRepository(db),
		services.NewBcryptHasher(bcrypt.MinCost),
		tokens,
	)
	handler := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
		tokens:      tokens,
	}
}

func postJSON(r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(env.router, "/auth/register", map[string]string{
		"email":    "new@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "User registered successfully", response.Message)
	assert.Equal(t, "new@example.com", response.User.Email)
	assert.NotZero(t, response.User.ID)
	assert.NotContains(t, w.Body.String(), "supersecret")
	assert.NotContains(t, w.Body.String(), "password")

	var stored models.User
	require.NoError(t, env.db.First(&stored, response.User.ID).Error)
	assert.NotEqual(t, "supersecret", stored.PasswordHash)
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	env := setupAuthTestEnv(t)
	payload := map[string]string{"email": "dup@example.com", "password": "pw1234"}

	require.Equal(t, http.StatusOK, postJSON(env.router, "/auth/register", payload).Code)

	w := postJSON(env.router, "/auth/register", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Registration failed", body.Error)
	assert.Equal(t, "User with this email already exists", body.Message)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	env := setupAuthTestEnv(t)

	cases := []struct {
		name    string
		payload map[string]string
		field   string
		message string
	}{
		{"missing email", map[string]string{"password": "pw"}, "email", "email is required"},
		{"malformed email", map[string]string{"email": "not-an-email", "password": "pw"}, "email", "Invalid email format"},
		{"long email", map[string]string{"email": strings.Repeat("a", 40) + "@example.com", "password": "pw"}, "email", "Email must be between 6 and 50 characters long"},
		{"missing password", map[string]string{"email": "a@b.com"}, "password", "password is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(env.router, "/auth/register", tc.payload)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var body apierrors.APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Validation failed", body.Error)
			require.NotEmpty(t, body.Errors)
			assert.Equal(t, tc.field, body.Errors[0].Field)
			assert.Equal(t, tc.message, body.Errors[0].Message)
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := postJSON(env.router, "/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)

	claims, err := env.tokens.ValidateToken(context.Background(), response.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	wrongPassword := postJSON(env.router, "/auth/login", map[string]string{
		"email": "existing@example.com", "password": "nope",
	})
	unknownEmail := postJSON(env.router, "/auth/login", map[string]string{
		"email": "ghost@example.com", "password": "supersecret",
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	malformed := httptest.NewRecorder()
	env.router.ServeHTTP(malformed, req)

	for _, w := range []*httptest.ResponseRecorder{wrongPassword, unknownEmail, malformed} {
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Login failed","message":"Invalid email or password"}`, w.Body.String())
	}
}
