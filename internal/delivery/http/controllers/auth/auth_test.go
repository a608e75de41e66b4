package auth

import (
	"CourseFlow/internal/models"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLog struct{}

func (nopLog) Debug(msg string, args ...any)               {}
func (nopLog) Info(msg string, args ...any)                {}
func (nopLog) Warn(msg string, args ...any)                {}
func (nopLog) Error(msg string, args ...any)               {}
func (nopLog) ErrorErr(msg string, err error, args ...any) {}
func (nopLog) Fatal(msg string, args ...any)               {}
func (nopLog) FatalErr(msg string, err error, args ...any) {}

type fakeAuthService struct {
	created *models.User
}

func (f *fakeAuthService) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = uuid.New()
	f.created = &user
	return &user, nil
}

func (f *fakeAuthService) LoginUser(ctx context.Context, username, password string) (string, string, error) {
	return "", "", nil
}

func (f *fakeAuthService) ParseToken(ctx context.Context, token string) (*jwt.Token, error) {
	return nil, nil
}

func (f *fakeAuthService) IsAccessToken(ctx context.Context, token *jwt.Token) bool {
	return true
}

func (f *fakeAuthService) AccessClaims(ctx context.Context, token string) (uuid.UUID, []string, error) {
	return uuid.Nil, nil, nil
}

func (f *fakeAuthService) User(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f.created, nil
}

func (f *fakeAuthService) RefreshTokens(ctx context.Context, token string) (*models.TokenPair, error) {
	return nil, nil
}

func registerRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(nopLog{}, svc)
	r.POST("/register", h.Register)
	return r
}

func postRegister(t *testing.T, r *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterDefaultsToLearnerRole(t *testing.T) {
	svc := &fakeAuthService{}
	r := registerRouter(svc)

	w := postRegister(t, r, map[string]any{
		"username": "sam",
		"password": "secret1",
		"email":    "sam@example.com",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, []string{models.LearnerRole}, svc.created.Roles)
}

func TestRegisterAcceptsInstructorRole(t *testing.T) {
	svc := &fakeAuthService{}
	r := registerRouter(svc)

	w := postRegister(t, r, map[string]any{
		"username": "sam",
		"password": "secret1",
		"email":    "sam@example.com",
		"role":     []string{models.InstructorRole},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, []string{models.InstructorRole}, svc.created.Roles)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := &fakeAuthService{}
	r := registerRouter(svc)

	w := postRegister(t, r, map[string]any{
		"username": "sam",
		"password": "secret1",
		"email":    "sam@example.com",
		"role":     []string{models.AdminRole},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.created, "rejected registration must not reach the service")
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := &fakeAuthService{}
	r := registerRouter(svc)

	w := postRegister(t, r, map[string]any{
		"username": "sam",
		"password": "secret1",
		"email":    "sam@example.com",
		"role":     []string{"superuser"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.created)
}
