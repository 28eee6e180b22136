package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invenlab/inventory-api/internal/application"
	"github.com/invenlab/inventory-api/internal/infrastructure/memory"
	"github.com/invenlab/inventory-api/pkg/helpers"
	"github.com/invenlab/inventory-api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAuthRouter() *gin.Engine {
	db := memory.NewDB()
	logger := discardLogger()
	jwt := helpers.NewJWTManager("secret", "inventory-api", "inventory-clients", time.Hour)
	svc := application.NewAuthService(db.Users(), jwt, nil, nil, logger, "inventory-api", "http://localhost:3000", 30*time.Minute)
	h := NewAuthHandler(svc, logger)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type sessionEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Token     string  `json:"token"`
		ExpiresAt string  `json:"expiresAt"`
		User      UserDTO `json:"user"`
	} `json:"data"`
}

// Registration answers with a usable session, not just the profile: the
// client must not need a follow-up login call.
func TestRegisterRespondsWithSession(t *testing.T) {
	r := newAuthRouter()

	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"email":    "ana@example.com",
		"password": "secret1",
		"fullName": "Ana Torres",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var env sessionEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Data.Token)
	assert.NotEmpty(t, env.Data.ExpiresAt)
	assert.Equal(t, "ana@example.com", env.Data.User.Email)
	assert.Equal(t, []string{"User"}, env.Data.User.Roles)
}

func TestRegisterDuplicateEmailIsBadRequest(t *testing.T) {
	r := newAuthRouter()

	payload := gin.H{"email": "ana@example.com", "password": "secret1", "fullName": "Ana"}
	first := doJSON(t, r, http.MethodPost, "/auth/register", payload)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, r, http.MethodPost, "/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, second.Code)
}
