package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/pkg/apperrors"
	"github.com/tenacity/erp/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"invalid amount", apperrors.ErrInvalidAmount, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"wrapped not found", fmt.Errorf("get: %w", apperrors.ErrStudentNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"capacity", apperrors.ErrCapacityExceeded, http.StatusConflict, dto.ErrorCodeConflict},
		{"already allocated", apperrors.ErrAlreadyAllocated, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"forbidden", apperrors.NewForbiddenError("own record only"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := ErrorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestHandleAPIError_Body(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, apperrors.ErrCapacityExceeded)

	assert.Equal(t, http.StatusConflict, w.Code)
	var body struct {
		Error dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, dto.ErrorCodeConflict, body.Error.Code)
	assert.Equal(t, "room is at full capacity", body.Error.Message)
	assert.Equal(t, "CAPACITY_EXCEEDED", body.Error.Details)
}

func newSessionRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", TokenExp: time.Hour, TokenIssuer: "test"})
	m := NewAuthMiddleware(jwtService)

	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.GET("/admin", m.SessionRequired(), RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/me", m.SessionRequired(), RoleRequired(models.RoleStudent), func(c *gin.Context) {
		id, _ := StudentIDFrom(c)
		c.String(http.StatusOK, id)
	})
	return r, jwtService
}

func TestRoleGating(t *testing.T) {
	r, jwtService := newSessionRouter(t)
	adminToken, _, err := jwtService.GenerateToken(models.RoleAdmin, "")
	require.NoError(t, err)
	studentToken, _, err := jwtService.GenerateToken(models.RoleStudent, "s3")
	require.NoError(t, err)

	do := func(path, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, do("/admin", "Bearer "+adminToken).Code)
	assert.Equal(t, http.StatusForbidden, do("/admin", "Bearer "+studentToken).Code)
	assert.Equal(t, http.StatusUnauthorized, do("/admin", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do("/admin", "Bearer x.y.z").Code)

	w := do("/me", "Bearer "+studentToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s3", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/me?token="+studentToken, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBindJSON(t *testing.T) {
	require.NoError(t, RegisterValidators())

	type payload struct {
		Marks     float64 `json:"marks" binding:"percent"`
		StudentID string  `json:"studentId" binding:"required,studentid"`
	}

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var p payload
		if !BindJSON(c, &p) {
			return
		}
		c.Status(http.StatusOK)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, post(`{"marks":80,"studentId":"s1"}`).Code)

	w := post(`{"marks":120,"studentId":"s1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be between 0 and 100")

	w = post(`{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), string(dto.ErrorCodeInvalidRequest))
}
