package apperrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := BadGateway("Payment gateway unavailable", cause)

	assert.Equal(t, "Payment gateway unavailable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.JSONEq(t, `{"code":502,"message":"Payment gateway unavailable"}`, err.JSON())
}

func TestErrorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(BadRequest("Invalid request", nil)) })
	r.GET("/raw", func(c *gin.Context) { _ = c.Error(errors.New("pq: deadlock detected")) })
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "fine") })

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/app", http.StatusBadRequest, `{"error":"Invalid request"}`},
		{"/raw", http.StatusInternalServerError, `{"error":"Internal server error"}`},
		{"/ok", http.StatusOK, ""},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, tc.path)
		if tc.body != "" {
			assert.JSONEq(t, tc.body, w.Body.String(), tc.path)
		}
	}
}
