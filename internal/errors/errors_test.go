package errors

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(accept string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)
	r.SetHTMLTemplate(template.Must(template.New(ErrorTemplate).Parse(`{{.Status}} {{.Message}}`)))
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if accept != "" {
		c.Request.Header.Set("Accept", accept)
	}
	return c, w
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"text/html,application/xhtml+xml,*/*;q=0.8", false},
		{"application/json", true},
		{"*/*", false},
	}
	for _, tt := range tests {
		c, _ := newContext(tt.accept)
		assert.Equal(t, tt.want, WantsJSON(c), "accept %q", tt.accept)
	}
}

func TestRespondWithError_JSON(t *testing.T) {
	c, w := newContext("application/json")

	NotFound(c, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeNotFound, body.Code)
	assert.Equal(t, "Resource not found", body.Message)
}

func TestRespondWithError_HTML(t *testing.T) {
	c, w := newContext("text/html")

	Forbidden(c, "Not yours")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, "403 Not yours", w.Body.String())
}

func TestHelpers_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*gin.Context)
		code int
	}{
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "") }, http.StatusUnauthorized},
		{"credentials", func(c *gin.Context) { InvalidCredentials(c, "bad") }, http.StatusUnauthorized},
		{"bad request", func(c *gin.Context) { BadRequest(c, "") }, http.StatusBadRequest},
		{"internal", func(c *gin.Context) { InternalError(c, "") }, http.StatusInternalServerError},
		{"unavailable", func(c *gin.Context) { ServiceUnavailable(c, "") }, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext("application/json")
			tt.fn(c)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
