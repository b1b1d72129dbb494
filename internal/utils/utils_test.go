package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker/internal/constants"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query  string
		page   int
		limit  int
		offset int
	}{
		{"", 1, constants.DefaultPageSize, 0},
		{"page=3&limit=10", 3, 10, 20},
		{"page=0&limit=10", 1, 10, 0},
		{"page=2&limit=100000", 2, constants.DefaultPageSize, constants.DefaultPageSize},
		{"page=abc&limit=-1", 1, constants.DefaultPageSize, 0},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/projects?"+tt.query, nil)

		params := GetPaginationParams(c)
		assert.Equal(t, tt.page, params.Page, tt.query)
		assert.Equal(t, tt.limit, params.Limit, tt.query)
		assert.Equal(t, tt.offset, params.Offset, tt.query)
	}
}

func TestPaginationResponse_Pages(t *testing.T) {
	assert.Equal(t, 1, PaginationResponse{Limit: 10, Total: 0}.Pages())
	assert.Equal(t, 1, PaginationResponse{Limit: 10, Total: 10}.Pages())
	assert.Equal(t, 2, PaginationResponse{Limit: 10, Total: 11}.Pages())
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret(32)
	require.NoError(t, err)
	b, err := GenerateSecret(32)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
