package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tenacity/erp/internal/app/models/dto"
)

func TestFormatINR(t *testing.T) {
	amount := decimal.RequireFromString("25000.5")
	assert.Equal(t, "₹25,000.50", FormatINR(amount, "en-IN"))
	assert.Equal(t, "INR 25,000.50", FormatINRCode(amount, "en-IN"))
	assert.Equal(t, "₹0.00", FormatINR(decimal.Zero, "not a locale!"))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("later", time.Minute))
}

func TestNewPaginationInfo(t *testing.T) {
	assert.Equal(t, dto.PaginationInfo{CurrentPage: 2, TotalPages: 3, PageSize: 4, TotalItems: 10}, NewPaginationInfo(10, 2, 4))
	assert.Equal(t, dto.PaginationInfo{CurrentPage: 1, TotalPages: 1, PageSize: 10, TotalItems: 0}, NewPaginationInfo(0, 0, 0))
	assert.Equal(t, 3, NewPaginationInfo(10, 9, 4).CurrentPage)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, Paginate(items, 1, 2))
	assert.Equal(t, []int{5}, Paginate(items, 3, 2))
	assert.Empty(t, Paginate(items, 4, 2))
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, DefaultPageSize},
		{"?page=3&size=5", 3, 5},
		{"?page=-1&size=1000", 1, DefaultPageSize},
		{"?page=x&size=y", 1, DefaultPageSize},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/students"+tt.query, nil)
		page, size := ParsePaginationParams(c)
		assert.Equal(t, tt.page, page, tt.query)
		assert.Equal(t, tt.pageSize, size, tt.query)
	}
}
