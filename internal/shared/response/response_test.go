package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YugandharPise/SME-HR/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	items := []int{1, 2, 3, 4, 5}

	t.Run("no page returns everything", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		out, meta := response.Paginate(c, items)
		assert.Equal(t, items, out)
		assert.Nil(t, meta)
	})

	t.Run("second page", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?page=2&page_size=2", nil)
		out, meta := response.Paginate(c, items)
		assert.Equal(t, []int{3, 4}, out)
		assert.Equal(t, int64(5), meta.Total)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("page past the end", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?page=9&page_size=2", nil)
		out, _ := response.Paginate(c, items)
		assert.Empty(t, out)
	})
}
