package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func record(handler func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	handler(c)
	return w
}

func TestOKWrapsSlices(t *testing.T) {
	w := record(func(c *gin.Context) { OK(c, []string{"a", "b"}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":["a","b"]}`, w.Body.String())

	w = record(func(c *gin.Context) { OK(c, gin.H{"id": 1}) })
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) { BadRequest(c, "nope") })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"ok":0,"code":400,"message":"nope"}`, w.Body.String())

	w = record(func(c *gin.Context) { Unauthorized(c) })
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = record(func(c *gin.Context) { NotFoundMsg(c, "gone") })
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "gone")
}

func TestPaged(t *testing.T) {
	w := record(func(c *gin.Context) {
		Paged(c, []int{1, 2, 3}, Pagination{Total: 3, CurrentPage: 1, TotalPage: 1, Size: 10})
	})
	assert.JSONEq(t,
		`{"data":[1,2,3],"pagination":{"total":3,"current_page":1,"total_page":1,"size":10,"has_next_page":false}}`,
		w.Body.String())
}

func TestTooManyRequestsSetsRetryAfter(t *testing.T) {
	w := record(func(c *gin.Context) { TooManyRequests(c, "slow down") })
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}
