package donation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(NewService(nil, nil), nil)
	h.RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.Next() })
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateDonationValidation(t *testing.T) {
	r := testRouter()

	t.Run("missing fields", func(t *testing.T) {
		w := postJSON(r, "/api/v1/donations", `{"fullName":"A"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "All fields are required")
	})

	t.Run("bad email", func(t *testing.T) {
		w := postJSON(r, "/api/v1/donations", `{
			"fullName":"A","email":"not-an-email","amount":"100",
			"panCard":"ABCDE1234F","transactionId":"tx1",
			"proofImageUrl":"https://res.cloudinary.com/x/image/upload/v1/donations/p.jpg"
		}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email format")
	})

	t.Run("non-numeric amount", func(t *testing.T) {
		w := postJSON(r, "/api/v1/donations", `{
			"fullName":"A","email":"a@b.co","amount":"lots",
			"panCard":"ABCDE1234F","transactionId":"tx1",
			"proofImageUrl":"https://res.cloudinary.com/x/image/upload/v1/donations/p.jpg"
		}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid donation amount")
	})

	t.Run("negative amount", func(t *testing.T) {
		w := postJSON(r, "/api/v1/donations", `{
			"fullName":"A","email":"a@b.co","amount":"-5",
			"panCard":"ABCDE1234F","transactionId":"tx1",
			"proofImageUrl":"https://res.cloudinary.com/x/image/upload/v1/donations/p.jpg"
		}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUploadProofRequiresFile(t *testing.T) {
	r := testRouter()
	w := postJSON(r, "/api/v1/donations/proof", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Proof image is required")
}

func TestEmailPattern(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.org", "x+tag@sub.domain.in"}
	for _, e := range valid {
		assert.True(t, emailPattern.MatchString(e), e)
	}
	invalid := []string{"", "plain", "a @b.co", "a@b", "@b.co", "a@.co "}
	for _, e := range invalid {
		assert.False(t, emailPattern.MatchString(e), e)
	}
}
