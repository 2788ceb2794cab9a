package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	apiCachePrefix      = "trust:api-cache:"
	defaultHTTPCacheTTL = 15 * time.Second
	httpCacheMaxBody    = 1 << 20
)

type cachedHTTPResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	BodyBase64  string `json:"body_base64"`
}

type cacheBodyWriter struct {
	gin.ResponseWriter
	body     []byte
	overflow bool
}

func (w *cacheBodyWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *cacheBodyWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *cacheBodyWriter) capture(data []byte) {
	if w.overflow || len(data) == 0 {
		return
	}
	remaining := httpCacheMaxBody - len(w.body)
	if remaining <= 0 || len(data) > remaining {
		w.overflow = true
		return
	}
	w.body = append(w.body, data...)
}

// HTTPCache serves anonymous GET responses from Redis for a short TTL.
// The public pages poll these endpoints on every visit, so even a few
// seconds of caching absorbs most of the read load.
func HTTPCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = defaultHTTPCacheTTL
	}
	return func(c *gin.Context) {
		if rdb == nil || c.Request.Method != http.MethodGet || IsAuthenticated(c) {
			c.Next()
			return
		}

		cacheKey := apiCachePrefix + c.Request.URL.RequestURI()
		if payload, body, ok := readCachedResponse(c.Request.Context(), rdb, cacheKey); ok {
			c.Data(payload.Status, payload.ContentType, body)
			c.Abort()
			return
		}

		buffer := &cacheBodyWriter{ResponseWriter: c.Writer}
		c.Writer = buffer
		c.Next()

		status := c.Writer.Status()
		if status != http.StatusOK || buffer.overflow || len(buffer.body) == 0 {
			return
		}
		writeCachedResponse(c.Request.Context(), rdb, cacheKey, cachedHTTPResponse{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			BodyBase64:  base64.StdEncoding.EncodeToString(buffer.body),
		}, ttl)
	}
}

func readCachedResponse(ctx context.Context, rdb *redis.Client, key string) (cachedHTTPResponse, []byte, bool) {
	raw, err := rdb.Get(ctx, key).Result()
	if err != nil || raw == "" {
		return cachedHTTPResponse{}, nil, false
	}
	var payload cachedHTTPResponse
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return cachedHTTPResponse{}, nil, false
	}
	body, err := base64.StdEncoding.DecodeString(payload.BodyBase64)
	if err != nil {
		return cachedHTTPResponse{}, nil, false
	}
	return payload, body, true
}

func writeCachedResponse(ctx context.Context, rdb *redis.Client, key string, payload cachedHTTPResponse, ttl time.Duration) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	rdb.Set(ctx, key, raw, ttl)
}
