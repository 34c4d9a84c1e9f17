package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutax/edutax-backend/internal/platform/ctxutil"
)

func TestAttachTraceContextEchoesHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var seen *ctxutil.TraceData
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", rec.Header().Get(headerRequestID))
	assert.NotEmpty(t, rec.Header().Get(headerTraceID))
	if assert.NotNil(t, seen) {
		assert.Equal(t, "req-1", seen.RequestID)
	}
}

func TestAttachTraceContextReplacesOversizedRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, strings.Repeat("x", 500))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	got := rec.Header().Get(headerRequestID)
	assert.NotEmpty(t, got)
	assert.Less(t, len(got), 128)
}

func traceIDFor(t *testing.T, header string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var seen *ctxutil.TraceData
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(headerTraceID, header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	got := rec.Header().Get(headerTraceID)
	require.NotNil(t, seen)
	assert.Equal(t, got, seen.TraceID)
	return got
}

var w3cTraceID = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestAttachTraceContextKeepsValidTraceID(t *testing.T) {
	const valid = "4bf92f3577b34da6a3ce929d0e0e4736"
	assert.Equal(t, valid, traceIDFor(t, valid))
}

func TestAttachTraceContextReplacesBadTraceIDs(t *testing.T) {
	cases := map[string]string{
		"missing":   "",
		"oversized": strings.Repeat("a", 4096),
		"malformed": "4bf92f35-77b3-4da6-a3ce-929d0e0e4736",
		"uppercase": "4BF92F3577B34DA6A3CE929D0E0E4736",
		"all zero":  strings.Repeat("0", 32),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			got := traceIDFor(t, header)
			assert.Regexp(t, w3cTraceID, got)
			assert.NotEqual(t, header, got)
		})
	}
}

func TestAttachTraceContextRejectsOddRequestIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "id with spaces;<script>")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	got := rec.Header().Get(headerRequestID)
	assert.NotEqual(t, "id with spaces;<script>", got)
	assert.True(t, validRequestID(got))
}
