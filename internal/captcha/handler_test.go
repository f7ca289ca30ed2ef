package captcha

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *Service) {
	svc, _ := newTestService(t)
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	return NewHandler(svc, logger), svc
}

func TestHandler_Image(t *testing.T) {
	t.Run("issues a challenge", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/captcha/image", nil)
		req.RemoteAddr = "203.0.113.7:51234"
		rec := httptest.NewRecorder()

		handler.Image(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"captcha_id"`)
		assert.Contains(t, rec.Body.String(), `"image"`)
		assert.Contains(t, rec.Body.String(), `"expires_in":300`)
	})

	t.Run("throttled requester gets 429", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		var rec *httptest.ResponseRecorder
		for i := 0; i < 4; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/captcha/image", nil)
			req.RemoteAddr = "203.0.113.7:51234"
			rec = httptest.NewRecorder()
			handler.Image(rec, req)
		}

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("forwarded address is used for throttling", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		var rec *httptest.ResponseRecorder
		for i := 0; i < 4; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/captcha/image", nil)
			req.RemoteAddr = "10.0.0.1:1000"
			req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
			rec = httptest.NewRecorder()
			handler.Image(rec, req)
		}

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}
