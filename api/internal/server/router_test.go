package server

import (
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"diff-finder/api/internal/compare"
	"diff-finder/api/internal/detector/types"
	"diff-finder/api/internal/handle"
	"diff-finder/api/internal/middleware"
)

type stubDetector struct{ calls int }

func (s *stubDetector) Detect(context.Context, image.Image, image.Image) []types.Difference {
	s.calls++
	return nil
}

func newRouter(t *testing.T, det *stubDetector) *gin.Engine {
	log := zaptest.NewLogger(t)
	h := handle.New(compare.NewService(det), 1024, log)
	return NewRouter(Options{Mode: gin.TestMode, MaxUploadBytes: 64}, h, log)
}

func TestRouter_Health(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(t, &stubDetector{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
	require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_BodyLimitBeforeHandler(t *testing.T) {
	det := &stubDetector{}
	req := httptest.NewRequest(http.MethodPost, "/detect_differences", strings.NewReader(strings.Repeat("a", 65)))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	newRouter(t, det).ServeHTTP(w, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Zero(t, det.calls)
}

func TestRouter_CORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/detect_differences", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	newRouter(t, &stubDetector{}).ServeHTTP(w, req)

	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(t, &stubDetector{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/detect_differences", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
