package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
)

func TestStreamHandler(t *testing.T) {
	t.Run("rejects non-GET", func(t *testing.T) {
		h := NewStreamHandler(capture.NewMockCamera(nil, false))

		req := httptest.NewRequest(http.MethodPost, "/api/stream", nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
		}
	})

	t.Run("reports missing camera", func(t *testing.T) {
		h := NewStreamHandler(nil)

		req := httptest.NewRequest(http.MethodGet, "/api/stream", nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
		}
	})

	t.Run("writes multipart frames until the client disconnects", func(t *testing.T) {
		if testing.Short() {
			t.Skip("skipping frame encoding in short mode")
		}

		frame := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		defer frame.Close()

		cam := capture.NewMockCamera([]*gocv.Mat{&frame}, true)
		if err := cam.Open(); err != nil {
			t.Fatalf("open camera: %v", err)
		}
		defer cam.Close()

		h := NewStreamHandler(cam)

		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest(http.MethodGet, "/api/stream", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		timer := time.AfterFunc(150*time.Millisecond, cancel)
		defer timer.Stop()

		h.ServeHTTP(rec, req)

		contentType := rec.Header().Get("Content-Type")
		if !strings.Contains(contentType, "multipart/x-mixed-replace") {
			t.Errorf("Content-Type = %q, want multipart/x-mixed-replace", contentType)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "--"+streamBoundary+"\r\n") {
			t.Error("body missing frame boundary")
		}
		if !strings.Contains(body, "Content-Type: image/jpeg") {
			t.Error("body missing JPEG part header")
		}
	})
}
