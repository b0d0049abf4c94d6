package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"gocv.io/x/gocv"
)

const (
	// streamBoundary separates frames in the multipart response.
	streamBoundary = "frame"

	// streamInterval paces the stream at roughly 15 FPS. The control panel
	// overlay only needs enough frames to line up tooltips with the video.
	streamInterval = 66 * time.Millisecond

	// streamRetryDelay backs off reads while the camera is not delivering.
	streamRetryDelay = 100 * time.Millisecond
)

// StreamHandler serves the camera preview to the control panel as an MJPEG
// stream. Each connected client gets its own read loop; the stream runs until
// the client disconnects.
type StreamHandler struct {
	camera capture.Camera
}

// NewStreamHandler creates a StreamHandler reading from the given camera.
func NewStreamHandler(camera capture.Camera) *StreamHandler {
	return &StreamHandler{camera: camera}
}

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.camera == nil {
		http.Error(w, "Camera unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+streamBoundary)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := h.camera.ReadFrame()
		if err != nil {
			time.Sleep(streamRetryDelay)
			continue
		}

		err = writeFrame(w, frame)
		frame.Close()
		if err != nil {
			continue
		}

		if flusher != nil {
			flusher.Flush()
		}

		time.Sleep(streamInterval)
	}
}

// writeFrame encodes one frame as JPEG and writes it as a multipart part.
func writeFrame(w http.ResponseWriter, frame *gocv.Mat) error {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return err
	}
	defer buf.Close()

	fmt.Fprintf(w, "--%s\r\n", streamBoundary)
	fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
	fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", buf.Len())
	if _, err := w.Write(buf.GetBytes()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\r\n")
	return err
}
