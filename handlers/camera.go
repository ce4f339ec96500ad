package handlers

import (
	"net/http"

	"github.com/photoclass/photoclassbackend/capture"
)

// CameraHandler exposes the webcam lifecycle. The device is held server-side;
// clients only flip it between active and inactive and poll its state.
type CameraHandler struct {
	Camera *capture.Controller
}

func (ch *CameraHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"state": string(ch.Camera.State()),
		"error": ch.Camera.Err(),
	})
}

// Start opens the capture device; a no-op when already active
func (ch *CameraHandler) Start(w http.ResponseWriter, r *http.Request) {
	if err := ch.Camera.Start(); err != nil {
		WriteAPIError(w, http.StatusServiceUnavailable, "camera_unavailable", "Could not open the webcam: "+ch.Camera.Err())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": string(ch.Camera.State())})
}

// Stop releases the capture device so other applications can use it
func (ch *CameraHandler) Stop(w http.ResponseWriter, r *http.Request) {
	ch.Camera.Stop()
	writeJSON(w, http.StatusOK, map[string]string{"state": string(ch.Camera.State())})
}

// ClearError empties the latest-error slot so a Start retry reports fresh state
func (ch *CameraHandler) ClearError(w http.ResponseWriter, r *http.Request) {
	ch.Camera.ClearErr()
	writeJSON(w, http.StatusOK, map[string]string{"state": string(ch.Camera.State())})
}
