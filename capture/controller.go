package capture

import (
	"fmt"
	"log"
	"sync"

	"gocv.io/x/gocv"

	"github.com/photoclass/photoclassbackend/utils"
)

// State describes the controller lifecycle
type State string

const (
	StateInactive State = "inactive"
	StateActive   State = "active"
	StateError    State = "error"
)

// Controller owns the webcam device. It holds exclusive access to the
// capture hardware between Start and Stop, so every exit path must call
// Stop to release the camera.
type Controller struct {
	mu       sync.Mutex
	deviceID int
	webcam   *gocv.VideoCapture
	lastErr  string
}

// NewController creates a controller bound to a video device index
func NewController(deviceID int) *Controller {
	return &Controller{deviceID: deviceID}
}

// Start opens the capture device. Calling Start while the device is already
// open is a no-op. On failure the latest-error slot is set and the
// controller stays inactive.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam != nil {
		return nil
	}

	webcam, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		c.lastErr = fmt.Sprintf("failed to open video device %d: %v", c.deviceID, err)
		log.Printf("capture: %s", c.lastErr)
		return fmt.Errorf("failed to open video device %d: %w", c.deviceID, err)
	}

	c.webcam = webcam
	c.lastErr = ""
	log.Printf("capture: opened video device %d", c.deviceID)
	return nil
}

// Stop releases the capture device; safe to call when not active
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam == nil {
		return
	}
	if err := c.webcam.Close(); err != nil {
		log.Printf("capture: error closing video device %d: %v", c.deviceID, err)
	}
	c.webcam = nil
	log.Printf("capture: released video device %d", c.deviceID)
}

// Capture reads one frame at the device's native resolution and encodes it
// as a JPEG data URL. Returns ok=false when the device is inactive or no
// frame is readable; the caller retries after ensuring active state.
func (c *Controller) Capture() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam == nil {
		return "", false
	}

	img := gocv.NewMat()
	defer img.Close()

	if ok := c.webcam.Read(&img); !ok || img.Empty() {
		log.Printf("capture: no renderable frame from device %d", c.deviceID)
		return "", false
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		log.Printf("capture: failed to encode frame: %v", err)
		return "", false
	}
	defer buf.Close()

	return utils.EncodeJPEGDataURL(buf.GetBytes()), true
}

// State reports the controller lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam != nil {
		return StateActive
	}
	if c.lastErr != "" {
		return StateError
	}
	return StateInactive
}

// Err returns the latest error slot, empty when clear
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ClearErr empties the latest-error slot so Start can be retried
func (c *Controller) ClearErr() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = ""
}
