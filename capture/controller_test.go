package capture

import "testing"

func TestStopWhenInactiveIsSafe(t *testing.T) {
	c := NewController(0)
	c.Stop()
	c.Stop()

	if got := c.State(); got != StateInactive {
		t.Errorf("State() = %q, want %q", got, StateInactive)
	}
}

func TestCaptureWhenInactive(t *testing.T) {
	c := NewController(0)

	if _, ok := c.Capture(); ok {
		t.Error("Capture() succeeded with no open device")
	}
}

func TestErrorSlot(t *testing.T) {
	c := NewController(0)
	c.lastErr = "failed to open video device 0: no such device"

	if got := c.State(); got != StateError {
		t.Errorf("State() = %q, want %q", got, StateError)
	}
	if c.Err() == "" {
		t.Error("Err() empty with error slot set")
	}

	c.ClearErr()
	if got := c.State(); got != StateInactive {
		t.Errorf("State() after ClearErr = %q, want %q", got, StateInactive)
	}
	if c.Err() != "" {
		t.Errorf("Err() = %q after ClearErr", c.Err())
	}
}
