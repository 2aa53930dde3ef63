//go:build camera

package source

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/safing/structures/container"

	"github.com/paypal/seifrng/entropy"
)

// FrameGrabber captures numFrames frames from a camera device and returns
// them as a stream of 16-bit samples (one word per captured pixel
// channel, matching int16toBytes's sample width). It is supplied by the
// integrator; this package never talks to camera hardware directly.
type FrameGrabber func(ctx context.Context, device int, numFrames int) ([]uint16, error)

var _ EntropySource = (*Camera)(nil)

// Camera draws entropy from a camera device via an injected FrameGrabber.
// Grounded on InterfaceCamera (interfaceCamera.h), ported from its
// OpenCV-specific capture loop to a pluggable function so this module
// carries no direct OpenCV dependency.
type Camera struct {
	mu      sync.Mutex
	grab    FrameGrabber
	device  int
	acc     *entropy.BitAccumulator[uint16]
	samples []uint16
}

// NewCamera creates a Camera source for the given device index, using
// grab to perform the actual frame capture.
func NewCamera(device int, grab FrameGrabber) *Camera {
	return &Camera{
		device: device,
		grab:   grab,
		acc:    entropy.NewBitAccumulator[uint16](16),
	}
}

// DefaultCaptureFrames is the canonical number of frames captured per
// gathering round (NUM_CAPTURE_FRAMES in isaacRandomPool.cpp).
const DefaultCaptureFrames = 15

// Capture implements EntropySource.
func (c *Camera) Capture(ctx context.Context) error {
	return c.CaptureFrames(ctx, DefaultCaptureFrames)
}

// CaptureFrames captures numFrames frames via the configured FrameGrabber.
func (c *Camera) CaptureFrames(ctx context.Context, numFrames int) error {
	samples, err := c.grab(ctx, c.device, numFrames)
	if err != nil {
		return fmt.Errorf("source: camera: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range samples {
		c.acc.Add(s)
	}
	c.samples = append(c.samples, samples...)
	return nil
}

// BitEntropy implements EntropySource.
func (c *Camera) BitEntropy() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acc.BitEntropy()
}

// Drain implements EntropySource, emitting each 16-bit sample
// little-endian, matching int16toBytes.
func (c *Camera) Drain(out *container.Container) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.samples) > 0 {
		buf := make([]byte, len(c.samples)*2)
		for i, s := range c.samples {
			binary.LittleEndian.PutUint16(buf[i*2:], s)
		}
		out.Append(buf)
	}
	c.samples = nil
	c.acc.Reset()
}
