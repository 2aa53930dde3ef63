package source

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/safing/structures/container"

	"github.com/paypal/seifrng/entropy"
)

var _ EntropySource = (*OS)(nil)

// OS draws entropy directly from the operating system's CSPRNG via
// crypto/rand. Unlike the camera and microphone sources, it needs no
// injected hardware driver: the OS random generator is always available.
type OS struct {
	mu  sync.Mutex
	acc *entropy.BitAccumulator[uint8]
	buf []byte
}

// NewOS creates an OS entropy source.
func NewOS() *OS {
	return &OS{acc: entropy.NewBitAccumulator[uint8](8)}
}

// CaptureN reads numBytes bytes from crypto/rand and folds them into the
// bit accumulator. Grounded on InterfaceOSRNG::generateRandomBytes and
// copyNCompEntropy.
func (o *OS) CaptureN(ctx context.Context, numBytes int) error {
	sample := make([]byte, numBytes)
	if _, err := rand.Read(sample); err != nil {
		return fmt.Errorf("source: os: %w", err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for _, b := range sample {
		o.acc.Add(b)
	}
	o.buf = append(o.buf, sample...)
	return nil
}

// Capture implements EntropySource, using the canonical capture size
// (NUM_OS_RANDOM_BYTES in isaacRandomPool.cpp). Callers that need to scale
// the capture size by a multiplier should call CaptureN directly instead.
func (o *OS) Capture(ctx context.Context) error {
	return o.CaptureN(ctx, DefaultOSBytes)
}

// DefaultOSBytes is the baseline number of bytes drawn from the OS per
// gathering round (NUM_OS_RANDOM_BYTES).
const DefaultOSBytes = 25 * 1024 * 1024

// BitEntropy implements EntropySource.
func (o *OS) BitEntropy() []float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.acc.BitEntropy()
}

// Drain implements EntropySource.
func (o *OS) Drain(out *container.Container) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.buf) > 0 {
		out.Append(o.buf)
	}
	o.buf = nil
	o.acc.Reset()
}
