//go:build microphone

package source

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/safing/structures/container"
	"github.com/tevino/abool"

	"github.com/paypal/seifrng/entropy"
)

// SampleGrabber starts an asynchronous capture on the given device and
// returns once sleepFor has elapsed, delivering whatever 16-bit audio
// samples were captured in that window. It is supplied by the
// integrator; this package never talks to an audio driver directly,
// mirroring InterfaceMicrophone's PortAudio callback being swapped out
// for a plain function boundary.
type SampleGrabber func(ctx context.Context, device int, sleepFor time.Duration) ([]uint16, error)

var _ EntropySource = (*Microphone)(nil)

// Microphone draws entropy from a microphone device via an injected
// SampleGrabber. Grounded on InterfaceMicrophone (interfaceMicrophone.h):
// 16-bit sample width, and an "in use" guard matching the original's
// _streamInUse/_stopCalled flags around its async callback.
type Microphone struct {
	mu          sync.Mutex
	grab        SampleGrabber
	device      int
	acc         *entropy.BitAccumulator[uint16]
	samples     []uint16
	streamInUse *abool.AtomicBool
}

// NewMicrophone creates a Microphone source for the given device index,
// using grab to perform the actual sample capture.
func NewMicrophone(device int, grab SampleGrabber) *Microphone {
	return &Microphone{
		device:      device,
		grab:        grab,
		acc:         entropy.NewBitAccumulator[uint16](16),
		streamInUse: abool.NewBool(false),
	}
}

// DefaultSleep is the canonical capture window per gathering round
// (NUM_MIC_SLEEP_MS in isaacRandomPool.cpp).
const DefaultSleep = 1 * time.Second

// ErrStreamInUse is returned by Capture while a capture is already in
// flight. BitEntropy and Drain return no error; while a capture is in
// flight they return nil and leave the buffer untouched, respectively.
var ErrStreamInUse = errors.New("source: microphone: stream already in use")

// Capture implements EntropySource.
func (m *Microphone) Capture(ctx context.Context) error {
	if !m.streamInUse.SetToIf(false, true) {
		return ErrStreamInUse
	}
	defer m.streamInUse.UnSet()

	samples, err := m.grab(ctx, m.device, DefaultSleep)
	if err != nil {
		return fmt.Errorf("source: microphone: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range samples {
		m.acc.Add(s)
	}
	m.samples = append(m.samples, samples...)
	return nil
}

// BitEntropy implements EntropySource. It refuses while a capture is in
// flight, since the sample buffer may be concurrently appended to.
func (m *Microphone) BitEntropy() []float64 {
	if m.streamInUse.IsSet() {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acc.BitEntropy()
}

// Drain implements EntropySource. It refuses (leaving the buffer intact)
// while a capture is in flight.
func (m *Microphone) Drain(out *container.Container) {
	if m.streamInUse.IsSet() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.samples) > 0 {
		buf := make([]byte, len(m.samples)*2)
		for i, s := range m.samples {
			binary.LittleEndian.PutUint16(buf[i*2:], s)
		}
		out.Append(buf)
	}
	m.samples = nil
	m.acc.Reset()
}
