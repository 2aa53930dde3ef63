// Package source implements the EntropySource contract and its concrete
// sources: the OS CSPRNG (always available), and camera/microphone
// sources whose hardware capture step is supplied by the integrator.
package source

import (
	"context"

	"github.com/safing/structures/container"
)

// EntropySource is the contract every entropy source implements: gather
// raw bytes on demand, report how evenly those bytes' bits are spread,
// and hand the bytes off (clearing internal state) on request.
type EntropySource interface {
	// Capture gathers one round of samples from the physical source.
	Capture(ctx context.Context) error
	// BitEntropy returns, for each bit position of this source's sample
	// width, the fraction of captured samples with that bit set.
	BitEntropy() []float64
	// Drain appends all captured raw bytes to out and clears the
	// source's sample buffer and bit counters.
	Drain(out *container.Container)
}
