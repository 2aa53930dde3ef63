package source

import (
	"context"
	"testing"

	"github.com/safing/structures/container"
)

func TestOSCaptureAndDrain(t *testing.T) {
	t.Parallel()

	os := NewOS()
	if err := os.CaptureN(context.Background(), 4096); err != nil {
		t.Fatalf("CaptureN() error: %v", err)
	}

	probs := os.BitEntropy()
	if len(probs) != 8 {
		t.Fatalf("BitEntropy() length = %d, want 8", len(probs))
	}

	buf := container.New()
	os.Drain(buf)
	if buf.Length() != 4096 {
		t.Fatalf("Drain() produced %d bytes, want 4096", buf.Length())
	}

	// Buffer and accumulator are cleared after Drain.
	empty := container.New()
	os.Drain(empty)
	if empty.Length() != 0 {
		t.Fatalf("second Drain() produced %d bytes, want 0", empty.Length())
	}
}
