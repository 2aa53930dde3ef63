package seed

import (
	"testing"

	"github.com/safing/structures/container"
)

// fakeSource is a canned entropySource for tests.
type fakeSource struct {
	probs []float64
	data  []byte
}

func (f *fakeSource) BitEntropy() []float64 { return f.probs }
func (f *fakeSource) Drain(out *container.Container) {
	out.Append(f.data)
}

func highEntropyBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i * 97)
	}
	return b
}

func TestProcessFromSourceRejectsLowBitEntropy(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultSplits, 0.25)
	src := &fakeSource{probs: []float64{0.0, 0.0}, data: highEntropyBytes(1024)}

	if err := a.ProcessFromSource(src); err != ErrLowEntropy {
		t.Fatalf("ProcessFromSource() error = %v, want ErrLowEntropy", err)
	}
}

func TestProcessFromSourceAcceptsGoodData(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultSplits, 0.25)
	src := &fakeSource{probs: []float64{0.5, 0.6}, data: highEntropyBytes(4096)}

	if err := a.ProcessFromSource(src); err != nil {
		t.Fatalf("ProcessFromSource() error = %v", err)
	}
}

func TestGenerateSeedAndCopySeed(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultSplits, 0.25)
	src := &fakeSource{probs: []float64{0.5}, data: highEntropyBytes(8192)}
	if err := a.ProcessFromSource(src); err != nil {
		t.Fatalf("ProcessFromSource() error = %v", err)
	}

	a.GenerateSeed()

	words := make([]uint32, 256)
	if !CopySeed(a, words) {
		t.Fatal("CopySeed() returned false")
	}

	var allZero = true
	for _, w := range words {
		if w != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatal("CopySeed() produced an all-zero seed")
	}

	// Seed was consumed; a second CopySeed before a new GenerateSeed fails.
	if CopySeed(a, words) {
		t.Fatal("CopySeed() succeeded twice without an intervening GenerateSeed")
	}
}

func TestCopySeedRequiresGeneratedSeed(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultSplits, 0.25)
	words := make([]uint32, 4)
	if CopySeed(a, words) {
		t.Fatal("CopySeed() succeeded before GenerateSeed")
	}
}

func TestCopySeedRejectsTooManyWords(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultSplits, 0.25)
	src := &fakeSource{probs: []float64{0.5}, data: highEntropyBytes(8192)}
	_ = a.ProcessFromSource(src)
	a.GenerateSeed()

	// 16 splits * (64/4) possible uint32 groups = 256 max.
	words := make([]uint32, 257)
	if CopySeed(a, words) {
		t.Fatal("CopySeed() succeeded with more words than available digest material")
	}
}

func TestProcessFromSourceRefusesAfterSeedReady(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultSplits, 0.25)
	src := &fakeSource{probs: []float64{0.5}, data: highEntropyBytes(8192)}
	_ = a.ProcessFromSource(src)
	a.GenerateSeed()

	if err := a.ProcessFromSource(src); err != ErrSeedReady {
		t.Fatalf("ProcessFromSource() error = %v, want ErrSeedReady", err)
	}

	a.Reset()
	if err := a.ProcessFromSource(src); err != nil {
		t.Fatalf("ProcessFromSource() after Reset() error = %v", err)
	}
}
