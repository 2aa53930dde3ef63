// Package seed implements the entropy-to-seed reduction pipeline: admitted
// bytes from entropy sources are split across independent SHA3-512
// accumulators and reduced into fixed-width seed words.
package seed

import (
	"errors"
	"hash"
	"unsafe"

	"github.com/safing/structures/container"
	"golang.org/x/crypto/sha3"

	"github.com/paypal/seifrng/entropy"
)

// DefaultSplits is the number of independent hash accumulators the
// assembler spreads admitted bytes across (ENTROPYSPLIT in
// isaacRandomPool.cpp).
const DefaultSplits = 16

// digestSize is the output size of SHA3-512 in bytes.
const digestSize = 64

// entropySource is the subset of the EntropySource contract the assembler
// needs: a bit-occurrence estimate and a way to drain the source's raw
// bytes. source.EntropySource satisfies this.
type entropySource interface {
	BitEntropy() []float64
	Drain(out *container.Container)
}

// Assembler mines entropic bytes from sources into seed material. The
// zero value is not usable; create one with NewAssembler.
type Assembler struct {
	threshold float64
	hashes    []hash.Hash
	digests   [][]byte
	ready     bool
}

// NewAssembler creates an Assembler that spreads admitted bytes across
// numSplits independent SHA3-512 accumulators, admitting only data whose
// average bit-occurrence probability is at least threshold.
func NewAssembler(numSplits int, threshold float64) *Assembler {
	a := &Assembler{
		threshold: threshold,
		hashes:    make([]hash.Hash, numSplits),
	}
	for i := range a.hashes {
		a.hashes[i] = sha3.New512()
	}
	return a
}

// ErrSeedReady is returned by ProcessFromSource once GenerateSeed has run
// and the seed has not yet been consumed or reset.
var ErrSeedReady = errors.New("seed: assembler already has a finalized seed pending consumption")

// ErrLowEntropy is returned by ProcessFromSource when the source (or one
// of its batches) did not meet the entropy admission threshold.
var ErrLowEntropy = errors.New("seed: sample entropy estimate below threshold")

// ProcessFromSource drains src and feeds its bytes into the hash
// accumulators, provided both the source's own bit-entropy estimate and
// each individual batch's byte entropy meet the threshold. On rejection,
// no bytes from src are consumed into the hash state.
func (a *Assembler) ProcessFromSource(src entropySource) error {
	if a.ready {
		return ErrSeedReady
	}

	bitProbs := src.BitEntropy()
	var sum float64
	for _, p := range bitProbs {
		sum += p
	}
	if len(bitProbs) == 0 || sum/float64(len(bitProbs)) < a.threshold {
		return ErrLowEntropy
	}

	buf := container.New()
	src.Drain(buf)
	data := buf.CompileData()
	if len(data) == 0 {
		return ErrLowEntropy
	}

	numDivs := len(a.hashes)
	stepSize := len(data) / numDivs
	excess := len(data) % numDivs

	offset := 0
	for i := 0; i < numDivs-1; i++ {
		batch := data[offset : offset+stepSize]
		if !entropy.MeetsThreshold(batch, a.threshold) {
			return ErrLowEntropy
		}
		offset += stepSize
	}
	lastBatch := data[offset : offset+stepSize+excess]
	if !entropy.MeetsThreshold(lastBatch, a.threshold) {
		return ErrLowEntropy
	}

	// Admission passed for every batch; only now mutate hash state, so a
	// rejected source never partially pollutes the accumulators.
	offset = 0
	for i := 0; i < numDivs-1; i++ {
		a.hashes[i].Write(data[offset : offset+stepSize])
		offset += stepSize
	}
	a.hashes[numDivs-1].Write(data[offset : offset+stepSize+excess])

	return nil
}

// GenerateSeed finalizes the hash accumulators into digests. After this
// call, ProcessFromSource refuses further data until Reset or a
// CopySeed call consumes the seed.
func (a *Assembler) GenerateSeed() {
	if a.ready {
		return
	}

	a.digests = make([][]byte, len(a.hashes))
	for i, h := range a.hashes {
		a.digests[i] = h.Sum(nil)
	}
	a.ready = true
}

// Reset discards a pending finalized seed, allowing more data to be
// processed without copying the seed out first.
func (a *Assembler) Reset() {
	a.ready = false
}

// Word is the set of integer widths CopySeed can emit seed terms as. Each
// width must evenly divide a SHA3-512 digest, which CopySeed's power-of-2
// check enforces at runtime.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// CopySeed fills dst with seed terms of type T, grouping each digest's
// bytes most-significant-byte first (matching seedGenerator.h's
// groupBytes). It returns false, leaving dst untouched, if GenerateSeed
// has not run yet or there isn't enough digest material for len(dst)
// terms. On success it consumes the seed, resetting Assembler's ready
// state exactly as copySeed does in the original.
func CopySeed[T Word](a *Assembler, dst []T) bool {
	if !a.ready {
		return false
	}

	var zero T
	numBytes := int(unsafe.Sizeof(zero))
	if numBytes&(numBytes-1) != 0 {
		return false
	}

	possibleGroups := digestSize / numBytes
	if len(dst) > possibleGroups*len(a.digests) {
		return false
	}

	remaining := len(dst)
	out := 0
	for _, digest := range a.digests {
		groups := possibleGroups
		if groups > remaining {
			groups = remaining
		}
		for g := 0; g < groups; g++ {
			var v T
			var acc uint64
			for j := 0; j < numBytes; j++ {
				acc = (acc << 8) | uint64(digest[g*numBytes+j])
			}
			v = T(acc)
			dst[out] = v
			out++
		}
		remaining -= groups
		if remaining <= 0 {
			break
		}
	}

	a.ready = false
	return true
}
