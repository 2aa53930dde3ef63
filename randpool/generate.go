package randpool

import (
	"encoding/binary"
	"io"
	"math"

	"golang.org/x/crypto/sha3"
)

// wordsPerHash is how many raw ISAAC words feed one output hash: 128
// words (512 bytes) whitened down to one 32-byte SHA3-256 digest, the
// same "0.5 bits of entropy per output byte" ratio GenerateBlock in
// isaacRandomPool.cpp uses.
const wordsPerHash = 128

const hashOutputSize = 32 // SHA3-256 digest size.

// Generate fills size bytes with pseudo-random output, whitened by
// hashing blocks of raw ISAAC words through SHA3-256. It refuses
// (returning ErrNotInitialized) before a successful Initialize or
// IsInitialized.
func (p *Pool) Generate(size int) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.engine.Initialized() {
		return nil, ErrNotInitialized
	}
	if size <= 0 {
		return nil, nil
	}

	numHashes := int(math.Ceil(float64(size) / float64(hashOutputSize)))
	out := make([]byte, 0, numHashes*hashOutputSize)

	rawWords := make([]byte, wordsPerHash*4)
	for h := 0; h < numHashes; h++ {
		for i := 0; i < wordsPerHash; i++ {
			binary.LittleEndian.PutUint32(rawWords[i*4:], p.engine.Rand())
		}

		digest := sha3.Sum256(rawWords)
		out = append(out, digest[:]...)
	}

	if len(out) > size {
		out = out[:size]
	}
	return out, nil
}

// Read implements io.Reader by filling b with Generate's output.
func (p *Pool) Read(b []byte) (int, error) {
	data, err := p.Generate(len(b))
	if err != nil {
		return 0, err
	}
	return copy(b, data), nil
}

var _ io.Reader = (*Pool)(nil)

// Number returns a random value in [0, max], using rejection sampling
// over Generate'd bytes to avoid modulo bias.
func (p *Pool) Number(max uint64) (uint64, error) {
	if max == ^uint64(0) {
		// The full uint64 range; every draw is already unbiased, and
		// max+1 would overflow to 0 below.
		raw, err := p.Generate(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(raw), nil
	}

	secureLimit := ^uint64(0) - (^uint64(0) % (max + 1))

	for {
		raw, err := p.Generate(8)
		if err != nil {
			return 0, err
		}
		candidate := binary.LittleEndian.Uint64(raw)
		if candidate < secureLimit {
			return candidate % (max + 1), nil
		}
	}
}
