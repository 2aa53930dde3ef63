// Package randpool implements the top-level orchestrator: lifecycle,
// entropy-source scheduling, state persistence, and whitened block
// output on top of the isaac, seed, entropy, and blob packages.
package randpool

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/paypal/seifrng/blob"
	"github.com/paypal/seifrng/isaac"
	"github.com/paypal/seifrng/seed"
	"github.com/paypal/seifrng/source"
)

// Constants ported from isaacRandomPool.h.
const (
	// NumCaptureFrames is the baseline camera frame count per gathering
	// round, before multiplier scaling.
	NumCaptureFrames = 15
	// NumOSRandomBytes is the baseline OS capture size per gathering
	// round, before multiplier scaling.
	NumOSRandomBytes = 25 * 1024 * 1024
	// SeedTerms is the number of uint32 words the ISAAC engine is seeded
	// with.
	SeedTerms = isaac.N
	// EntropySplit is the number of independent hash accumulators the
	// seed assembler spreads admitted bytes across.
	EntropySplit = 16
	// Burn is the number of words discarded after seeding, to move the
	// generator's internal state away from its seed-derived starting
	// point before any output is trusted.
	Burn = 512
)

var (
	// ErrEntropyGatheringFailed is returned by Initialize when any
	// attached source's data fails entropy admission, or when no seed
	// could be copied out of the assembler.
	ErrEntropyGatheringFailed = errors.New("randpool: entropy gathering failed")
	// ErrNotInitialized is returned by Generate before a successful
	// Initialize or resume.
	ErrNotInitialized = errors.New("randpool: pool not initialized")
)

// Pool is the top-level random-byte generator: one ISAAC engine, fed by
// an OS entropy source plus optional camera and microphone sources, with
// its state persisted through an EncryptedBlob.
type Pool struct {
	mu sync.Mutex

	engine *isaac.Engine
	osSrc  *source.OS

	camera     source.EntropySource
	microphone source.EntropySource

	osBaseBytes int
}

// New creates a Pool with an OS entropy source wired in; camera and
// microphone sources are attached with WithCamera/WithMicrophone.
func New() *Pool {
	return &Pool{
		engine:      isaac.New(),
		osSrc:       source.NewOS(),
		osBaseBytes: NumOSRandomBytes,
	}
}

// WithOSCaptureSize overrides the baseline number of bytes drawn from the
// OS source per gathering round (before multiplier/compensation
// scaling). Intended for constrained devices and tests; production code
// should leave this at its NumOSRandomBytes default.
func (p *Pool) WithOSCaptureSize(baseBytes int) *Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.osBaseBytes = baseBytes
	return p
}

// WithCamera attaches a camera entropy source (typically source.NewCamera
// under the camera build tag). Passing nil detaches it.
func (p *Pool) WithCamera(src source.EntropySource) *Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.camera = src
	return p
}

// WithMicrophone attaches a microphone entropy source (typically
// source.NewMicrophone under the microphone build tag). Passing nil
// detaches it.
func (p *Pool) WithMicrophone(src source.EntropySource) *Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.microphone = src
	return p
}

// EntropyStrength classifies the entropy sources available to this pool:
// "WEAK" with only the OS source, "MEDIUM" with exactly one of
// camera/microphone attached, "STRONG" with both.
func (p *Pool) EntropyStrength() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	hasCamera := p.camera != nil
	hasMic := p.microphone != nil

	switch {
	case hasCamera && hasMic:
		return "STRONG"
	case hasCamera || hasMic:
		return "MEDIUM"
	default:
		return "WEAK"
	}
}

// IsInitialized attempts to resume previously saved state from path,
// decrypting with key if non-empty. It does not gather fresh entropy.
func (p *Pool) IsInitialized(path string, key []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, err := newStore(path, key)
	if err != nil {
		return err
	}
	return p.engine.Initialize(isaac.NormalizeIdentifier(path), store)
}

// Initialize resets the pool, gathers entropy from the attached sources
// (scaled by multiplier), seeds the ISAAC engine, and burns its initial
// output. It always gathers fresh entropy; to resume saved state instead,
// call IsInitialized.
func (p *Pool) Initialize(ctx context.Context, path string, multiplier uint, key []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.engine.Close(); err != nil {
		slog.Warn("randpool: failed to save previous state before reinitializing", "error", err)
	}

	store, err := newStore(path, key)
	if err != nil {
		return err
	}
	p.engine.SetIdentifier(isaac.NormalizeIdentifier(path), store)

	seedWords, err := p.gatherEntropyAndSeed(ctx, multiplier)
	if err != nil {
		return err
	}

	p.engine.Seed(seedWords)
	for i := 0; i < Burn; i++ {
		p.engine.Rand()
	}
	return nil
}

// InitializeEncryption sets (or clears, with a nil key) the encryption
// key used on the next SaveState.
func (p *Pool) InitializeEncryption(path string, key []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, err := newStore(path, key)
	if err != nil {
		return err
	}
	p.engine.SetIdentifier(isaac.NormalizeIdentifier(path), store)
	return nil
}

// SaveState persists the current engine state.
func (p *Pool) SaveState() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.SaveState()
}

// Destroy saves state and resets the pool to an uninitialized value.
func (p *Pool) Destroy() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.Close()
}

func newStore(path string, key []byte) (isaac.Store, error) {
	b := blob.New(path)
	if len(key) == 0 {
		return b, nil
	}
	return b.WithKey(key)
}

// assembler returns a fresh seed.Assembler with EntropySplit accumulators
// and the fixed entropyThreshold admission bar.
func (p *Pool) assembler() *seed.Assembler {
	return seed.NewAssembler(EntropySplit, entropyThreshold)
}

const entropyThreshold = 0.25
