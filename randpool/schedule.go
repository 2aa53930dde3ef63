package randpool

import (
	"context"
	"fmt"
	"math"

	"github.com/paypal/seifrng/isaac"
	"github.com/paypal/seifrng/seed"
	"github.com/paypal/seifrng/source"
)

// gatherEntropyAndSeed runs the scheduling logic ported from
// IsaacRandomPool::GatherEntropyAndSeed: it decides, based on which
// sources are attached, how many bytes to pull from each one (scaling
// unavailable-source compensation onto the OS source), feeds all of them
// into a fresh seed.Assembler, and returns the finalized seed words.
//
// Unlike the original, source availability is a runtime property (an
// attached EntropySource or nil) rather than a compile-time WITH_OPENCV /
// WITH_PORTAUDIO flag; see DESIGN.md.
func (p *Pool) gatherEntropyAndSeed(ctx context.Context, multiplier uint) ([isaac.N]uint32, error) {
	var zero [isaac.N]uint32

	assembler := p.assembler()

	var entropyCompensation uint
	ok := true

	scale := func(exp uint) int {
		return int(math.Pow(2, float64(exp)))
	}

	if p.microphone != nil {
		if err := p.microphone.Capture(ctx); err != nil {
			return zero, fmt.Errorf("randpool: microphone: %w", err)
		}

		if p.camera != nil {
			if err := captureCamera(ctx, p.camera, multiplier); err != nil {
				return zero, err
			}
			if err := assembler.ProcessFromSource(p.camera); err != nil {
				ok = false
			}
		} else {
			entropyCompensation = 1
		}

		if err := p.osSrc.CaptureN(ctx, p.osBaseBytes*scale(multiplier+entropyCompensation)); err != nil {
			return zero, fmt.Errorf("randpool: os: %w", err)
		}

		if err := assembler.ProcessFromSource(p.osSrc); err != nil {
			ok = false
		}
		if err := assembler.ProcessFromSource(p.microphone); err != nil {
			ok = false
		}
	} else if p.camera != nil {
		entropyCompensation = 1

		if err := captureCamera(ctx, p.camera, multiplier); err != nil {
			return zero, err
		}

		if err := p.osSrc.CaptureN(ctx, p.osBaseBytes*scale(multiplier+entropyCompensation)); err != nil {
			return zero, fmt.Errorf("randpool: os: %w", err)
		}

		if err := assembler.ProcessFromSource(p.camera); err != nil {
			ok = false
		}
		if err := assembler.ProcessFromSource(p.osSrc); err != nil {
			ok = false
		}
	} else {
		entropyCompensation = 2

		if err := p.osSrc.CaptureN(ctx, p.osBaseBytes*scale(multiplier+entropyCompensation)); err != nil {
			return zero, fmt.Errorf("randpool: os: %w", err)
		}

		if err := assembler.ProcessFromSource(p.osSrc); err != nil {
			ok = false
		}
	}

	if !ok {
		return zero, ErrEntropyGatheringFailed
	}

	assembler.GenerateSeed()
	var words [SeedTerms]uint32
	slice := words[:]
	if !seed.CopySeed(assembler, slice) {
		return zero, ErrEntropyGatheringFailed
	}

	return words, nil
}

func captureCamera(ctx context.Context, camera source.EntropySource, multiplier uint) error {
	type frameCapturer interface {
		CaptureFrames(ctx context.Context, numFrames int) error
	}
	if fc, ok := camera.(frameCapturer); ok {
		frames := NumCaptureFrames * int(math.Pow(2, float64(multiplier)))
		if err := fc.CaptureFrames(ctx, frames); err != nil {
			return fmt.Errorf("randpool: camera: %w", err)
		}
		return nil
	}
	if err := camera.Capture(ctx); err != nil {
		return fmt.Errorf("randpool: camera: %w", err)
	}
	return nil
}
