package isaac

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
)

// stateWords is the number of uint32 words in one serialized state:
// count, N results words, N mem words, a, b, c.
const stateWords = 1 + 2*N + 3

// encode serializes the engine's state as stateWords whitespace-separated
// decimal words, in the order (count, results..., mem..., a, b, c), each
// followed by a single space. Call sites hold e.mu.
//
// The reference C++ generator this module was ported from wrote these
// three trailing words at one offset and read them back one word later, a
// bug that silently loaded b's saved value into a and c's into b on every
// load. This
// implementation uses the same offset on both sides; see DESIGN.md.
func (e *Engine) encode() []byte {
	var buf bytes.Buffer
	buf.Grow(stateWords * 11)

	write := func(v uint32) {
		buf.WriteString(strconv.FormatUint(uint64(v), 10))
		buf.WriteByte(' ')
	}

	write(uint32(e.count))
	for _, v := range e.results {
		write(v)
	}
	for _, v := range e.mem {
		write(v)
	}
	write(e.a)
	write(e.b)
	write(e.c)

	return buf.Bytes()
}

// decode parses a buffer of whitespace-separated decimal words, produced
// by encode, into the engine's state. It tolerates trailing data beyond
// the stateWords it reads. Call sites hold e.mu.
func (e *Engine) decode(buf []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(buf))
	scanner.Split(bufio.ScanWords)

	words := make([]uint32, 0, stateWords)
	for scanner.Scan() {
		v, err := strconv.ParseUint(scanner.Text(), 10, 32)
		if err != nil {
			return fmt.Errorf("isaac: corrupt state: %w", err)
		}
		words = append(words, uint32(v))
		if len(words) == stateWords {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("isaac: corrupt state: %w", err)
	}
	if len(words) < stateWords {
		return fmt.Errorf("isaac: corrupt state: got %d words, want at least %d", len(words), stateWords)
	}

	e.count = int(words[0])
	copy(e.results[:], words[1:1+N])
	copy(e.mem[:], words[1+N:1+2*N])
	e.a = words[1+2*N]
	e.b = words[1+2*N+1]
	e.c = words[1+2*N+2]

	if e.count < 0 || e.count > N {
		return fmt.Errorf("isaac: corrupt state: count %d out of range", e.count)
	}
	return nil
}
