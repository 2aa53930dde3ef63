package isaac

import (
	"testing"
)

func seedOf(v uint32) [N]uint32 {
	var s [N]uint32
	for i := range s {
		s[i] = v + uint32(i)
	}
	return s
}

func TestUnseededEngineReturnsZero(t *testing.T) {
	t.Parallel()

	e := New()
	for i := 0; i < 4; i++ {
		if got := e.Rand(); got != 0 {
			t.Fatalf("Rand() on unseeded engine = %d, want 0", got)
		}
	}
	if e.Initialized() {
		t.Fatal("unseeded engine reports Initialized()")
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	t.Parallel()

	seed := seedOf(1)

	e1 := New()
	e1.Seed(seed)

	e2 := New()
	e2.Seed(seed)

	for i := 0; i < 2*N+7; i++ {
		a, b := e1.Rand(), e2.Rand()
		if a != b {
			t.Fatalf("word %d diverged: %d != %d", i, a, b)
		}
	}
}

func TestSeedIsNotAllZero(t *testing.T) {
	t.Parallel()

	e := New()
	e.Seed(seedOf(7))

	var allZero = true
	for i := 0; i < N; i++ {
		if e.Rand() != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatal("generator produced an all-zero block after seeding")
	}
}

func TestReseedAfterInitializedIsNoOp(t *testing.T) {
	t.Parallel()

	e := New()
	e.Seed(seedOf(1))
	first := e.Rand()

	e.Seed(seedOf(99)) // must be ignored

	e2 := New()
	e2.Seed(seedOf(1))
	e2.Rand() // consume the same word position

	if second := e.Rand(); second == first {
		// sanity: consecutive words should usually differ; this would only
		// collide by chance, not because the reseed silently took effect.
		t.Log("consecutive words matched by coincidence")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	e := New()
	e.Seed(seedOf(42))
	// Advance state so count and a/b/c are non-trivial.
	for i := 0; i < 300; i++ {
		e.Rand()
	}

	encoded := e.encode()

	restored := New()
	restored.count, restored.results, restored.mem = e.count, e.results, e.mem
	restored.a, restored.b, restored.c = 0, 0, 0
	if err := restored.decode(encoded); err != nil {
		t.Fatalf("decode() error: %v", err)
	}
	restored.initialized = true

	for i := 0; i < N+3; i++ {
		want, got := e.Rand(), restored.Rand()
		if want != got {
			t.Fatalf("word %d after restore: got %d, want %d", i, got, want)
		}
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	t.Parallel()

	e := New()
	if err := e.decode([]byte("0 0 0 0")); err == nil {
		t.Fatal("decode() accepted a buffer with too few words")
	}
}

func TestDecodeToleratesTrailingData(t *testing.T) {
	t.Parallel()

	e := New()
	e.Seed(seedOf(3))
	encoded := e.encode()

	padded := append(append([]byte(nil), encoded...), []byte(" 123 456\n")...)

	restored := New()
	if err := restored.decode(padded); err != nil {
		t.Fatalf("decode() with trailing data: %v", err)
	}
}

type memStore struct {
	data    []byte
	present bool
}

func (m *memStore) Exists() bool { return m.present }
func (m *memStore) Read() ([]byte, error) {
	return m.data, nil
}
func (m *memStore) Write(data []byte) error {
	m.data = append([]byte(nil), data...)
	m.present = true
	return nil
}

func TestSaveAndResume(t *testing.T) {
	t.Parallel()

	store := &memStore{}

	e := New()
	e.SetIdentifier("state", store)
	e.Seed(seedOf(5))
	for i := 0; i < 17; i++ {
		e.Rand()
	}
	if err := e.SaveState(); err != nil {
		t.Fatalf("SaveState() error: %v", err)
	}

	resumed := New()
	if err := resumed.Initialize("state", store); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	if !resumed.Initialized() {
		t.Fatal("resumed engine not Initialized()")
	}

	for i := 0; i < N; i++ {
		want, got := e.Rand(), resumed.Rand()
		if want != got {
			t.Fatalf("word %d after resume: got %d, want %d", i, got, want)
		}
	}
}

func TestInitializeWithoutExistingStateFails(t *testing.T) {
	t.Parallel()

	e := New()
	err := e.Initialize("does-not-exist", &memStore{})
	if err != ErrFileNotFound {
		t.Fatalf("Initialize() error = %v, want ErrFileNotFound", err)
	}
}

func TestNormalizeIdentifierTruncatesLongNames(t *testing.T) {
	t.Parallel()

	long := "this-file-name-is-most-certainly-longer-than-32-bytes.state"
	got := NormalizeIdentifier(long)
	_, name := splitLast(got)
	if len(name) > maxNameLen {
		t.Fatalf("normalized name length = %d, want <= %d", len(name), maxNameLen)
	}
}

func splitLast(path string) (dir, name string) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i+1], path[i+1:]
		}
	}
	return "", path
}
