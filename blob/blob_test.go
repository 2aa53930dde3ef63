package blob

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestPlaintextRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state")
	b := New(path)

	if b.Exists() {
		t.Fatal("Exists() true before Write")
	}

	want := []byte("hello entropy")
	if err := b.Write(want); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !b.Exists() {
		t.Fatal("Exists() false after Write")
	}

	got, err := b.Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Read() = %q, want %q", got, want)
	}
}

func TestEncryptedRoundTripAES(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state")
	key := bytes.Repeat([]byte{0x11}, KeySize)

	b, err := New(path).WithKey(key)
	if err != nil {
		t.Fatalf("WithKey() error: %v", err)
	}

	want := []byte("encrypted state bytes")
	if err := b.Write(want); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	raw, err := New(path).Read()
	if err != nil {
		t.Fatalf("reading raw ciphertext failed: %v", err)
	}
	if bytes.Equal(raw, want) {
		t.Fatal("ciphertext on disk equals plaintext")
	}

	got, err := b.Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Read() = %q, want %q", got, want)
	}
}

func TestEncryptedRoundTripSerpent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state")
	key := bytes.Repeat([]byte{0x22}, KeySize)

	b, err := New(path).WithKey(key)
	if err != nil {
		t.Fatalf("WithKey() error: %v", err)
	}
	if _, err := b.WithCipher("serpent"); err != nil {
		t.Fatalf("WithCipher() error: %v", err)
	}

	want := []byte("serpent-backed state")
	if err := b.Write(want); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := b.Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Read() = %q, want %q", got, want)
	}
}

func TestWrongKeyFailsDecryption(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state")
	key1 := bytes.Repeat([]byte{0x01}, KeySize)
	key2 := bytes.Repeat([]byte{0x02}, KeySize)

	b1, _ := New(path).WithKey(key1)
	if err := b1.Write([]byte("secret")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	b2, _ := New(path).WithKey(key2)
	if _, err := b2.Read(); err == nil {
		t.Fatal("Read() with wrong key succeeded")
	}
}

func TestWithKeyRejectsWrongLength(t *testing.T) {
	t.Parallel()

	if _, err := New("x").WithKey([]byte{1, 2, 3}); err != ErrKeySize {
		t.Fatalf("WithKey() error = %v, want ErrKeySize", err)
	}
}

func TestUnknownCipherRejected(t *testing.T) {
	t.Parallel()

	if _, err := New("x").WithCipher("twofish"); err == nil {
		t.Fatal("WithCipher() accepted an unknown cipher")
	}
}
