package main

import (
	"encoding/hex"
	"fmt"

	"github.com/paypal/seifrng/blob"
)

func resolveKey() ([]byte, error) {
	if keyHex == "" {
		return nil, nil
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("--key must be hex-encoded: %w", err)
	}
	if len(key) != blob.KeySize {
		return nil, fmt.Errorf("--key must decode to exactly %d bytes, got %d", blob.KeySize, len(key))
	}
	return key, nil
}
