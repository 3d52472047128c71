// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
