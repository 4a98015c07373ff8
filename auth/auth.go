// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
)

// SecretaryKeyHeader carries the secretary key on privileged requests.
const SecretaryKeyHeader = "X-Secretary-Key"

var ErrInvalidSecretaryKey = errors.New("invalid secretary key")

// ValidateSecretaryKey checks provided against the configured key.
// Both sides are hashed first so the comparison time does not depend on
// the key length.
func ValidateSecretaryKey(provided, configured string) error {
	if provided == "" {
		return ErrInvalidSecretaryKey
	}
	a := sha256.Sum256([]byte(provided))
	b := sha256.Sum256([]byte(configured))
	if !hmac.Equal(a[:], b[:]) {
		return ErrInvalidSecretaryKey
	}
	return nil
}

// KeyFromRequest reads the secretary key from the X-Secretary-Key header,
// falling back to an "Authorization: Bearer" token.
func KeyFromRequest(r *http.Request) string {
	if key := r.Header.Get(SecretaryKeyHeader); key != "" {
		return key
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// Fingerprint returns a short, non-reversible id for a key so logs can show
// which key is configured without printing it.
func Fingerprint(key string) string {
	h := hmac.New(sha256.New, []byte("gimnis-secretary"))
	h.Write([]byte(key))
	sum := h.Sum(nil)
	// 8 bytes is plenty to tell keys apart
	return hex.EncodeToString(sum[:8])
}
