// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net/http/httptest"
	"testing"
)

func TestValidateSecretaryKey(t *testing.T) {
	tests := []struct {
		name       string
		provided   string
		configured string
		wantErr    bool
	}{
		{"match", "s3cret", "s3cret", false},
		{"mismatch", "s3cret", "other", true},
		{"prefix", "s3c", "s3cret", true},
		{"empty provided", "", "s3cret", true},
		{"case differs", "S3CRET", "s3cret", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSecretaryKey(tt.provided, tt.configured)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSecretaryKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err != ErrInvalidSecretaryKey {
				t.Errorf("ValidateSecretaryKey() error = %v, want ErrInvalidSecretaryKey", err)
			}
		})
	}
}

func TestKeyFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"header", map[string]string{"X-Secretary-Key": "abc"}, "abc"},
		{"bearer", map[string]string{"Authorization": "Bearer xyz"}, "xyz"},
		{"header wins", map[string]string{"X-Secretary-Key": "abc", "Authorization": "Bearer xyz"}, "abc"},
		{"basic ignored", map[string]string{"Authorization": "Basic Zm9v"}, ""},
		{"none", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/votes/start", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := KeyFromRequest(req); got != tt.want {
				t.Errorf("KeyFromRequest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("s3cret")
	if len(fp) != 16 {
		t.Errorf("Fingerprint() length = %d, want 16", len(fp))
	}
	if fp != Fingerprint("s3cret") {
		t.Error("Fingerprint() should be deterministic")
	}
	if fp == Fingerprint("other") {
		t.Error("Fingerprint() should differ between keys")
	}
}
