// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the secretary-only operations.

# Secretary Key

Starting and stopping votes, validating, unvalidating and bulk-editing
marks are secretary actions. When a secretary key is configured, requests
for them must carry it:

	X-Secretary-Key: <key>
	Authorization: Bearer <key>

	err := auth.ValidateSecretaryKey(auth.KeyFromRequest(r), cfg.SecretaryKey)

With no key configured the service runs open, which is how a single
scoring table on a closed network is usually set up.

# Fingerprints

	fp := auth.Fingerprint(cfg.SecretaryKey)

Returns the first 8 bytes (16 hex chars) of an HMAC-SHA256 of the key, for
start-up logs.
*/
package auth
