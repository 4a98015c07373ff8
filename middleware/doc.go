// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request IDs

WithRequestID wraps the whole mux. It reuses an incoming X-Request-ID or
generates a UUID, echoes it in the response and stores it in the request
context:

	handler := middleware.CORS(middleware.WithRequestID(mux))
	id := middleware.RequestID(r.Context())

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /rankings", middleware.WithLogging(handler))

Logs completion with method, path, status, duration_ms and request_id, and
records the request in the Prometheus HTTP metrics under the route pattern.

# Secretary Routes

	mux.HandleFunc("POST /votes/start",
		middleware.WithLogging(middleware.RequireSecretary(cfg.SecretaryKey, h.StartVote)))

Requests without a matching X-Secretary-Key (or Bearer token) get 403.
With no key configured the handler is returned unwrapped.

# CORS Middleware

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Secretary-Key, X-Request-ID.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.SubmitScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Used in request and rejection logs.
*/
package middleware
