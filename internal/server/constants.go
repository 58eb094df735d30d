package server

import "time"

// Server configuration constants
const (
	// Per-connection WebSocket rate limiting
	RateLimitMessages = 5           // Max scan messages per window
	RateLimitWindow   = time.Minute // Sliding window duration

	// Base64 inflates media by 4/3; the rest covers the JSON envelope.
	wsEnvelopeOverhead = 4096

	// Suggested client backoff when a scan could not run.
	RetryAfterSeconds = 5

	DefaultUploadName = "upload.mp4"
	tempPattern       = "catalog-*"
)
