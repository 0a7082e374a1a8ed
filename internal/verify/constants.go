package verify

import "time"

const (
	// VerifyPath is the registry endpoint answering ownership questions.
	VerifyPath = "/v1/ownership/verify"

	// DefaultTimeout bounds a single verification round trip.
	DefaultTimeout = 5 * time.Second

	maxResponseBytes = 1 << 16
)
