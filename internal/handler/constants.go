package handler

// Pagination limits for list endpoints
const (
	DefaultListLimit int64 = 50
	MaxListLimit     int64 = 200
)

// Event log query limits
const (
	DefaultEventLimit = 100
	MaxEventLimit     = 1000
)
