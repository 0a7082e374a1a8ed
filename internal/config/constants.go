package config

import "time"

// Database pool defaults
const (
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
)

// Outbound service defaults
const (
	DefaultVerifierTimeout = 5 * time.Second
	DefaultTransferTimeout = 10 * time.Second

	DefaultTransferWorkers   = 4
	DefaultTransferQueueSize = 256
)

// DefaultEventRetentionDays bounds the event log when no override is set.
const DefaultEventRetentionDays = 90
