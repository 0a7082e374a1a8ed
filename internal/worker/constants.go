package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Transfer Worker
// ============================================================================

// Log messages for transfer dispatch operations
const (
	LogMsgTransferDispatched     = "Transfer dispatched"
	LogMsgTransferRetryScheduled = "Transfer retry scheduled"
	LogMsgTransferAbandoned      = "Transfer abandoned after final attempt"
	LogMsgTransferQueueFull      = "Transfer queue full, dropping intent"
)

// ============================================================================
// Transfer Worker Configuration
// ============================================================================

const (
	// DefaultTransferWorkers drains the dispatch queue concurrently.
	DefaultTransferWorkers = 4

	// DefaultTransferQueueSize bounds the backlog of undispatched intents.
	DefaultTransferQueueSize = 256

	// transferDispatchTimeout bounds one dispatch attempt.
	transferDispatchTimeout = 30 * time.Second

	// maxDispatchAttempts includes the first try.
	maxDispatchAttempts = 3

	// retryBackoffBase doubles per attempt.
	retryBackoffBase = 5 * time.Second
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
