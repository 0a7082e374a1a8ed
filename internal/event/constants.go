package event

import "time"

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Log message constants
const (
	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// Retry configuration for the resilient publisher
const (
	// RetryMaxAttempts is the default maximum number of retry attempts
	RetryMaxAttempts = 5

	// RetryInitialDelay is the default base delay between retry attempts
	RetryInitialDelay = 2 * time.Second
)

// Dead letter file configuration
const (
	// DeadLetterSchemaVersion is the current dead-letter log format version.
	// Increment this when changing the DeadLetterEntry structure.
	DeadLetterSchemaVersion = "1.0"

	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0644
)

// Log messages for resilient publishing
const (
	LogMsgEventPublishFailed  = "Event publish failed, retrying in background"
	LogMsgEventRetrySucceeded = "Event published after retry"
	LogMsgEventRetryFailed    = "Event retry failed"
	LogMsgEventRetryExhausted = "Event retry exhausted, writing to dead-letter"
	LogMsgEventDeadLettered   = "event_dead_lettered"
)

// CalculateRetryDelay implements exponential backoff: 2s, 4s, 8s, 16s, 32s.
// Formula: baseDelay * 2^(attempt-1)
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * time.Duration(1<<(attempt-1))
}
