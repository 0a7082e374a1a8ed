package farming

import "time"

// List pagination bounds
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Farm info cache sizing
const (
	farmInfoCacheSize = 1024
	farmInfoCacheTTL  = 30 * time.Second
)
