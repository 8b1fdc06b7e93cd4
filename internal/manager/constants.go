package manager

import (
	"time"
)

// ResultTTL is the default time-to-live for cached signatures; the
// RESULT_TTL_SECONDS environment variable overrides it.
const (
	ResultTTL     = time.Minute * 15
	TypeStringTTL = time.Hour
)
