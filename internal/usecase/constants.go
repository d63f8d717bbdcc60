package usecase

import "time"

const (
	// DefaultPageSize is the pagination default when no limit is given.
	DefaultPageSize = 20

	// MaxPageSize caps any requested page size.
	MaxPageSize = 100

	// SessionTTL is how long a persisted session survives without a logout.
	SessionTTL = 24 * time.Hour

	// PreviewTTL bounds how long a role preview can stay open.
	PreviewTTL = 1 * time.Hour

	// DashboardCacheTTL bounds staleness of cached dashboard counts.
	DashboardCacheTTL = 30 * time.Second
)
