package monitor

import "time"

const (
	defaultRefreshInterval = 2 * time.Second
	defaultFollowInterval  = 500 * time.Millisecond
)
