package constants

import "time"

const (
	AccessTokenDuration  = 7 * 24 * time.Hour
	RefreshTokenDuration = 60 * 24 * time.Hour
)
