package constants

import "time"

const (
	CacheKeyTokenEntry    = "shelved:token:%s" // jti
	CacheExpireTokenEntry = 10 * time.Minute
)
