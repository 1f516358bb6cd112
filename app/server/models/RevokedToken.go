package models

import (
	"time"

	"gorm.io/gorm"
)

// RevokedToken is one ledger row per issued token. Rows are written at
// issuance with Revoked=false and only ever flipped, never deleted; the
// table doubles as an audit log and is pruned by expiry out of band.
type RevokedToken struct {
	gorm.Model

	JTI          string    `gorm:"column:jti;uniqueIndex"`
	TokenType    string    `gorm:"column:token_type"` // "access" or "refresh"
	UserIdentity uint      `gorm:"column:user_identity;index"`
	Revoked      bool      `gorm:"column:revoked;default:false"`
	ExpiresAt    time.Time `gorm:"column:expires_at;index"`
}
