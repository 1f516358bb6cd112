// Package ledger tracks the lifecycle of every token this service issues.
// It is a denylist: a token whose jti is absent or present-and-unrevoked is
// usable, so a crash between signing and recording leaves a token the
// revocation path cannot see. Callers therefore record before responding.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/arju88nair/shelvedBackend/app/server/apperrors"
	"github.com/arju88nair/shelvedBackend/app/server/constants"
	"github.com/arju88nair/shelvedBackend/app/server/jwt"
	"github.com/arju88nair/shelvedBackend/app/server/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Ledger struct {
	db  *gorm.DB
	rdb *redis.Client // read-through cache of ledger rows, nil disables caching
	l   *zap.Logger
}

func New(db *gorm.DB, rdb *redis.Client, l *zap.Logger) *Ledger {
	return &Ledger{
		db:  db,
		rdb: rdb,
		l:   l,
	}
}

// RecordIssued inserts the not-revoked ledger row for a freshly signed token.
func (g *Ledger) RecordIssued(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.JTI == "" || claims.Identity == 0 ||
		(claims.Type != jwt.TypeAccess && claims.Type != jwt.TypeRefresh) {
		return apperrors.ErrSchemaValidation
	}

	entry := models.RevokedToken{
		JTI:          claims.JTI,
		TokenType:    string(claims.Type),
		UserIdentity: claims.Identity,
		Revoked:      false,
		ExpiresAt:    time.Unix(claims.Expires, 0),
	}

	if err := g.db.WithContext(ctx).Create(&entry).Error; err != nil {
		g.l.Error("failed to record issued token", zap.String("jti", claims.JTI), zap.Error(err))
		return apperrors.ErrInternalServer
	}

	return nil
}

// Revoke flips the row matching (jti, identity). The identity must match:
// a user cannot revoke someone else's token even with a guessed jti.
func (g *Ledger) Revoke(ctx context.Context, jti string, identity uint) error {
	res := g.db.WithContext(ctx).
		Model(&models.RevokedToken{}).
		Where("jti = ? AND user_identity = ?", jti, identity).
		Update("revoked", true)
	if res.Error != nil {
		g.l.Error("failed to revoke token", zap.String("jti", jti), zap.Error(res.Error))
		return apperrors.ErrInternalServer
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTokenNotFound
	}

	// Drop the cached row so the next check sees the flip
	if g.rdb != nil {
		g.rdb.Del(ctx, g.cacheKey(jti))
	}

	return nil
}

// IsRevoked answers the per-request denylist check. A jti the ledger has
// never seen is ErrTokenNotFound, distinct from known-and-not-revoked.
func (g *Ledger) IsRevoked(ctx context.Context, jti string) (bool, error) {
	cacheKey := g.cacheKey(jti)

	var entry models.RevokedToken

	// Check the cache first
	if g.rdb != nil {
		if cacheBytes, err := g.rdb.Get(ctx, cacheKey).Bytes(); err != nil {
			if !errors.Is(err, redis.Nil) {
				g.l.Error("failed to query cache for token entry", zap.String("jti", jti), zap.Error(err))
			}
		} else if err = json.Unmarshal(cacheBytes, &entry); err != nil {
			g.l.Error("failed to unmarshal token entry", zap.String("jti", jti), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
			// Probably a broken cache row, clear it
			g.rdb.Del(ctx, cacheKey)
		} else {
			return entry.Revoked, nil
		}
	}

	// Fall back to the database
	if err := g.db.WithContext(ctx).First(&entry, "jti = ?", jti).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.ErrTokenNotFound
		}
		g.l.Error("failed to query token entry", zap.String("jti", jti), zap.Error(err))
		return false, apperrors.ErrInternalServer
	}

	// Fill the cache for the next check
	if g.rdb != nil {
		if cacheBytes, err := json.Marshal(&entry); err != nil {
			g.l.Error("failed to marshal token entry", zap.String("jti", jti), zap.Error(err))
		} else {
			g.rdb.Set(ctx, cacheKey, cacheBytes, constants.CacheExpireTokenEntry)
		}
	}

	return entry.Revoked, nil
}

func (g *Ledger) cacheKey(jti string) string {
	return fmt.Sprintf(constants.CacheKeyTokenEntry, jti)
}
