package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arju88nair/shelvedBackend/app/server/apperrors"
	"github.com/arju88nair/shelvedBackend/app/server/jwt"
	"github.com/arju88nair/shelvedBackend/app/server/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openLedger(t *testing.T, name string) *Ledger {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.RevokedToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return New(db, nil, zap.NewNop())
}

func testClaims(jti string, identity uint) *jwt.Claims {
	return &jwt.Claims{
		Identity: identity,
		Type:     jwt.TypeAccess,
		JTI:      jti,
		Expires:  time.Now().Add(time.Hour).Unix(),
	}
}

func TestRecordThenCheck(t *testing.T) {
	lg := openLedger(t, "ledger_record")
	ctx := context.Background()

	if err := lg.RecordIssued(ctx, testClaims("jti-1", 10)); err != nil {
		t.Fatalf("record: %v", err)
	}

	revoked, err := lg.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("is revoked: %v", err)
	}
	if revoked {
		t.Fatal("fresh token reported revoked")
	}
}

func TestRevokeFlips(t *testing.T) {
	lg := openLedger(t, "ledger_revoke")
	ctx := context.Background()

	if err := lg.RecordIssued(ctx, testClaims("jti-2", 10)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := lg.Revoke(ctx, "jti-2", 10); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	revoked, err := lg.IsRevoked(ctx, "jti-2")
	if err != nil {
		t.Fatalf("is revoked: %v", err)
	}
	if !revoked {
		t.Fatal("revoked token reported usable")
	}
}

func TestRevokeRequiresMatchingIdentity(t *testing.T) {
	lg := openLedger(t, "ledger_identity")
	ctx := context.Background()

	if err := lg.RecordIssued(ctx, testClaims("jti-3", 10)); err != nil {
		t.Fatalf("record: %v", err)
	}

	err := lg.Revoke(ctx, "jti-3", 99)
	if !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("revoke with wrong identity: got %v, want ErrTokenNotFound", err)
	}

	// The entry must be untouched
	revoked, err := lg.IsRevoked(ctx, "jti-3")
	if err != nil {
		t.Fatalf("is revoked: %v", err)
	}
	if revoked {
		t.Fatal("entry was revoked despite identity mismatch")
	}
}

func TestUnknownJTI(t *testing.T) {
	lg := openLedger(t, "ledger_unknown")
	ctx := context.Background()

	if _, err := lg.IsRevoked(ctx, "never-issued"); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("unknown jti: got %v, want ErrTokenNotFound", err)
	}
	if err := lg.Revoke(ctx, "never-issued", 10); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("revoke unknown jti: got %v, want ErrTokenNotFound", err)
	}
}

func TestRecordRejectsMalformedClaims(t *testing.T) {
	lg := openLedger(t, "ledger_malformed")
	ctx := context.Background()

	cases := []*jwt.Claims{
		nil,
		{Identity: 10, Type: jwt.TypeAccess}, // no jti
		{JTI: "jti-4", Type: jwt.TypeAccess}, // no identity
		{JTI: "jti-5", Identity: 10, Type: jwt.TokenType("weird")}, // bad type
	}
	for i, claims := range cases {
		if err := lg.RecordIssued(ctx, claims); !errors.Is(err, apperrors.ErrSchemaValidation) {
			t.Fatalf("case %d: got %v, want ErrSchemaValidation", i, err)
		}
	}
}
