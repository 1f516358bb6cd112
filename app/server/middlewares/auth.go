package middlewares

import (
	"errors"

	"github.com/arju88nair/shelvedBackend/app/server/apperrors"
	"github.com/arju88nair/shelvedBackend/app/server/jwt"
	"github.com/arju88nair/shelvedBackend/app/server/ledger"
	"github.com/arju88nair/shelvedBackend/app/server/types"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ContextKeyClaims is where the verified *jwt.Claims land on the echo
// context.
const ContextKeyClaims = "claims"

// AccessAuth guards routes that need a live access token.
func AccessAuth(j *jwt.JWT, lg *ledger.Ledger, l *zap.Logger) echo.MiddlewareFunc {
	return tokenAuth(j, lg, l, jwt.TypeAccess)
}

// RefreshAuth guards the refresh and revoke endpoints, which only take
// refresh tokens.
func RefreshAuth(j *jwt.JWT, lg *ledger.Ledger, l *zap.Logger) echo.MiddlewareFunc {
	return tokenAuth(j, lg, l, jwt.TypeRefresh)
}

func tokenAuth(j *jwt.JWT, lg *ledger.Ledger, l *zap.Logger, want jwt.TokenType) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ContextKeyClaims,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := j.Parse(auth)
			if err != nil {
				return nil, apperrors.ErrBadToken
			}
			if claims.Type != want || claims.Identity == 0 {
				return nil, apperrors.ErrBadToken
			}

			// Denylist check: unknown jti means the token was never revoked,
			// so it stays usable (denylist, not allowlist)
			revoked, err := lg.IsRevoked(c.Request().Context(), claims.JTI)
			if err != nil {
				if errors.Is(err, apperrors.ErrTokenNotFound) {
					return claims, nil
				}
				l.Error("failed to check token revocation", zap.String("jti", claims.JTI), zap.Error(err))
				return nil, err
			}
			if revoked {
				return nil, apperrors.ErrBadToken
			}

			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			ae := apperrors.From(err)
			// Missing or malformed Authorization header surfaces from
			// echo-jwt itself, not the taxonomy
			if ae == apperrors.ErrInternalServer && !errors.Is(err, apperrors.ErrInternalServer) {
				ae = apperrors.ErrBadToken
			}
			return c.JSON(ae.Status, &types.ErrorMessage{Message: ae.Message, Status: ae.Status})
		},
	})
}
