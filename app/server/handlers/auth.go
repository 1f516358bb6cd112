package handlers

import (
	"errors"
	"net/http"

	"github.com/alexedwards/argon2id"
	"github.com/arju88nair/shelvedBackend/app/server/apperrors"
	"github.com/arju88nair/shelvedBackend/app/server/constants"
	"github.com/arju88nair/shelvedBackend/app/server/models"
	"github.com/arju88nair/shelvedBackend/app/server/types"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLength = 6

func (a *App) Signup(c echo.Context) error {
	rctx := c.Request().Context()

	// Bind the request body
	var req types.SignupRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	if req.Username == "" || req.Email == "" || len(req.Password) < minPasswordLength {
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	// Hash the password
	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: passwordHash,
		ImageURL: req.ImageURL,
		IsActive: true,
	}
	if err := a.db.WithContext(rctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The translated error hides which constraint fired, so look up
			// which field is already taken
			var existing models.User
			if lookupErr := a.db.WithContext(rctx).Select("id").
				First(&existing, "email = ?", req.Email).Error; lookupErr == nil {
				return a.er(c, apperrors.ErrEmailAlreadyExists)
			}
			return a.er(c, apperrors.ErrUsernameAlreadyExists)
		}
		a.l.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	return a.respondWithTokens(c, &user, "Successfully Signed Up")
}

func (a *App) Login(c echo.Context) error {
	rctx := c.Request().Context()

	// Bind the request body
	var req types.LoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	if req.Email == "" || req.Password == "" {
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	var user models.User
	if err := a.db.WithContext(rctx).First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, apperrors.ErrUserDoesnotExist)
		}
		a.l.Error("failed to find user", zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	// Check the password hash
	if match, _, err := argon2id.CheckHash(req.Password, user.Password); err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	} else if !match {
		return a.er(c, apperrors.ErrUnauthorized)
	}

	return a.respondWithTokens(c, &user, "Successfully Logged In")
}

// respondWithTokens signs the access/refresh pair and records both in the
// ledger before the response is written, so a recorded token is the only
// kind a client ever holds.
func (a *App) respondWithTokens(c echo.Context, user *models.User, message string) error {
	rctx := c.Request().Context()

	access, accessClaims, err := a.jwt.SignAccess(user.ID, constants.AccessTokenDuration)
	if err != nil {
		a.l.Error("failed to sign access token", zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}
	refresh, refreshClaims, err := a.jwt.SignRefresh(user.ID, constants.RefreshTokenDuration)
	if err != nil {
		a.l.Error("failed to sign refresh token", zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	if err := a.ledger.RecordIssued(rctx, accessClaims); err != nil {
		return a.er(c, err)
	}
	if err := a.ledger.RecordIssued(rctx, refreshClaims); err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, &types.AuthResponse{
		ID:           user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		Message:      message,
		Username:     user.Username,
		Email:        user.Email,
	})
}

// Refresh takes a refresh token (enforced by the route middleware) and
// issues a fresh access token.
func (a *App) Refresh(c echo.Context) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}
	if claims.Identity == 0 {
		return a.er(c, apperrors.ErrBadToken)
	}

	access, accessClaims, err := a.jwt.SignAccess(claims.Identity, constants.AccessTokenDuration)
	if err != nil {
		a.l.Error("failed to sign access token", zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}
	if err := a.ledger.RecordIssued(rctx, accessClaims); err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, &types.RefreshResponse{
		AccessToken: access,
		Message:     "Token refreshed.",
	})
}

// Logout revokes the presented access token.
func (a *App) Logout(c echo.Context) error {
	return a.revokeCurrent(c, "Access token has been revoked")
}

// RevokeRefresh revokes the presented refresh token.
func (a *App) RevokeRefresh(c echo.Context) error {
	return a.revokeCurrent(c, "Refresh token has been revoked")
}

func (a *App) revokeCurrent(c echo.Context, message string) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}

	if err := a.ledger.Revoke(rctx, claims.JTI, claims.Identity); err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, &types.Message{Message: message})
}
