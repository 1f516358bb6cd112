package handlers

import (
	"net/url"
	"strconv"

	"github.com/arju88nair/shelvedBackend/app/server/apperrors"
	"github.com/arju88nair/shelvedBackend/app/server/jwt"
	"github.com/arju88nair/shelvedBackend/app/server/middlewares"
	"github.com/labstack/echo/v4"
)

// currentClaims pulls the claims the auth middleware verified for this
// request.
func (a *App) currentClaims(c echo.Context) (*jwt.Claims, error) {
	claims, ok := c.Get(middlewares.ContextKeyClaims).(*jwt.Claims)
	if !ok || claims == nil {
		return nil, apperrors.ErrBadToken
	}
	return claims, nil
}

func (a *App) pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ErrSchemaValidation
	}
	return uint(id), nil
}

// isURL reports whether s parses with a scheme, the original's test for
// URL-type posts.
func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

func containsInt64(arr []int64, v int64) bool {
	for _, x := range arr {
		if x == v {
			return true
		}
	}
	return false
}
