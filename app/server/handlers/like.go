package handlers

import (
	"net/http"

	"github.com/arju88nair/shelvedBackend/app/server/apperrors"
	"github.com/arju88nair/shelvedBackend/app/server/models"
	"github.com/arju88nair/shelvedBackend/app/server/types"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// likeTarget is the closed set of likeable entities. The wire value is
// compared with ==; unknown values are schema errors.
type likeTarget int

const (
	targetPost likeTarget = iota
	targetComment
)

func parseLikeTarget(s string) (likeTarget, error) {
	switch s {
	case "post", "P":
		return targetPost, nil
	case "comment", "C":
		return targetComment, nil
	default:
		return 0, apperrors.ErrSchemaValidation
	}
}

func (t likeTarget) model() interface{} {
	if t == targetComment {
		return &models.Comment{}
	}
	return &models.Post{}
}

func (a *App) Like(c echo.Context) error {
	return a.toggleLike(c, true)
}

func (a *App) Unlike(c echo.Context) error {
	return a.toggleLike(c, false)
}

// toggleLike flips one user's like in a single conditional update: the
// count and the liker set change together or not at all, which keeps
// like_count == |liked_by| under concurrent requests. Zero rows affected
// means the item was already in the requested state.
func (a *App) toggleLike(c echo.Context, like bool) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}

	// Bind the request body
	var req types.LikeRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	if req.ItemID == 0 || req.Item == "" {
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	target, err := parseLikeTarget(req.Item)
	if err != nil {
		return a.er(c, err)
	}

	identity := int64(claims.Identity)

	var res *gorm.DB
	if like {
		res = a.db.WithContext(rctx).
			Model(target.model()).
			Where("id = ? AND NOT (? = ANY(liked_by))", req.ItemID, identity).
			Updates(map[string]interface{}{
				"like_count": gorm.Expr("like_count + 1"),
				"liked_by":   gorm.Expr("array_append(liked_by, ?)", identity),
			})
	} else {
		res = a.db.WithContext(rctx).
			Model(target.model()).
			Where("id = ? AND ? = ANY(liked_by)", req.ItemID, identity).
			Updates(map[string]interface{}{
				"like_count": gorm.Expr("like_count - 1"),
				"liked_by":   gorm.Expr("array_remove(liked_by, ?)", identity),
			})
	}
	if res.Error != nil {
		a.l.Error("failed to toggle like", zap.Uint("item", req.ItemID), zap.Error(res.Error))
		return a.er(c, apperrors.ErrInternalServer)
	}
	if res.RowsAffected == 0 {
		return a.er(c, apperrors.ErrActionAlreadyDone)
	}

	message := "Successfully liked"
	if !like {
		message = "Successfully un-liked"
	}

	return c.JSON(http.StatusOK, &types.LikeResponse{
		Message: message,
		Status:  true,
	})
}
