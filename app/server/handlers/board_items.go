package handlers

import (
	"net/http"

	"github.com/arju88nair/shelvedBackend/app/server/apperrors"
	"github.com/arju88nair/shelvedBackend/app/server/models"
	"github.com/arju88nair/shelvedBackend/app/server/types"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PostsByBoard lists one board's posts in creation order, each joined to
// its board and flagged with whether the requesting user liked it.
func (a *App) PostsByBoard(c echo.Context) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}

	id, err := a.pathID(c)
	if err != nil {
		return a.er(c, err)
	}

	var posts []models.Post
	if err := a.db.WithContext(rctx).
		Preload("Board").
		Where("board_id = ?", id).
		Order("created_at ASC").
		Find(&posts).Error; err != nil {
		a.l.Error("failed to get posts by board", zap.Uint("board", id), zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	res := make([]types.PostInfo, 0, len(posts))
	for i := range posts {
		res = append(res, postInfo(&posts[i], claims.Identity))
	}

	return c.JSON(http.StatusOK, &types.PostListResponse{
		Data:    res,
		Message: "Successfully retrieved",
		Count:   len(res),
	})
}
