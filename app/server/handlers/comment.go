package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/arju88nair/shelvedBackend/app/server/apperrors"
	"github.com/arju88nair/shelvedBackend/app/server/models"
	"github.com/arju88nair/shelvedBackend/app/server/slug"
	"github.com/arju88nair/shelvedBackend/app/server/types"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Leaf tokens are random, so a sibling collision is possible; the unique
// (post_id, slug) index rejects it and we regenerate.
const slugAttempts = 3

func commentInfo(comment *models.Comment, viewer uint) types.CommentInfo {
	return types.CommentInfo{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Slug:      comment.Slug,
		FullSlug:  comment.FullSlug,
		Comment:   comment.Comment,
		AddedBy:   comment.AddedByID,
		LikeCount: comment.LikeCount,
		Liked:     containsInt64(comment.LikedBy, int64(viewer)),
		CreatedAt: comment.CreatedAt,
	}
}

func (a *App) CommentList(c echo.Context) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}

	var comments []models.Comment
	if err := a.db.WithContext(rctx).Order("id ASC").Find(&comments).Error; err != nil {
		a.l.Error("failed to get comment list", zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	res := make([]types.CommentInfo, 0, len(comments))
	for i := range comments {
		res = append(res, commentInfo(&comments[i], claims.Identity))
	}

	return c.JSON(http.StatusOK, &types.CommentListResponse{
		Data:    res,
		Message: "Successfully retrieved",
		Count:   len(res),
	})
}

func (a *App) CommentCreate(c echo.Context) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}

	// Bind the request body
	var req types.CommentRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	if req.Comment == "" || req.PostID == 0 {
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	// A slug_id makes this a reply; it must name an existing comment under
	// the same post, never fall through to a root comment
	var parentSlug, parentFullSlug string
	if req.SlugID != "" {
		var parent models.Comment
		if err := a.db.WithContext(rctx).
			First(&parent, "post_id = ? AND slug = ?", req.PostID, req.SlugID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return a.er(c, apperrors.ErrItemNotExists)
			}
			a.l.Error("failed to find parent comment", zap.String("slug", req.SlugID), zap.Error(err))
			return a.er(c, apperrors.ErrInternalServer)
		}
		parentSlug = parent.Slug
		parentFullSlug = parent.FullSlug
	}

	posted := time.Now().UTC()
	comment := models.Comment{
		PostID:    req.PostID,
		Comment:   req.Comment,
		AddedByID: claims.Identity,
	}

	for attempt := 0; ; attempt++ {
		comment.Slug, comment.FullSlug = slug.Compose(parentSlug, parentFullSlug, posted)

		err := a.db.WithContext(rctx).Create(&comment).Error
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < slugAttempts-1 {
			continue
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return a.er(c, apperrors.ErrItemAlreadyExists)
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			// post_id names a post that doesn't exist
			return a.er(c, apperrors.ErrItemNotExists)
		}
		a.l.Error("failed to create comment", zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	return c.JSON(http.StatusOK, &types.Created{
		ID:      comment.ID,
		Message: "Successfully inserted",
	})
}

// CommentThread returns every comment under the post with the given id,
// sorted by full_slug: depth-first thread order, chronological within each
// sibling group.
func (a *App) CommentThread(c echo.Context) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}

	id, err := a.pathID(c)
	if err != nil {
		return a.er(c, err)
	}

	var comments []models.Comment
	if err := a.db.WithContext(rctx).
		Where("post_id = ?", id).
		Order("full_slug ASC").
		Find(&comments).Error; err != nil {
		a.l.Error("failed to get comment thread", zap.Uint("post", id), zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	res := make([]types.CommentInfo, 0, len(comments))
	for i := range comments {
		res = append(res, commentInfo(&comments[i], claims.Identity))
	}

	return c.JSON(http.StatusOK, &types.CommentListResponse{
		Data:    res,
		Message: "Successfully retrieved",
		Count:   len(res),
	})
}

func (a *App) CommentUpdate(c echo.Context) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}

	id, err := a.pathID(c)
	if err != nil {
		return a.er(c, err)
	}

	// Bind the request body
	var req types.CommentRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	if req.Comment == "" {
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	// Only the text is mutable; slugs are fixed at creation
	res := a.db.WithContext(rctx).
		Model(&models.Comment{}).
		Where("id = ? AND added_by_id = ?", id, claims.Identity).
		Update("comment", req.Comment)
	if res.Error != nil {
		a.l.Error("failed to update comment", zap.Uint("id", id), zap.Error(res.Error))
		return a.er(c, apperrors.ErrInternalServer)
	}
	if res.RowsAffected == 0 {
		return a.er(c, apperrors.ErrUpdatingItem)
	}

	return c.JSON(http.StatusOK, &types.Message{Message: "Successfully updated"})
}

func (a *App) CommentDelete(c echo.Context) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}

	id, err := a.pathID(c)
	if err != nil {
		return a.er(c, err)
	}

	res := a.db.WithContext(rctx).
		Where("id = ? AND added_by_id = ?", id, claims.Identity).
		Delete(&models.Comment{})
	if res.Error != nil {
		a.l.Error("failed to delete comment", zap.Uint("id", id), zap.Error(res.Error))
		return a.er(c, apperrors.ErrInternalServer)
	}
	if res.RowsAffected == 0 {
		return a.er(c, apperrors.ErrDeletingItem)
	}

	return c.JSON(http.StatusOK, &types.Message{Message: "Successfully deleted"})
}
