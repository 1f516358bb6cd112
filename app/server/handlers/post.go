package handlers

import (
	"errors"
	"net/http"

	"github.com/arju88nair/shelvedBackend/app/server/apperrors"
	"github.com/arju88nair/shelvedBackend/app/server/models"
	"github.com/arju88nair/shelvedBackend/app/server/slug"
	"github.com/arju88nair/shelvedBackend/app/server/types"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	postTypeText = "Text"
	postTypeURL  = "URL"

	summarySentences = 3
)

func postInfo(post *models.Post, viewer uint) types.PostInfo {
	info := types.PostInfo{
		ID:         post.ID,
		Title:      post.Title,
		Source:     post.Source,
		SourceURL:  post.SourceURL,
		PostType:   post.PostType,
		Summary:    post.Summary,
		Text:       post.Text,
		Slug:       post.Slug,
		Keywords:   post.Keywords,
		Tags:       post.Tags,
		AddedBy:    post.AddedByID,
		LikeCount:  post.LikeCount,
		Liked:      containsInt64(post.LikedBy, int64(viewer)),
		CreatedAt:  post.CreatedAt,
		ModifiedAt: post.UpdatedAt,
	}
	if post.Board.ID != 0 {
		b := boardInfo(&post.Board)
		info.Board = &b
	}
	return info
}

func (a *App) PostList(c echo.Context) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}

	var posts []models.Post
	if err := a.db.WithContext(rctx).Order("id ASC").Find(&posts).Error; err != nil {
		a.l.Error("failed to get post list", zap.Error(err))
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

func (a *App) PostCreate(c echo.Context) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}

	// Bind the request body
	var req types.PostRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	if req.Source == "" || req.Board == "" {
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	// A parsable source_url makes this a URL post, anything else is a text
	// note run through the summarizer directly
	post := models.Post{
		Source:    req.Source,
		SourceURL: req.SourceURL,
		Slug:      slug.Leaf(),
		AddedByID: claims.Identity,
	}
	if isURL(req.SourceURL) {
		digest, err := a.sum.FromURL(rctx, req.SourceURL)
		if err != nil {
			a.l.Error("failed to digest article", zap.String("url", req.SourceURL), zap.Error(err))
			return a.er(c, apperrors.ErrSchemaValidation)
		}
		post.PostType = postTypeURL
		post.Title = digest.Title
		post.Summary = digest.Summary
		post.Text = digest.Body
		post.Keywords = digest.Keywords
		post.Tags = digest.Keywords
	} else {
		if req.SourceURL != "" {
			return a.er(c, apperrors.ErrSchemaValidation)
		}
		digest, err := a.sum.FromText(rctx, req.Source, summarySentences)
		if err != nil {
			a.l.Error("failed to summarize text", zap.Error(err))
			return a.er(c, apperrors.ErrSchemaValidation)
		}
		summaryDigest, err := a.sum.FromText(rctx, digest.Summary, summarySentences)
		if err != nil {
			a.l.Error("failed to extract tags", zap.Error(err))
			return a.er(c, apperrors.ErrSchemaValidation)
		}
		post.PostType = postTypeText
		post.Title = digest.Title
		post.Summary = digest.Summary
		post.Text = req.Source
		post.Keywords = digest.Keywords
		post.Tags = summaryDigest.Keywords
	}
	if req.Title != "" {
		post.Title = req.Title
	}

	// Resolve the board by its slug
	var board models.Board
	if err := a.db.WithContext(rctx).First(&board, "slug = ?", req.Board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, apperrors.ErrItemNotExists)
		}
		a.l.Error("failed to find board", zap.String("slug", req.Board), zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}
	post.BoardID = board.ID

	if err := a.db.WithContext(rctx).Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return a.er(c, apperrors.ErrItemAlreadyExists)
		}
		a.l.Error("failed to create post", zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	return c.JSON(http.StatusOK, &types.Created{
		ID:      post.ID,
		Message: "Successfully inserted",
	})
}

func (a *App) PostGet(c echo.Context) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}

	id, err := a.pathID(c)
	if err != nil {
		return a.er(c, err)
	}

	var post models.Post
	if err := a.db.WithContext(rctx).Preload("Board").First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, apperrors.ErrItemNotExists)
		}
		a.l.Error("failed to get post", zap.Uint("id", id), zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	return c.JSON(http.StatusOK, &types.PostResponse{
		Data:    postInfo(&post, claims.Identity),
		Message: "Successfully retrieved",
	})
}

func (a *App) PostUpdate(c echo.Context) error {
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
	var req types.PostRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	if req.Source == "" || req.SourceURL == "" || req.Board == "" {
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	// Resolve the board by its slug
	var board models.Board
	if err := a.db.WithContext(rctx).First(&board, "slug = ?", req.Board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, apperrors.ErrItemNotExists)
		}
		a.l.Error("failed to find board", zap.String("slug", req.Board), zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	// Allow-listed fields only
	updates := models.Post{
		Source:    req.Source,
		SourceURL: req.SourceURL,
		Title:     req.Title,
		BoardID:   board.ID,
	}

	res := a.db.WithContext(rctx).
		Model(&models.Post{}).
		Where("id = ? AND added_by_id = ?", id, claims.Identity).
		Updates(&updates)
	if res.Error != nil {
		a.l.Error("failed to update post", zap.Uint("id", id), zap.Error(res.Error))
		return a.er(c, apperrors.ErrInternalServer)
	}
	if res.RowsAffected == 0 {
		return a.er(c, apperrors.ErrUpdatingItem)
	}

	return c.JSON(http.StatusOK, &types.Message{Message: "Successfully updated"})
}

func (a *App) PostDelete(c echo.Context) error {
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
		Delete(&models.Post{})
	if res.Error != nil {
		a.l.Error("failed to delete post", zap.Uint("id", id), zap.Error(res.Error))
		return a.er(c, apperrors.ErrInternalServer)
	}
	if res.RowsAffected == 0 {
		return a.er(c, apperrors.ErrDeletingItem)
	}

	return c.JSON(http.StatusOK, &types.Message{Message: "Successfully deleted"})
}
