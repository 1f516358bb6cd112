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

// boardMapFields applies the allow-listed mutable fields; unknown request
// keys never reach the row.
func (a *App) boardMapFields(req *types.BoardRequest, board *models.Board) {
	if req.Title != "" {
		board.Title = req.Title
	}
	if req.Symbol != "" {
		board.Symbol = req.Symbol
	}
	if req.Description != "" {
		board.Description = req.Description
	}
}

func boardInfo(board *models.Board) types.BoardInfo {
	return types.BoardInfo{
		ID:          board.ID,
		Title:       board.Title,
		Symbol:      board.Symbol,
		Description: board.Description,
		Slug:        board.Slug,
		IsAdmin:     board.IsAdmin,
		AddedBy:     board.AddedByID,
		CreatedAt:   board.CreatedAt,
		ModifiedAt:  board.UpdatedAt,
	}
}

func (a *App) BoardList(c echo.Context) error {
	rctx := c.Request().Context()

	var boards []models.Board
	if err := a.db.WithContext(rctx).Order("id ASC").Find(&boards).Error; err != nil {
		a.l.Error("failed to get board list", zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	res := make([]types.BoardInfo, 0, len(boards))
	for i := range boards {
		res = append(res, boardInfo(&boards[i]))
	}

	return c.JSON(http.StatusOK, &types.BoardListResponse{
		Data:    res,
		Message: "Successfully retrieved",
		Count:   len(res),
	})
}

func (a *App) BoardCreate(c echo.Context) error {
	rctx := c.Request().Context()

	claims, err := a.currentClaims(c)
	if err != nil {
		return a.er(c, err)
	}

	// Bind the request body
	var req types.BoardRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	if req.Title == "" {
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	owner := claims.Identity
	board := models.Board{
		Slug:      slug.Leaf(),
		AddedByID: &owner,
	}
	a.boardMapFields(&req, &board)

	if err := a.db.WithContext(rctx).Create(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return a.er(c, apperrors.ErrItemAlreadyExists)
		}
		a.l.Error("failed to create board", zap.Any("board", board), zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	return c.JSON(http.StatusOK, &types.BoardCreated{
		ID:      board.ID,
		Message: "Successfully inserted",
		Board:   boardInfo(&board),
	})
}

func (a *App) BoardGet(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := a.pathID(c)
	if err != nil {
		return a.er(c, err)
	}

	var board models.Board
	if err := a.db.WithContext(rctx).First(&board, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, apperrors.ErrItemNotExists)
		}
		a.l.Error("failed to get board", zap.Uint("id", id), zap.Error(err))
		return a.er(c, apperrors.ErrInternalServer)
	}

	return c.JSON(http.StatusOK, &types.BoardResponse{
		Data:    boardInfo(&board),
		Message: "Successfully retrieved",
	})
}

func (a *App) BoardUpdate(c echo.Context) error {
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
	var req types.BoardRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	if req.Title == "" && req.Symbol == "" && req.Description == "" {
		return a.er(c, apperrors.ErrSchemaValidation)
	}

	var board models.Board
	a.boardMapFields(&req, &board)

	// Ownership is part of the filter, so updating someone else's board
	// reads as a miss
	res := a.db.WithContext(rctx).
		Model(&models.Board{}).
		Where("id = ? AND added_by_id = ?", id, claims.Identity).
		Updates(&board)
	if res.Error != nil {
		a.l.Error("failed to update board", zap.Uint("id", id), zap.Error(res.Error))
		return a.er(c, apperrors.ErrInternalServer)
	}
	if res.RowsAffected == 0 {
		return a.er(c, apperrors.ErrUpdatingItem)
	}

	return c.JSON(http.StatusOK, &types.Message{Message: "Successfully updated"})
}

func (a *App) BoardDelete(c echo.Context) error {
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
		Delete(&models.Board{})
	if res.Error != nil {
		a.l.Error("failed to delete board", zap.Uint("id", id), zap.Error(res.Error))
		return a.er(c, apperrors.ErrInternalServer)
	}
	if res.RowsAffected == 0 {
		return a.er(c, apperrors.ErrDeletingItem)
	}

	return c.JSON(http.StatusOK, &types.Message{Message: "Successfully deleted"})
}
