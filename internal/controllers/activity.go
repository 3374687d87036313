package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/services"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
	"github.com/MakMD/floor-boss-work-sub000/pkg/utils"
)

type ActivityController struct {
	feedService services.ActivityFeedServiceInterface
	logger      *zap.Logger
}

func NewActivityController(feedService services.ActivityFeedServiceInterface, logger *zap.Logger) *ActivityController {
	return &ActivityController{feedService: feedService, logger: logger}
}

// GetActivities serves one page of the feed. The search term is the committed
// value after the UI's input debouncing; this endpoint runs one query per
// call.
func (c *ActivityController) GetActivities(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actor, err := actorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	page := 0
	if pageStr := ctx.QueryParam("page"); pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusBadRequest, "Invalid page parameter", err, nil), c.logger)
		}
	}
	term := ctx.QueryParam("search")

	feed := c.feedService.NewFeed(actor, term)
	result, err := feed.FetchPage(reqCtx, page)
	if err != nil {
		c.logger.Error("failed to fetch activity feed page",
			zap.Int("page", page), zap.String("term", term), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, result, "Activities fetched", http.StatusOK)
}

func (c *ActivityController) DeleteActivity(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actor, err := actorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	id := ctx.Param("id")
	if id == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Activity id is required", nil, nil), c.logger)
	}

	feed := c.feedService.NewFeed(actor, "")
	if err := feed.DeleteByID(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Activity deleted", http.StatusOK)
}
