package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/services"
	"github.com/MakMD/floor-boss-work-sub000/pkg/utils"
)

type DirectoryController struct {
	directoryService services.DirectoryServiceInterface
	logger           *zap.Logger
}

func NewDirectoryController(directoryService services.DirectoryServiceInterface, logger *zap.Logger) *DirectoryController {
	return &DirectoryController{directoryService: directoryService, logger: logger}
}

func (c *DirectoryController) GetWorkerOptions(ctx echo.Context) error {
	options, err := c.directoryService.GetWorkerOptions(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, options, "Worker options fetched", http.StatusOK)
}

func (c *DirectoryController) GetCompanyOptions(ctx echo.Context) error {
	options, err := c.directoryService.GetCompanyOptions(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, options, "Company options fetched", http.StatusOK)
}
