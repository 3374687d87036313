package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/services"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
	"github.com/MakMD/floor-boss-work-sub000/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// ExportInvoices streams an XLSX report of invoices within the requested
// date range. Admin only.
func (c *ReportController) ExportInvoices(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actor, err := actorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if !actor.IsAdmin() {
		return utils.ErrorResponse(ctx, apperrors.ErrForbidden, c.logger)
	}

	from := ctx.QueryParam("from")
	to := ctx.QueryParam("to")
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return utils.ErrorResponse(ctx,
				apperrors.NewInvalidInputError("dates must be in YYYY-MM-DD format, got %q", d), c.logger)
		}
	}

	f, err := c.reportService.BuildInvoiceReport(reqCtx, from, to)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileName := fmt.Sprintf("invoices_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
