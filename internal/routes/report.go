package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/MakMD/floor-boss-work-sub000/internal/controllers"
)

func runReportRouter(group *echo.Group, ctrl *controllers.ReportController) {
	group.GET("/reports/invoices", ctrl.ExportInvoices)
}
