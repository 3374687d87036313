package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/MakMD/floor-boss-work-sub000/internal/controllers"
)

func runDirectoryRouter(group *echo.Group, ctrl *controllers.DirectoryController) {
	group.GET("/workers/options", ctrl.GetWorkerOptions)
	group.GET("/companies/options", ctrl.GetCompanyOptions)
}
