package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/MakMD/floor-boss-work-sub000/internal/controllers"
)

func runAuthRouter(api *echo.Group, ctrl *controllers.AuthController) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", ctrl.Login)
		authGroup.POST("/refresh", ctrl.Refresh)
	}
}
