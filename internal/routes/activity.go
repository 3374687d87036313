package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/MakMD/floor-boss-work-sub000/internal/controllers"
)

func runActivityRouter(group *echo.Group, ctrl *controllers.ActivityController) {
	activities := group.Group("/activities")
	{
		activities.GET("", ctrl.GetActivities)
		activities.DELETE("/:id", ctrl.DeleteActivity)
	}
}
