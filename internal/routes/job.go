package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/MakMD/floor-boss-work-sub000/internal/controllers"
)

func runJobRouter(group *echo.Group, ctrl *controllers.JobController) {
	jobs := group.Group("/jobs")
	{
		jobs.POST("", ctrl.CreateJobOrder)
		jobs.GET("", ctrl.GetJobs)
		jobs.GET("/:id", ctrl.FindJob)
		jobs.PATCH("/:id/worker-status", ctrl.UpdateWorkerStatus)
		jobs.PATCH("/:id/admin-status", ctrl.UpdateAdminStatus)
		jobs.POST("/:id/notes", ctrl.AddNote)
		jobs.GET("/:id/notes", ctrl.GetNotes)
		jobs.POST("/:id/photos", ctrl.AddPhoto)
		jobs.GET("/:id/photos", ctrl.GetPhotos)
		jobs.GET("/:id/invoices", ctrl.GetInvoices)
	}
}
