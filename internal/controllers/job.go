package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/dto"
	"github.com/MakMD/floor-boss-work-sub000/internal/services"
	"github.com/MakMD/floor-boss-work-sub000/pkg/config"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
	"github.com/MakMD/floor-boss-work-sub000/pkg/types"
	"github.com/MakMD/floor-boss-work-sub000/pkg/utils"
	"github.com/MakMD/floor-boss-work-sub000/pkg/validation"
)

type JobController struct {
	jobOrderService services.JobOrderServiceInterface
	jobService      services.JobServiceInterface
	uploadRules     config.UploadConfig
	logger          *zap.Logger
}

func NewJobController(
	jobOrderService services.JobOrderServiceInterface,
	jobService services.JobServiceInterface,
	uploadRules config.UploadConfig,
	logger *zap.Logger,
) *JobController {
	return &JobController{
		jobOrderService: jobOrderService,
		jobService:      jobService,
		uploadRules:     uploadRules,
		logger:          logger,
	}
}

// CreateJobOrder accepts a multipart form with the order fields in a JSON
// "data" field and the optional job-order photo in "photo".
func (c *JobController) CreateJobOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actor, err := actorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if !actor.IsAdmin() {
		return utils.ErrorResponse(ctx, apperrors.ErrForbidden, c.logger)
	}

	dataString := ctx.FormValue("data")
	if dataString == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Form field 'data' with JSON payload is required", nil, nil), c.logger)
	}

	var in dto.CreateJobOrderDTO
	if err := json.Unmarshal([]byte(dataString), &in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Malformed JSON in 'data' field", err, nil), c.logger)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var photo *services.PhotoFile
	fileHeader, err := ctx.FormFile("photo")
	if err != nil && err != http.ErrMissingFile {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if fileHeader != nil {
		src, err := fileHeader.Open()
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewUploadError(err), c.logger)
		}
		defer src.Close()
		if err := validation.ValidateFile(fileHeader, src, c.uploadRules); err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		photo = &services.PhotoFile{FileName: fileHeader.Filename, Content: src}
	}

	result, err := c.jobOrderService.CreateJobOrder(reqCtx, actor, in, photo)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, result, result.Summary, http.StatusCreated)
}

func (c *JobController) GetJobs(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actor, err := actorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filter := types.Filter{Search: ctx.QueryParam("search"), Limit: 50}
	if limitStr := ctx.QueryParam("limit"); limitStr != "" {
		if l, err := strconv.ParseUint(limitStr, 10, 64); err == nil && l > 0 && l <= 200 {
			filter.Limit = l
		}
	}
	if offsetStr := ctx.QueryParam("offset"); offsetStr != "" {
		if o, err := strconv.ParseUint(offsetStr, 10, 64); err == nil {
			filter.Offset = o
		}
	}

	jobs, total, err := c.jobService.GetJobs(reqCtx, actor, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	page := 0
	if filter.Limit > 0 {
		page = int(filter.Offset / filter.Limit)
	}
	return utils.SuccessResponse(ctx, map[string]interface{}{
		"list": jobs,
		"pagination": types.Pagination{
			TotalCount: total,
			Page:       page,
			Limit:      int(filter.Limit),
		},
	}, "Jobs fetched", http.StatusOK)
}

func (c *JobController) FindJob(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actor, err := actorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	job, err := c.jobService.FindJob(reqCtx, actor, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, job, "Job fetched", http.StatusOK)
}

func (c *JobController) UpdateWorkerStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actor, err := actorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var in dto.UpdateWorkerStatusDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Malformed request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.jobService.UpdateWorkerStatus(reqCtx, actor, ctx.Param("id"), in.WorkerStatus); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Worker status updated", http.StatusOK)
}

func (c *JobController) UpdateAdminStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actor, err := actorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var in dto.UpdateAdminStatusDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Malformed request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.jobService.UpdateAdminStatus(reqCtx, actor, ctx.Param("id"), in.AdminStatus); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Admin status updated", http.StatusOK)
}

func (c *JobController) AddNote(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actor, err := actorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var in dto.CreateNoteDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Malformed request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	note, err := c.jobService.AddNote(reqCtx, actor, ctx.Param("id"), in.Body)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, note, "Note added", http.StatusCreated)
}

func (c *JobController) GetNotes(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	notes, err := c.jobService.GetNotes(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, notes, "Notes fetched", http.StatusOK)
}

func (c *JobController) AddPhoto(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actor, err := actorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Form file 'photo' is required", err, nil), c.logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewUploadError(err), c.logger)
	}
	defer src.Close()

	if err := validation.ValidateFile(fileHeader, src, c.uploadRules); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	photo, err := c.jobService.AddPhoto(reqCtx, actor, ctx.Param("id"),
		&services.PhotoFile{FileName: fileHeader.Filename, Content: src})
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, photo, "Photo uploaded", http.StatusCreated)
}

func (c *JobController) GetPhotos(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	photos, err := c.jobService.GetPhotos(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, photos, "Photos fetched", http.StatusOK)
}

func (c *JobController) GetInvoices(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actor, err := actorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if !actor.IsAdmin() {
		return utils.ErrorResponse(ctx, apperrors.ErrForbidden, c.logger)
	}

	invoices, err := c.jobService.GetInvoices(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, invoices, "Invoices fetched", http.StatusOK)
}
