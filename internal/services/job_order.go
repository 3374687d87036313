package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/dto"
	"github.com/MakMD/floor-boss-work-sub000/internal/entities"
	"github.com/MakMD/floor-boss-work-sub000/internal/repositories"
	"github.com/MakMD/floor-boss-work-sub000/pkg/constants"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
	"github.com/MakMD/floor-boss-work-sub000/pkg/filestorage"
)

// PhotoFile is an uploaded job-order photo, decoupled from multipart so the
// pipeline can be exercised without an HTTP request.
type PhotoFile struct {
	FileName string
	Content  io.Reader
}

type JobOrderServiceInterface interface {
	CreateJobOrder(ctx context.Context, actor dto.Actor, in dto.CreateJobOrderDTO, photo *PhotoFile) (*dto.CreateJobOrderResultDTO, error)
}

type JobOrderService struct {
	jobRepo      repositories.JobRepositoryInterface
	invoiceRepo  repositories.InvoiceRepositoryInterface
	activityRepo repositories.ActivityRepositoryInterface
	storage      filestorage.FileStorageInterface
	logger       *zap.Logger
}

func NewJobOrderService(
	jobRepo repositories.JobRepositoryInterface,
	invoiceRepo repositories.InvoiceRepositoryInterface,
	activityRepo repositories.ActivityRepositoryInterface,
	storage filestorage.FileStorageInterface,
	logger *zap.Logger,
) JobOrderServiceInterface {
	return &JobOrderService{
		jobRepo:      jobRepo,
		invoiceRepo:  invoiceRepo,
		activityRepo: activityRepo,
		storage:      storage,
		logger:       logger,
	}
}

// failPolicy decides what a failed step does to the rest of the pipeline.
type failPolicy int

const (
	// policyAbort stops the pipeline and surfaces the step's error.
	policyAbort failPolicy = iota
	// policyWarn records the failure as a warning and continues.
	policyWarn
)

type orderStep struct {
	name   string
	policy failPolicy
	skip   func(p *orderPipeline) bool
	run    func(ctx context.Context, p *orderPipeline) error
}

// orderPipeline is the mutable state threaded through the steps of one order
// creation.
type orderPipeline struct {
	actor dto.Actor
	in    dto.CreateJobOrderDTO
	photo *PhotoFile

	sf   null.Float64
	rate null.Float64

	photoURL  null.String
	jobID     string
	invoiceID string
	warnings  []string
}

// CreateJobOrder runs job-order creation as an ordered sequence of dependent
// side-effecting steps. The fatality of each step is declared in the step
// table, not buried in error handling: photo upload and job insert abort the
// whole operation, auto-invoice and activity emission degrade to warnings,
// worker assignment surfaces as an error even though the job already
// persisted (accepted inconsistency window, no rollback).
func (s *JobOrderService) CreateJobOrder(ctx context.Context, actor dto.Actor, in dto.CreateJobOrderDTO, photo *PhotoFile) (*dto.CreateJobOrderResultDTO, error) {
	if err := validateOrderInput(actor, in); err != nil {
		return nil, err
	}

	p := &orderPipeline{
		actor: actor,
		in:    in,
		photo: photo,
		sf:    parseNullableFloat(in.SF),
		rate:  parseNullableFloat(in.Rate),
	}

	steps := []orderStep{
		{
			name:   "photo upload",
			policy: policyAbort,
			skip:   func(p *orderPipeline) bool { return p.photo == nil },
			run:    s.uploadPhoto,
		},
		{
			name:   "job insert",
			policy: policyAbort,
			run:    s.insertJob,
		},
		{
			name:   "auto-invoice",
			policy: policyWarn,
			skip:   func(p *orderPipeline) bool { return !p.autoInvoiceEligible() },
			run:    s.createAutoInvoice,
		},
		{
			name:   "worker assignment",
			policy: policyAbort,
			skip:   func(p *orderPipeline) bool { return len(p.in.WorkerIDs) == 0 },
			run:    s.assignWorkers,
		},
		{
			name:   "activity emission",
			policy: policyWarn,
			run:    s.emitOrderCreated,
		},
	}

	for _, step := range steps {
		if step.skip != nil && step.skip(p) {
			continue
		}
		if err := step.run(ctx, p); err != nil {
			switch step.policy {
			case policyWarn:
				s.logger.Warn("order creation step failed, continuing",
					zap.String("step", step.name), zap.String("jobID", p.jobID), zap.Error(err))
				p.warnings = append(p.warnings, fmt.Sprintf("%s failed: %v", step.name, err))
			default:
				s.logger.Error("order creation step failed, aborting",
					zap.String("step", step.name), zap.String("jobID", p.jobID), zap.Error(err))
				return nil, err
			}
		}
	}

	result := &dto.CreateJobOrderResultDTO{
		JobID:     p.jobID,
		Summary:   p.summary(),
		InvoiceID: p.invoiceID,
		Warnings:  p.warnings,
	}

	s.logger.Info("job order created",
		zap.String("jobID", p.jobID),
		zap.String("actor", actor.ID),
		zap.Int("workers", len(in.WorkerIDs)),
		zap.Bool("invoice", p.invoiceID != ""),
		zap.Int("warnings", len(p.warnings)))
	return result, nil
}

// validateOrderInput enforces the preconditions before any side effect.
func validateOrderInput(actor dto.Actor, in dto.CreateJobOrderDTO) error {
	parsed, err := uuid.Parse(actor.ID)
	if err != nil || parsed.Version() != 4 {
		return apperrors.ErrInvalidUserID
	}
	if strings.TrimSpace(in.Address) == "" {
		return apperrors.NewInvalidInputError("address is required")
	}
	if strings.TrimSpace(in.Date) == "" {
		return apperrors.NewInvalidInputError("date is required")
	}
	return nil
}

// parseNullableFloat turns raw form input into a nullable numeric: empty and
// unparsable input both become null.
func parseNullableFloat(raw string) null.Float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return null.Float64{}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return null.Float64{}
	}
	return null.Float64From(v)
}

func (p *orderPipeline) autoInvoiceEligible() bool {
	return p.sf.Valid && p.rate.Valid && p.sf.Float64 > 0 && p.rate.Float64 > 0
}

func (p *orderPipeline) summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order created at %s.", strings.TrimSpace(p.in.Address))

	switch {
	case p.invoiceID != "":
		fmt.Fprintf(&b, " Invoice for $%.2f generated.", p.sf.Float64*p.rate.Float64)
	case p.autoInvoiceEligible():
		b.WriteString(" Auto-invoice generation failed.")
	}
	return b.String()
}

func (s *JobOrderService) uploadPhoto(ctx context.Context, p *orderPipeline) error {
	path, err := s.storage.Save(p.photo.Content, p.photo.FileName, constants.UploadContextJobOrder.String())
	if err != nil {
		return apperrors.NewUploadError(err)
	}
	p.photoURL = null.StringFrom(s.storage.PublicURL(path))
	return nil
}

func (s *JobOrderService) insertJob(ctx context.Context, p *orderPipeline) error {
	job := &entities.Job{
		Address:           strings.TrimSpace(p.in.Address),
		Date:              p.in.Date,
		Client:            p.in.Client,
		SF:                p.sf,
		Rate:              p.rate,
		CompanyID:         null.NewString(p.in.CompanyID, p.in.CompanyID != ""),
		WorkOrderNumber:   p.in.WorkOrderNumber,
		StorageInfo:       p.in.StorageInfo,
		AdminInstructions: p.in.AdminInstructions,
		JobOrderPhotoURL:  p.photoURL,
		CreatedBy:         p.actor.ID,
		WorkerStatus:      entities.WorkerStatusNotStarted,
		AdminStatus:       entities.AdminStatusPending,
	}

	id, err := s.jobRepo.CreateJob(ctx, job)
	if err != nil {
		// The uploaded photo, if any, is orphaned here on purpose: storage
		// cleanup is not worth coupling to the insert path.
		return err
	}
	p.jobID = id
	return nil
}

func (s *JobOrderService) createAutoInvoice(ctx context.Context, p *orderPipeline) error {
	invoice := &entities.Invoice{
		JobID:       p.jobID,
		InvoiceDate: time.Now().Format("2006-01-02"),
		Amount:      p.sf.Float64 * p.rate.Float64,
	}

	id, err := s.invoiceRepo.CreateInvoice(ctx, invoice)
	if err != nil {
		return err
	}
	p.invoiceID = id
	return nil
}

func (s *JobOrderService) assignWorkers(ctx context.Context, p *orderPipeline) error {
	return s.jobRepo.AssignWorkers(ctx, p.jobID, p.in.WorkerIDs)
}

func (s *JobOrderService) emitOrderCreated(ctx context.Context, p *orderPipeline) error {
	details, err := json.Marshal(map[string]string{
		"address": strings.TrimSpace(p.in.Address),
		"client":  p.in.Client,
	})
	if err != nil {
		return err
	}

	activity := &entities.Activity{
		ActionType: null.StringFrom(entities.ActionOrderCreated),
		Details:    details,
		JobID:      null.StringFrom(p.jobID),
		WorkerID:   null.StringFrom(p.actor.ID),
	}

	_, err = s.activityRepo.Create(ctx, activity)
	return err
}
