package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/dto"
	"github.com/MakMD/floor-boss-work-sub000/internal/entities"
	"github.com/MakMD/floor-boss-work-sub000/internal/repositories"
	"github.com/MakMD/floor-boss-work-sub000/pkg/constants"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
	"github.com/MakMD/floor-boss-work-sub000/pkg/filestorage"
	"github.com/MakMD/floor-boss-work-sub000/pkg/types"
)

type JobServiceInterface interface {
	GetJobs(ctx context.Context, actor dto.Actor, filter types.Filter) ([]dto.JobDTO, uint64, error)
	FindJob(ctx context.Context, actor dto.Actor, id string) (*dto.JobDTO, error)
	UpdateWorkerStatus(ctx context.Context, actor dto.Actor, jobID, status string) error
	UpdateAdminStatus(ctx context.Context, actor dto.Actor, jobID, status string) error
	AddNote(ctx context.Context, actor dto.Actor, jobID, body string) (*dto.NoteDTO, error)
	GetNotes(ctx context.Context, jobID string) ([]dto.NoteDTO, error)
	AddPhoto(ctx context.Context, actor dto.Actor, jobID string, photo *PhotoFile) (*dto.PhotoDTO, error)
	GetPhotos(ctx context.Context, jobID string) ([]dto.PhotoDTO, error)
	GetInvoices(ctx context.Context, jobID string) ([]dto.InvoiceDTO, error)
}

type JobService struct {
	jobRepo      repositories.JobRepositoryInterface
	noteRepo     repositories.NoteRepositoryInterface
	photoRepo    repositories.PhotoRepositoryInterface
	invoiceRepo  repositories.InvoiceRepositoryInterface
	activityRepo repositories.ActivityRepositoryInterface
	companyRepo  repositories.CompanyRepositoryInterface
	storage      filestorage.FileStorageInterface
	logger       *zap.Logger
}

func NewJobService(
	jobRepo repositories.JobRepositoryInterface,
	noteRepo repositories.NoteRepositoryInterface,
	photoRepo repositories.PhotoRepositoryInterface,
	invoiceRepo repositories.InvoiceRepositoryInterface,
	activityRepo repositories.ActivityRepositoryInterface,
	companyRepo repositories.CompanyRepositoryInterface,
	storage filestorage.FileStorageInterface,
	logger *zap.Logger,
) JobServiceInterface {
	return &JobService{
		jobRepo:      jobRepo,
		noteRepo:     noteRepo,
		photoRepo:    photoRepo,
		invoiceRepo:  invoiceRepo,
		activityRepo: activityRepo,
		companyRepo:  companyRepo,
		storage:      storage,
		logger:       logger,
	}
}

// GetJobs lists all jobs for admins and only assigned jobs for workers.
func (s *JobService) GetJobs(ctx context.Context, actor dto.Actor, filter types.Filter) ([]dto.JobDTO, uint64, error) {
	var (
		jobs  []entities.Job
		total uint64
		err   error
	)
	if actor.IsAdmin() {
		jobs, total, err = s.jobRepo.GetJobs(ctx, filter)
	} else {
		jobs, total, err = s.jobRepo.GetJobsForWorker(ctx, actor.ID, filter)
	}
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.JobDTO, 0, len(jobs))
	for _, job := range jobs {
		result = append(result, jobToDTO(job))
	}
	return result, total, nil
}

func (s *JobService) FindJob(ctx context.Context, actor dto.Actor, id string) (*dto.JobDTO, error) {
	job, err := s.jobRepo.FindJob(ctx, id)
	if err != nil {
		return nil, err
	}

	workers, err := s.jobRepo.GetAssignedWorkers(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !workerAssigned(workers, actor.ID) {
		// Workers only see their own jobs; to anyone else the job is absent.
		return nil, apperrors.ErrNotFound
	}

	result := jobToDTO(*job)
	for _, w := range workers {
		result.Workers = append(result.Workers, dto.WorkerDTO{
			ID: w.ID, Name: w.Name, Email: w.Email, Role: w.Role,
		})
	}

	if job.CompanyID.Valid {
		if name, err := s.companyRepo.GetName(ctx, job.CompanyID.String); err == nil {
			result.CompanyName = &name
		} else {
			s.logger.Warn("failed to resolve company name",
				zap.String("companyID", job.CompanyID.String), zap.Error(err))
		}
	}

	if result.Photos, err = s.GetPhotos(ctx, id); err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		// Invoices carry billing amounts, admin eyes only.
		if result.Invoices, err = s.GetInvoices(ctx, id); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

func (s *JobService) UpdateWorkerStatus(ctx context.Context, actor dto.Actor, jobID, status string) error {
	if !validWorkerStatus(status) {
		return apperrors.NewInvalidInputError("unknown worker status %q", status)
	}

	oldStatus, err := s.jobRepo.UpdateWorkerStatus(ctx, jobID, status)
	if err != nil {
		return err
	}

	s.emitStatusChanged(ctx, actor, jobID, "worker_status", oldStatus, status)
	return nil
}

func (s *JobService) UpdateAdminStatus(ctx context.Context, actor dto.Actor, jobID, status string) error {
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if !validAdminStatus(status) {
		return apperrors.NewInvalidInputError("unknown admin status %q", status)
	}

	oldStatus, err := s.jobRepo.UpdateAdminStatus(ctx, jobID, status)
	if err != nil {
		return err
	}

	s.emitStatusChanged(ctx, actor, jobID, "admin_status", oldStatus, status)
	return nil
}

func (s *JobService) AddNote(ctx context.Context, actor dto.Actor, jobID, body string) (*dto.NoteDTO, error) {
	if _, err := s.jobRepo.FindJob(ctx, jobID); err != nil {
		return nil, err
	}

	note := &entities.Note{JobID: jobID, WorkerID: actor.ID, Body: body}
	id, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, err
	}

	activity := &entities.Activity{
		ActionType: null.StringFrom(entities.ActionNoteAdded),
		JobID:      null.StringFrom(jobID),
		WorkerID:   null.StringFrom(actor.ID),
	}
	if _, err := s.activityRepo.Create(ctx, activity); err != nil {
		// A missing audit entry is not worth failing the note over.
		s.logger.Warn("failed to emit note activity", zap.String("jobID", jobID), zap.Error(err))
	}

	return &dto.NoteDTO{
		ID:        id,
		JobID:     jobID,
		WorkerID:  actor.ID,
		Body:      body,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *JobService) GetNotes(ctx context.Context, jobID string) ([]dto.NoteDTO, error) {
	items, err := s.noteRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	notes := make([]dto.NoteDTO, 0, len(items))
	for _, item := range items {
		n := dto.NoteDTO{
			ID:        item.ID,
			JobID:     item.JobID,
			WorkerID:  item.WorkerID,
			Body:      item.Body,
			CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		}
		if item.WorkerName.Valid {
			n.WorkerName = item.WorkerName.String
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (s *JobService) AddPhoto(ctx context.Context, actor dto.Actor, jobID string, photo *PhotoFile) (*dto.PhotoDTO, error) {
	if _, err := s.jobRepo.FindJob(ctx, jobID); err != nil {
		return nil, err
	}

	path, err := s.storage.Save(photo.Content, photo.FileName, constants.UploadContextJobPhoto.String())
	if err != nil {
		return nil, apperrors.NewUploadError(err)
	}
	url := s.storage.PublicURL(path)

	id, err := s.photoRepo.Create(ctx, &entities.Photo{
		JobID:      jobID,
		URL:        url,
		UploadedBy: actor.ID,
	})
	if err != nil {
		return nil, err
	}

	return &dto.PhotoDTO{
		ID:         id,
		JobID:      jobID,
		URL:        url,
		UploadedBy: actor.ID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *JobService) GetPhotos(ctx context.Context, jobID string) ([]dto.PhotoDTO, error) {
	items, err := s.photoRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	photos := make([]dto.PhotoDTO, 0, len(items))
	for _, p := range items {
		photos = append(photos, dto.PhotoDTO{
			ID:         p.ID,
			JobID:      p.JobID,
			URL:        p.URL,
			UploadedBy: p.UploadedBy,
			CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return photos, nil
}

func (s *JobService) GetInvoices(ctx context.Context, jobID string) ([]dto.InvoiceDTO, error) {
	items, err := s.invoiceRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	invoices := make([]dto.InvoiceDTO, 0, len(items))
	for _, inv := range items {
		invoices = append(invoices, dto.InvoiceDTO{
			ID:          inv.ID,
			JobID:       inv.JobID,
			InvoiceDate: inv.InvoiceDate,
			Amount:      inv.Amount,
		})
	}
	return invoices, nil
}

// emitStatusChanged writes the STATUS_CHANGED audit entry. The status update
// itself already committed, so emission failure only logs.
func (s *JobService) emitStatusChanged(ctx context.Context, actor dto.Actor, jobID, field, oldValue, newValue string) {
	details, err := json.Marshal(map[string]interface{}{
		"changes": map[string]string{field: newValue},
		"old":     map[string]string{field: oldValue},
	})
	if err != nil {
		s.logger.Warn("failed to marshal status change details", zap.Error(err))
		return
	}

	activity := &entities.Activity{
		ActionType: null.StringFrom(entities.ActionStatusChanged),
		Details:    details,
		JobID:      null.StringFrom(jobID),
		WorkerID:   null.StringFrom(actor.ID),
	}
	if _, err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Warn("failed to emit status change activity",
			zap.String("jobID", jobID), zap.String("field", field), zap.Error(err))
	}
}

func jobToDTO(job entities.Job) dto.JobDTO {
	d := dto.JobDTO{
		ID:                job.ID,
		Address:           job.Address,
		Date:              job.Date,
		Client:            job.Client,
		WorkOrderNumber:   job.WorkOrderNumber,
		StorageInfo:       job.StorageInfo,
		AdminInstructions: job.AdminInstructions,
		CreatedBy:         job.CreatedBy,
		WorkerStatus:      job.WorkerStatus,
		AdminStatus:       job.AdminStatus,
		CreatedAt:         job.CreatedAt.UTC().Format(time.RFC3339),
	}
	if job.SF.Valid {
		d.SF = &job.SF.Float64
	}
	if job.Rate.Valid {
		d.Rate = &job.Rate.Float64
	}
	if job.CompanyID.Valid {
		d.CompanyID = &job.CompanyID.String
	}
	if job.JobOrderPhotoURL.Valid {
		d.JobOrderPhotoURL = &job.JobOrderPhotoURL.String
	}
	return d
}

func workerAssigned(workers []entities.Worker, workerID string) bool {
	for _, w := range workers {
		if w.ID == workerID {
			return true
		}
	}
	return false
}

func validWorkerStatus(status string) bool {
	switch status {
	case entities.WorkerStatusNotStarted, entities.WorkerStatusInProgress, entities.WorkerStatusDone:
		return true
	}
	return false
}

func validAdminStatus(status string) bool {
	switch status {
	case entities.AdminStatusPending, entities.AdminStatusApproved, entities.AdminStatusRejected:
		return true
	}
	return false
}
