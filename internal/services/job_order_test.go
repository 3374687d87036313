package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/dto"
	"github.com/MakMD/floor-boss-work-sub000/internal/entities"
	"github.com/MakMD/floor-boss-work-sub000/internal/repositories"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
	"github.com/MakMD/floor-boss-work-sub000/pkg/types"
)

type fakeJobRepo struct {
	jobs        []*entities.Job
	assignments map[string][]string

	createErr error
	assignErr error
}

func (f *fakeJobRepo) CreateJob(ctx context.Context, job *entities.Job) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	id := fmt.Sprintf("job-%d", len(f.jobs)+1)
	job.ID = id
	f.jobs = append(f.jobs, job)
	return id, nil
}

func (f *fakeJobRepo) FindJob(ctx context.Context, id string) (*entities.Job, error) {
	for _, job := range f.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeJobRepo) GetJobs(ctx context.Context, filter types.Filter) ([]entities.Job, uint64, error) {
	return nil, 0, nil
}

func (f *fakeJobRepo) GetJobsForWorker(ctx context.Context, workerID string, filter types.Filter) ([]entities.Job, uint64, error) {
	return nil, 0, nil
}

func (f *fakeJobRepo) AssignWorkers(ctx context.Context, jobID string, workerIDs []string) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	if f.assignments == nil {
		f.assignments = make(map[string][]string)
	}
	f.assignments[jobID] = append(f.assignments[jobID], workerIDs...)
	return nil
}

func (f *fakeJobRepo) UpdateWorkerStatus(ctx context.Context, id, status string) (string, error) {
	return "", nil
}

func (f *fakeJobRepo) UpdateAdminStatus(ctx context.Context, id, status string) (string, error) {
	return "", nil
}

func (f *fakeJobRepo) GetAssignedWorkers(ctx context.Context, jobID string) ([]entities.Worker, error) {
	return nil, nil
}

type fakeInvoiceRepo struct {
	invoices  []*entities.Invoice
	createErr error
}

func (f *fakeInvoiceRepo) CreateInvoice(ctx context.Context, invoice *entities.Invoice) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	id := fmt.Sprintf("inv-%d", len(f.invoices)+1)
	invoice.ID = id
	f.invoices = append(f.invoices, invoice)
	return id, nil
}

func (f *fakeInvoiceRepo) ListByJob(ctx context.Context, jobID string) ([]entities.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) ListForReport(ctx context.Context, from, to string) ([]repositories.InvoiceReportRow, error) {
	return nil, nil
}

type fakeStorage struct {
	saveCalls int
	saveErr   error
}

func (f *fakeStorage) Save(content io.Reader, originalFileName, prefix string) (string, error) {
	f.saveCalls++
	if f.saveErr != nil {
		return "", f.saveErr
	}
	return prefix + "/" + originalFileName, nil
}

func (f *fakeStorage) PublicURL(path string) string { return "http://localhost:8080/uploads/" + path }

func (f *fakeStorage) Delete(path string) error { return nil }

type orderFixture struct {
	jobRepo      *fakeJobRepo
	invoiceRepo  *fakeInvoiceRepo
	activityRepo *fakeActivityRepo
	storage      *fakeStorage
	svc          JobOrderServiceInterface
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		jobRepo:      &fakeJobRepo{},
		invoiceRepo:  &fakeInvoiceRepo{},
		activityRepo: &fakeActivityRepo{},
		storage:      &fakeStorage{},
	}
	f.svc = NewJobOrderService(f.jobRepo, f.invoiceRepo, f.activityRepo, f.storage, zap.NewNop())
	return f
}

func validOrderInput() dto.CreateJobOrderDTO {
	return dto.CreateJobOrderDTO{
		Address: "12 Main St",
		Date:    "2026-08-15",
		Client:  "Acme Corp",
	}
}

func TestCreateJobOrder_EmptyAddressRejectedBeforeSideEffects(t *testing.T) {
	f := newOrderFixture()
	in := validOrderInput()
	in.Address = "   "

	_, err := f.svc.CreateJobOrder(context.Background(), adminActor, in,
		&PhotoFile{FileName: "photo.jpg", Content: strings.NewReader("data")})

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Zero(t, f.storage.saveCalls, "nothing was uploaded")
	assert.Empty(t, f.jobRepo.jobs, "nothing was persisted")
}

func TestCreateJobOrder_NonUUIDActorRejected(t *testing.T) {
	f := newOrderFixture()

	for _, actorID := range []string{"", "42", "not-a-uuid", "00000000-0000-1000-8000-000000000000"} {
		_, err := f.svc.CreateJobOrder(context.Background(),
			dto.Actor{ID: actorID, Role: entities.RoleAdmin}, validOrderInput(), nil)

		assert.ErrorIs(t, err, apperrors.ErrInvalidUserID, "actor id %q", actorID)
	}
	assert.Empty(t, f.jobRepo.jobs)
}

func TestCreateJobOrder_AutoInvoiceFromSquareFootageAndRate(t *testing.T) {
	f := newOrderFixture()
	in := validOrderInput()
	in.SF = "100"
	in.Rate = "2.5"

	result, err := f.svc.CreateJobOrder(context.Background(), adminActor, in, nil)
	require.NoError(t, err)

	require.Len(t, f.invoiceRepo.invoices, 1)
	assert.InDelta(t, 250.00, f.invoiceRepo.invoices[0].Amount, 0.001)
	assert.Equal(t, result.JobID, f.invoiceRepo.invoices[0].JobID)
	assert.Equal(t, "inv-1", result.InvoiceID)
	assert.Contains(t, result.Summary, "Invoice for $250.00 generated.")
}

func TestCreateJobOrder_NoInvoiceWithoutNumbers(t *testing.T) {
	tests := []struct {
		name     string
		sf, rate string
	}{
		{"both empty", "", ""},
		{"missing rate", "100", ""},
		{"unparsable sf", "abc", "2.5"},
		{"zero sf", "0", "2.5"},
		{"negative rate", "100", "-1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture()
			in := validOrderInput()
			in.SF = tc.sf
			in.Rate = tc.rate

			result, err := f.svc.CreateJobOrder(context.Background(), adminActor, in, nil)
			require.NoError(t, err)

			assert.Empty(t, f.invoiceRepo.invoices, "no invoice for non-positive amounts")
			assert.Len(t, f.jobRepo.jobs, 1, "the job is still created")
			assert.Empty(t, result.InvoiceID)
			assert.NotContains(t, result.Summary, "Invoice")
		})
	}
}

func TestCreateJobOrder_InvoiceFailureDegradesToWarning(t *testing.T) {
	f := newOrderFixture()
	f.invoiceRepo.createErr = errors.New("invoice backend down")
	in := validOrderInput()
	in.SF = "100"
	in.Rate = "2.5"

	result, err := f.svc.CreateJobOrder(context.Background(), adminActor, in, nil)
	require.NoError(t, err, "invoice failure does not fail the order")

	assert.Len(t, f.jobRepo.jobs, 1)
	assert.Contains(t, result.Summary, "Auto-invoice generation failed.")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "auto-invoice")
}

func TestCreateJobOrder_AssignmentFailureSurfacesWithoutRollback(t *testing.T) {
	f := newOrderFixture()
	f.jobRepo.assignErr = errors.New("assignment backend down")
	in := validOrderInput()
	in.SF = "100"
	in.Rate = "2.5"
	in.WorkerIDs = []string{workerActor.ID}

	_, err := f.svc.CreateJobOrder(context.Background(), adminActor, in, nil)
	require.Error(t, err)

	assert.Len(t, f.jobRepo.jobs, 1, "the job stays persisted")
	assert.Len(t, f.invoiceRepo.invoices, 1, "the invoice stays persisted")
	assert.Empty(t, f.activityRepo.items, "no activity is emitted after a failed assignment")
}

func TestCreateJobOrder_EmitsOrderCreatedActivity(t *testing.T) {
	f := newOrderFixture()
	in := validOrderInput()
	in.WorkerIDs = []string{workerActor.ID}

	result, err := f.svc.CreateJobOrder(context.Background(), adminActor, in, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{workerActor.ID}, f.jobRepo.assignments[result.JobID])
	require.Len(t, f.activityRepo.items, 1)
	activity := f.activityRepo.items[0]
	assert.Equal(t, entities.ActionOrderCreated, activity.ActionType.String)
	assert.Equal(t, result.JobID, activity.JobID.String)
	assert.Equal(t, adminActor.ID, activity.WorkerID.String)
	assert.Contains(t, string(activity.Details), "12 Main St")
}

func TestCreateJobOrder_PhotoUploadFailureAborts(t *testing.T) {
	f := newOrderFixture()
	f.storage.saveErr = errors.New("disk full")

	_, err := f.svc.CreateJobOrder(context.Background(), adminActor, validOrderInput(),
		&PhotoFile{FileName: "order.jpg", Content: strings.NewReader("data")})

	var upload *apperrors.UploadError
	require.ErrorAs(t, err, &upload)
	assert.Empty(t, f.jobRepo.jobs, "nothing is persisted when the upload fails")
}

func TestCreateJobOrder_PhotoURLStoredOnJob(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.CreateJobOrder(context.Background(), adminActor, validOrderInput(),
		&PhotoFile{FileName: "order.jpg", Content: strings.NewReader("data")})
	require.NoError(t, err)

	require.Len(t, f.jobRepo.jobs, 1)
	job := f.jobRepo.jobs[0]
	require.True(t, job.JobOrderPhotoURL.Valid)
	assert.Equal(t, "http://localhost:8080/uploads/job_orders/order.jpg", job.JobOrderPhotoURL.String)
	assert.Equal(t, 1, f.storage.saveCalls)
}

func TestCreateJobOrder_JobInsertFailureAborts(t *testing.T) {
	f := newOrderFixture()
	f.jobRepo.createErr = errors.New("insert failed")
	in := validOrderInput()
	in.SF = "100"
	in.Rate = "2.5"

	_, err := f.svc.CreateJobOrder(context.Background(), adminActor, in, nil)
	require.Error(t, err)

	assert.Empty(t, f.invoiceRepo.invoices, "no invoice without a job")
	assert.Empty(t, f.activityRepo.items)
}
