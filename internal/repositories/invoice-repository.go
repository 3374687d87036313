package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/entities"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
)

// InvoiceReportRow is one line of the invoice export, joined with the job it
// bills for.
type InvoiceReportRow struct {
	entities.Invoice
	JobAddress      string `db:"job_address"`
	JobClient       string `db:"job_client"`
	WorkOrderNumber string `db:"work_order_number"`
}

type InvoiceRepositoryInterface interface {
	CreateInvoice(ctx context.Context, invoice *entities.Invoice) (string, error)
	ListByJob(ctx context.Context, jobID string) ([]entities.Invoice, error)
	ListForReport(ctx context.Context, from, to string) ([]InvoiceReportRow, error)
}

type InvoiceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewInvoiceRepository(storage *pgxpool.Pool, logger *zap.Logger) InvoiceRepositoryInterface {
	return &InvoiceRepository{storage: storage, logger: logger}
}

func (r *InvoiceRepository) CreateInvoice(ctx context.Context, invoice *entities.Invoice) (string, error) {
	// The amount check mirrors the database constraint so a bad amount fails
	// before the round trip.
	if invoice.Amount <= 0 {
		return "", apperrors.NewInvalidInputError("invoice amount must be positive, got %v", invoice.Amount)
	}

	query := `
		INSERT INTO invoices (job_id, invoice_date, amount, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id`

	var id string
	err := r.storage.QueryRow(ctx, query, invoice.JobID, invoice.InvoiceDate, invoice.Amount).Scan(&id)
	if err != nil {
		return "", apperrors.NewPersistenceError("failed to insert invoice", err)
	}
	return id, nil
}

func (r *InvoiceRepository) ListByJob(ctx context.Context, jobID string) ([]entities.Invoice, error) {
	query := `
		SELECT id, job_id, invoice_date, amount, created_at
		FROM invoices
		WHERE job_id = $1
		ORDER BY created_at DESC`

	rows, err := r.storage.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []entities.Invoice
	for rows.Next() {
		var inv entities.Invoice
		if err := rows.Scan(&inv.ID, &inv.JobID, &inv.InvoiceDate, &inv.Amount, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepository) ListForReport(ctx context.Context, from, to string) ([]InvoiceReportRow, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Select(
		"i.id", "i.job_id", "i.invoice_date", "i.amount", "i.created_at",
		"j.address AS job_address", "j.client AS job_client",
		"j.work_order_number",
	).From("invoices AS i").
		Join("jobs j ON i.job_id = j.id").
		OrderBy("i.invoice_date ASC", "i.created_at ASC")

	if from != "" {
		builder = builder.Where(sq.GtOrEq{"i.invoice_date": from})
	}
	if to != "" {
		builder = builder.Where(sq.LtOrEq{"i.invoice_date": to})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice report: %w", err)
	}
	defer rows.Close()

	var report []InvoiceReportRow
	for rows.Next() {
		var row InvoiceReportRow
		if err := rows.Scan(
			&row.ID, &row.JobID, &row.InvoiceDate, &row.Amount, &row.CreatedAt,
			&row.JobAddress, &row.JobClient, &row.WorkOrderNumber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice report row: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
