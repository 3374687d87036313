package dto

// CreateJobOrderDTO carries the order form fields. Numeric fields arrive as
// raw strings; the orchestrator parses them and stores null for empty input.
type CreateJobOrderDTO struct {
	Address           string   `json:"address" validate:"required"`
	Date              string   `json:"date" validate:"required"`
	Client            string   `json:"client"`
	SF                string   `json:"sf"`
	Rate              string   `json:"rate"`
	CompanyID         string   `json:"company_id" validate:"omitempty,uuid4"`
	WorkOrderNumber   string   `json:"work_order_number"`
	StorageInfo       string   `json:"storage_info"`
	AdminInstructions string   `json:"admin_instructions"`
	WorkerIDs         []string `json:"worker_ids" validate:"omitempty,dive,uuid4"`
}

// CreateJobOrderResultDTO reports the outcome of order creation. Warnings hold
// non-fatal failures (auto-invoice, activity emission) that did not prevent
// the job from being created.
type CreateJobOrderResultDTO struct {
	JobID     string   `json:"job_id"`
	Summary   string   `json:"summary"`
	InvoiceID string   `json:"invoice_id,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

type JobDTO struct {
	ID                string       `json:"id"`
	Address           string       `json:"address"`
	Date              string       `json:"date"`
	Client            string       `json:"client"`
	SF                *float64     `json:"sf"`
	Rate              *float64     `json:"rate"`
	CompanyID         *string      `json:"company_id"`
	CompanyName       *string      `json:"company_name,omitempty"`
	WorkOrderNumber   string       `json:"work_order_number"`
	StorageInfo       string       `json:"storage_info"`
	AdminInstructions string       `json:"admin_instructions"`
	JobOrderPhotoURL  *string      `json:"job_order_photo_url"`
	CreatedBy         string       `json:"created_by"`
	WorkerStatus      string       `json:"worker_status"`
	AdminStatus       string       `json:"admin_status"`
	CreatedAt         string       `json:"created_at"`
	Workers           []WorkerDTO  `json:"workers,omitempty"`
	Photos            []PhotoDTO   `json:"photos,omitempty"`
	Invoices          []InvoiceDTO `json:"invoices,omitempty"`
}

type UpdateWorkerStatusDTO struct {
	WorkerStatus string `json:"worker_status" validate:"required,oneof=not_started in_progress done"`
}

type UpdateAdminStatusDTO struct {
	AdminStatus string `json:"admin_status" validate:"required,oneof=pending approved rejected"`
}

type CreateNoteDTO struct {
	Body string `json:"body" validate:"required"`
}

type NoteDTO struct {
	ID         string `json:"id"`
	JobID      string `json:"job_id"`
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name,omitempty"`
	Body       string `json:"body"`
	CreatedAt  string `json:"created_at"`
}

type PhotoDTO struct {
	ID         string `json:"id"`
	JobID      string `json:"job_id"`
	URL        string `json:"url"`
	UploadedBy string `json:"uploaded_by"`
	CreatedAt  string `json:"created_at"`
}

type InvoiceDTO struct {
	ID          string  `json:"id"`
	JobID       string  `json:"job_id"`
	InvoiceDate string  `json:"invoice_date"`
	Amount      float64 `json:"amount"`
}
