package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Worker-facing and admin-facing job statuses. The two tracks are independent:
// a worker marks progress, an admin approves the result.
const (
	WorkerStatusNotStarted = "not_started"
	WorkerStatusInProgress = "in_progress"
	WorkerStatusDone       = "done"

	AdminStatusPending  = "pending"
	AdminStatusApproved = "approved"
	AdminStatusRejected = "rejected"
)

type Job struct {
	ID                string       `db:"id"`
	Address           string       `db:"address"`
	Date              string       `db:"date"`
	Client            string       `db:"client"`
	SF                null.Float64 `db:"sf"`
	Rate              null.Float64 `db:"rate"`
	CompanyID         null.String  `db:"company_id"`
	WorkOrderNumber   string       `db:"work_order_number"`
	StorageInfo       string       `db:"storage_info"`
	AdminInstructions string       `db:"admin_instructions"`
	JobOrderPhotoURL  null.String  `db:"job_order_photo_url"`
	CreatedBy         string       `db:"created_by"`
	WorkerStatus      string       `db:"worker_status"`
	AdminStatus       string       `db:"admin_status"`
	CreatedAt         time.Time    `db:"created_at"`
}
