package dto

import "encoding/json"

// ActivityJobDTO is the slice of job fields joined onto a feed record.
type ActivityJobDTO struct {
	Address         string `json:"address"`
	Client          string `json:"client"`
	WorkOrderNumber string `json:"work_order_number"`
}

type ActivityWorkerDTO struct {
	Name string `json:"name"`
}

// ActivityDTO is one enriched feed record. WorkerName falls back to "system"
// for records that have no worker reference.
type ActivityDTO struct {
	ID         string             `json:"id"`
	CreatedAt  string             `json:"created_at"`
	ActionType *string            `json:"action_type,omitempty"`
	Message    *string            `json:"message,omitempty"`
	Details    json.RawMessage    `json:"details,omitempty"`
	JobID      *string            `json:"job_id,omitempty"`
	WorkerID   *string            `json:"worker_id,omitempty"`
	Job        *ActivityJobDTO    `json:"jobs,omitempty"`
	Worker     *ActivityWorkerDTO `json:"workers,omitempty"`
	WorkerName string             `json:"worker_name"`
	Text       string             `json:"text"`
}

// ActivityPageDTO is one fetched page of the feed plus its hasMore flag.
type ActivityPageDTO struct {
	Records    []ActivityDTO `json:"records"`
	HasMore    bool          `json:"has_more"`
	TotalCount uint64        `json:"total_count"`
	Page       int           `json:"page"`
}
