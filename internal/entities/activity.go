package entities

import (
	"encoding/json"
	"time"

	"github.com/aarondl/null/v8"
)

// Activity action types. Legacy rows predate the action_type column and carry
// only a free-text message.
const (
	ActionStatusChanged = "STATUS_CHANGED"
	ActionNoteAdded     = "NOTE_ADDED"
	ActionOrderCreated  = "ORDER_CREATED"
)

// Activity is an immutable audit-log entry. Rows are only ever inserted and
// explicitly deleted, never updated.
type Activity struct {
	ID         string          `db:"id"`
	CreatedAt  time.Time       `db:"created_at"`
	ActionType null.String     `db:"action_type"`
	Message    null.String     `db:"message"`
	Details    json.RawMessage `db:"details"`
	JobID      null.String     `db:"job_id"`
	WorkerID   null.String     `db:"worker_id"`
}
