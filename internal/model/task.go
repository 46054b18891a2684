package model

import "time"

// Task statuses. Open, pending and in-progress tasks count against a
// project's concurrency capacity; queued tasks hold a queue position.
const (
	StatusOpen       = "open"
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusQueued     = "queued"
	StatusDone       = "done"
)

// ActiveStatuses are the statuses that occupy project capacity.
var ActiveStatuses = []string{StatusOpen, StatusPending, StatusInProgress}

type Task struct {
	ID                int        `json:"id"`
	ProjectID         int        `json:"project_id"`
	TaskCode          string     `json:"task_code"`
	Title             string     `json:"title"`
	TaskTypeID        int        `json:"task_type_id"`
	PriorityLevelID   int        `json:"priority_level_id"`
	ComplexityLevelID int        `json:"complexity_level_id"`
	Status            string     `json:"status"`
	QueuePosition     *int       `json:"queue_position"`
	StartTime         *time.Time `json:"start_time"`
	ETA               *time.Time `json:"eta"`
	Details           string     `json:"details"`
	CreatedAt         time.Time  `json:"created_at"`
}
