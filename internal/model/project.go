package model

import "time"

// ProjectTimelineState is a project's current scheduling context. It is
// owned by the project and updated externally as tasks start and finish;
// the scheduling engine only reads it.
type ProjectTimelineState struct {
	ProjectID          int       `json:"project_id"`
	BaseTime           time.Time `json:"base_time"`
	GapTime            float64   `json:"gap_time"` // hours
	ActiveTaskCount    int       `json:"active_task_count"`
	MaxConcurrentTasks int       `json:"max_concurrent_tasks"`
}
