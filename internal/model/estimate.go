package model

import "time"

// ScheduleEstimate is the computed start/ETA for a task. It is derived on
// demand and never persisted by the engine itself. When the inputs needed
// to schedule are incomplete, every pointer field is nil and IsOverdue is
// false; consumers render nil fields as "--" rather than failing.
type ScheduleEstimate struct {
	CurrentTime time.Time  `json:"current_time"`
	StartTime   *time.Time `json:"start_time"`
	ETA         *time.Time `json:"eta"`
	HoursNeeded *float64   `json:"hours_needed"`
	TimeToStart *float64   `json:"time_to_start"` // hours
	IsOverdue   bool       `json:"is_overdue"`
}

// Empty reports whether the estimate carries no schedule, i.e. the
// "insufficient data to schedule yet" state.
func (e ScheduleEstimate) Empty() bool {
	return e.StartTime == nil && e.ETA == nil
}
