package model

// Reference tables for scheduling. All three are read-only lookups and
// immutable within a single scheduling run. Duration fields are stored as
// text and go through schedule.ParseDuration, which also accepts structured
// intervals and raw minute counts.

type TaskType struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	BaseDuration string `json:"base_duration"`
}

// PriorityLevel ordering: a lower ID means more urgent.
type PriorityLevel struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	TimeToStart string  `json:"time_to_start"`
	Multiplier  float64 `json:"multiplier"`
	Color       string  `json:"color"`
}

type ComplexityLevel struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}
