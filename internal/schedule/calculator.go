package schedule

import (
	"math"
	"time"

	"taskboard/internal/model"
)

// Rules carries the working-hours and overdue constants the calculator
// applies. The numbers mirror the dashboard's historical behavior; they are
// configuration rather than code so operators can tune them without a
// deploy.
type Rules struct {
	WorkdayStartHour     int           // tasks never start before this clock hour
	WorkdayEndHour       int           // tasks never start at or after this clock hour
	WorkingHoursPerDay   float64       // rate used when rolling ETA overflow into extra days
	OverduePriorityFloor int           // priority IDs at or above this are overdue-eligible
	OverdueHorizon       time.Duration // ETA distance beyond which such tasks flag overdue
}

// DefaultRules returns the 10:00-18:00 window, 8 working hours per day and
// the priority>=4 / 48h overdue heuristic.
func DefaultRules() Rules {
	return Rules{
		WorkdayStartHour:     10,
		WorkdayEndHour:       18,
		WorkingHoursPerDay:   8,
		OverduePriorityFloor: 4,
		OverdueHorizon:       48 * time.Hour,
	}
}

// Estimate computes when a task would start and finish given its reference
// rows and the project's timeline state. Any nil input means the task is
// still being configured; the result is then an empty estimate rather than
// an error. The current time is an explicit argument so callers and tests
// control it.
func Estimate(
	now time.Time,
	taskType *model.TaskType,
	priority *model.PriorityLevel,
	complexity *model.ComplexityLevel,
	timeline *model.ProjectTimelineState,
	rules Rules,
) model.ScheduleEstimate {
	est := model.ScheduleEstimate{CurrentTime: now}
	if taskType == nil || priority == nil || complexity == nil || timeline == nil {
		return est
	}

	timeToStart := ParseDuration(priority.TimeToStart)

	// At capacity the task additionally waits out the project's gap time.
	totalDelay := timeToStart
	if timeline.ActiveTaskCount >= timeline.MaxConcurrentTasks {
		totalDelay += timeline.GapTime
	}

	start := clampToWorkWindow(timeline.BaseTime.Add(hoursToDuration(totalDelay)), rules)

	hoursNeeded := ParseDuration(taskType.BaseDuration) * priority.Multiplier * complexity.Multiplier
	eta := rollEtaOverflow(start.Add(hoursToDuration(hoursNeeded)), rules)

	est.StartTime = &start
	est.ETA = &eta
	est.HoursNeeded = &hoursNeeded
	est.TimeToStart = &timeToStart
	est.IsOverdue = priority.ID >= rules.OverduePriorityFloor && eta.Sub(now) > rules.OverdueHorizon
	return est
}

// clampToWorkWindow snaps a start time into the working window: before the
// window it moves forward to opening time the same day, at or past closing
// it rolls to opening time the next day.
func clampToWorkWindow(t time.Time, r Rules) time.Time {
	switch {
	case t.Hour() < r.WorkdayStartHour:
		return atHour(t, r.WorkdayStartHour)
	case t.Hour() >= r.WorkdayEndHour:
		return atHour(t.AddDate(0, 0, 1), r.WorkdayStartHour)
	default:
		return t
	}
}

// rollEtaOverflow applies the end-of-day overflow rule to a raw ETA: hours
// past closing convert to additional days at the working-hours-per-day
// rate, with the remainder landing after opening time.
func rollEtaOverflow(eta time.Time, r Rules) time.Time {
	if eta.Hour() < r.WorkdayEndHour {
		return eta
	}
	excess := eta.Sub(atHour(eta, r.WorkdayEndHour)).Hours()
	days := 1 + int(excess/r.WorkingHoursPerDay)
	remainder := math.Mod(excess, r.WorkingHoursPerDay)
	return atHour(eta.AddDate(0, 0, days), r.WorkdayStartHour).Add(hoursToDuration(remainder))
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
