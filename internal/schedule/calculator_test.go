package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/model"
)

var (
	testTaskType   = model.TaskType{ID: 1, Name: "design", BaseDuration: "2 hours"}
	testPriority   = model.PriorityLevel{ID: 2, Name: "high", TimeToStart: "1:00:00", Multiplier: 1.5}
	testComplexity = model.ComplexityLevel{ID: 3, Name: "hard", Multiplier: 2}
)

func timeline(base time.Time, active, max int, gap float64) *model.ProjectTimelineState {
	return &model.ProjectTimelineState{
		ProjectID:          1,
		BaseTime:           base,
		GapTime:            gap,
		ActiveTaskCount:    active,
		MaxConcurrentTasks: max,
	}
}

func TestEstimate_NilInputsReturnEmpty(t *testing.T) {
	now := time.Date(2026, 1, 6, 12, 0, 0, 0, time.UTC)
	base := timeline(now, 0, 3, 2)

	tests := []struct {
		name       string
		taskType   *model.TaskType
		priority   *model.PriorityLevel
		complexity *model.ComplexityLevel
		state      *model.ProjectTimelineState
	}{
		{"no task type", nil, &testPriority, &testComplexity, base},
		{"no priority", &testTaskType, nil, &testComplexity, base},
		{"no complexity", &testTaskType, &testPriority, nil, base},
		{"no timeline state", &testTaskType, &testPriority, &testComplexity, nil},
		{"nothing", nil, nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := Estimate(now, tt.taskType, tt.priority, tt.complexity, tt.state, DefaultRules())
			assert.True(t, est.Empty())
			assert.Nil(t, est.StartTime)
			assert.Nil(t, est.ETA)
			assert.Nil(t, est.HoursNeeded)
			assert.Nil(t, est.TimeToStart)
			assert.False(t, est.IsOverdue)
			assert.Equal(t, now, est.CurrentTime)
		})
	}
}

// Base duration 2h, priority x1.5, complexity x2, project under capacity,
// time-to-start 1:00:00, base time Tuesday 09:30. Start snaps to 10:30,
// six hours of work land the ETA at 16:30 the same day.
func TestEstimate_SameDayScenario(t *testing.T) {
	base := time.Date(2026, 1, 6, 9, 30, 0, 0, time.UTC) // a Tuesday
	now := base

	est := Estimate(now, &testTaskType, &testPriority, &testComplexity, timeline(base, 1, 3, 4), DefaultRules())

	require.False(t, est.Empty())
	assert.Equal(t, time.Date(2026, 1, 6, 10, 30, 0, 0, time.UTC), *est.StartTime)
	assert.InDelta(t, 6.0, *est.HoursNeeded, 1e-9)
	assert.InDelta(t, 1.0, *est.TimeToStart, 1e-9)
	assert.Equal(t, time.Date(2026, 1, 6, 16, 30, 0, 0, time.UTC), *est.ETA)
	assert.False(t, est.IsOverdue)
}

func TestEstimate_CapacityAddsGapDelay(t *testing.T) {
	base := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)

	underCap := Estimate(base, &testTaskType, &testPriority, &testComplexity, timeline(base, 2, 3, 4), DefaultRules())
	atCap := Estimate(base, &testTaskType, &testPriority, &testComplexity, timeline(base, 3, 3, 4), DefaultRules())

	require.False(t, underCap.Empty())
	require.False(t, atCap.Empty())
	// 1h time-to-start vs 1h + 4h gap.
	assert.Equal(t, time.Date(2026, 1, 6, 11, 0, 0, 0, time.UTC), *underCap.StartTime)
	assert.Equal(t, time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC), *atCap.StartTime)
	assert.True(t, atCap.StartTime.Sub(*underCap.StartTime) >= 4*time.Hour)
}

func TestEstimate_StartSnapsIntoWorkWindow(t *testing.T) {
	rules := DefaultRules()

	t.Run("before opening snaps to 10:00", func(t *testing.T) {
		base := time.Date(2026, 1, 6, 7, 0, 0, 0, time.UTC)
		est := Estimate(base, &testTaskType, &testPriority, &testComplexity, timeline(base, 0, 3, 0), rules)
		require.False(t, est.Empty())
		assert.Equal(t, time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC), *est.StartTime)
	})

	t.Run("at closing rolls to next morning", func(t *testing.T) {
		base := time.Date(2026, 1, 6, 17, 30, 0, 0, time.UTC)
		est := Estimate(base, &testTaskType, &testPriority, &testComplexity, timeline(base, 0, 3, 0), rules)
		require.False(t, est.Empty())
		// 17:30 + 1h = 18:30, past closing.
		assert.Equal(t, time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC), *est.StartTime)
	})
}

func TestEstimate_BusinessHoursInvariant(t *testing.T) {
	rules := DefaultRules()
	for hour := 0; hour < 24; hour++ {
		for _, gap := range []float64{0, 1, 3.5, 9, 26} {
			base := time.Date(2026, 1, 6, hour, 15, 0, 0, time.UTC)
			est := Estimate(base, &testTaskType, &testPriority, &testComplexity, timeline(base, 5, 3, gap), rules)
			require.False(t, est.Empty())
			h := est.StartTime.Hour()
			assert.GreaterOrEqual(t, h, rules.WorkdayStartHour,
				"base hour %d gap %v", hour, gap)
			assert.Less(t, h, rules.WorkdayEndHour,
				"base hour %d gap %v", hour, gap)
			assert.False(t, est.ETA.Before(*est.StartTime))
		}
	}
}

func TestEstimate_EtaOverflowRollsIntoNextDays(t *testing.T) {
	// Start 10:00, 10 hours of work: raw ETA 20:00, two hours past
	// closing, lands next day at 12:00.
	taskType := model.TaskType{ID: 1, BaseDuration: "10 hours"}
	priority := model.PriorityLevel{ID: 1, TimeToStart: "0:00:00", Multiplier: 1}
	complexity := model.ComplexityLevel{ID: 1, Multiplier: 1}
	base := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)

	est := Estimate(base, &taskType, &priority, &complexity, timeline(base, 0, 3, 0), DefaultRules())

	require.False(t, est.Empty())
	assert.Equal(t, time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC), *est.StartTime)
	assert.Equal(t, time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC), *est.ETA)
}

func TestEstimate_EtaOverflowWholeExtraDays(t *testing.T) {
	// The rollover keys off the raw ETA's clock hour. 16 hours from 10:00
	// lands at 02:00 the next day, before the closing hour, so it stands.
	taskType := model.TaskType{ID: 1, BaseDuration: "16 hours"}
	priority := model.PriorityLevel{ID: 1, TimeToStart: "0:00:00", Multiplier: 1}
	complexity := model.ComplexityLevel{ID: 1, Multiplier: 1}
	base := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)

	est := Estimate(base, &taskType, &priority, &complexity, timeline(base, 0, 3, 0), DefaultRules())

	require.False(t, est.Empty())
	// Raw ETA 02:00 next day: before closing hour, no rollover applied.
	assert.Equal(t, time.Date(2026, 1, 7, 2, 0, 0, 0, time.UTC), *est.ETA)
}

func TestEstimate_OverdueHeuristic(t *testing.T) {
	base := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	lowPriority := model.PriorityLevel{ID: 4, Name: "low", TimeToStart: "2 days", Multiplier: 1}
	longType := model.TaskType{ID: 1, BaseDuration: "4 hours"}
	simple := model.ComplexityLevel{ID: 1, Multiplier: 1}

	t.Run("low priority far eta flags overdue", func(t *testing.T) {
		est := Estimate(base, &longType, &lowPriority, &simple, timeline(base, 0, 3, 0), DefaultRules())
		require.False(t, est.Empty())
		assert.True(t, est.ETA.Sub(base) > 48*time.Hour)
		assert.True(t, est.IsOverdue)
	})

	t.Run("urgent priority never flags", func(t *testing.T) {
		urgent := model.PriorityLevel{ID: 1, Name: "urgent", TimeToStart: "2 days", Multiplier: 1}
		est := Estimate(base, &longType, &urgent, &simple, timeline(base, 0, 3, 0), DefaultRules())
		require.False(t, est.Empty())
		assert.False(t, est.IsOverdue)
	})

	t.Run("near eta does not flag", func(t *testing.T) {
		lowSoon := model.PriorityLevel{ID: 4, Name: "low", TimeToStart: "1:00:00", Multiplier: 1}
		est := Estimate(base, &testTaskType, &lowSoon, &simple, timeline(base, 0, 3, 0), DefaultRules())
		require.False(t, est.Empty())
		assert.True(t, est.ETA.Sub(base) <= 48*time.Hour)
		assert.False(t, est.IsOverdue)
	})
}
