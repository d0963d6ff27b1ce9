package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-roster-api/internal/models"
)

func marks(statuses ...models.AttendanceStatus) []models.AttendanceRecord {
	out := make([]models.AttendanceRecord, len(statuses))
	for i, s := range statuses {
		out[i] = models.AttendanceRecord{ID: int64(i + 1), StudentID: 1, Date: "2024-03-01", Status: s}
	}
	return out
}

func repeat(status models.AttendanceStatus, n int) []models.AttendanceStatus {
	out := make([]models.AttendanceStatus, n)
	for i := range out {
		out[i] = status
	}
	return out
}

func TestComputeAttendanceSummaryTiers(t *testing.T) {
	cases := []struct {
		name    string
		present int
		want    Tier
		rate    float64
	}{
		{name: "19 of 20", present: 19, want: TierGood, rate: 95},
		{name: "17 of 20", present: 17, want: TierWarning, rate: 85},
		{name: "16 of 20", present: 16, want: TierBad, rate: 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			statuses := append(repeat(models.AttendanceStatusPresent, tc.present), repeat(models.AttendanceStatusAbsent, 20-tc.present)...)
			summary, ok := ComputeAttendanceSummary(marks(statuses...))
			require.True(t, ok)
			assert.InDelta(t, tc.rate, summary.Rate, 1e-9)
			assert.Equal(t, tc.want, summary.Tier)
			assert.Equal(t, 20, summary.TotalCount)
		})
	}
}

func TestComputeAttendanceSummaryLateIsNotPresent(t *testing.T) {
	summary, ok := ComputeAttendanceSummary(marks(
		models.AttendanceStatusPresent,
		models.AttendanceStatusLate,
		models.AttendanceStatusLate,
		models.AttendanceStatusAbsent,
	))
	require.True(t, ok)
	assert.Equal(t, 1, summary.PresentCount)
	assert.Equal(t, 2, summary.LateCount)
	assert.Equal(t, 1, summary.AbsentCount)
	assert.InDelta(t, 25.0, summary.Rate, 1e-9)
	assert.Equal(t, 25, summary.Rounded)
}

func TestComputeAttendanceSummaryUnknownStatusCountsTowardTotal(t *testing.T) {
	summary, ok := ComputeAttendanceSummary(marks(models.AttendanceStatusPresent, models.AttendanceStatus("excused")))
	require.True(t, ok)
	assert.Equal(t, 2, summary.TotalCount)
	assert.InDelta(t, 50.0, summary.Rate, 1e-9)
}

func TestComputeAttendanceSummaryEmpty(t *testing.T) {
	_, ok := ComputeAttendanceSummary(nil)
	assert.False(t, ok)
}
