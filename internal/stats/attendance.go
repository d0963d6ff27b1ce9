package stats

import "github.com/noah-isme/sma-roster-api/internal/models"

// AttendanceTierFor maps an attendance rate to a tier. Its thresholds differ
// from GradeTierFor.
func AttendanceTierFor(rate float64) Tier {
	switch {
	case rate >= 95:
		return TierGood
	case rate >= 85:
		return TierWarning
	default:
		return TierBad
	}
}

// AttendanceSummary is a present/total ratio. Late and absent marks are
// reported separately and never count as present; a record with an
// unrecognised status counts only toward the total.
type AttendanceSummary struct {
	Rate         float64 `json:"rate"`
	Rounded      int     `json:"rounded"`
	PresentCount int     `json:"present_count"`
	LateCount    int     `json:"late_count"`
	AbsentCount  int     `json:"absent_count"`
	TotalCount   int     `json:"total_count"`
	Tier         Tier    `json:"tier"`
}

// ComputeAttendanceSummary reduces records for one student or one day. ok is
// false for empty input, which callers render as "No data".
func ComputeAttendanceSummary(records []models.AttendanceRecord) (summary AttendanceSummary, ok bool) {
	if len(records) == 0 {
		return AttendanceSummary{}, false
	}
	for _, r := range records {
		switch r.Status {
		case models.AttendanceStatusPresent:
			summary.PresentCount++
		case models.AttendanceStatusLate:
			summary.LateCount++
		case models.AttendanceStatusAbsent:
			summary.AbsentCount++
		}
	}
	summary.TotalCount = len(records)
	summary.Rate = float64(summary.PresentCount) / float64(summary.TotalCount) * 100
	summary.Rounded = RoundPercent(summary.Rate)
	summary.Tier = AttendanceTierFor(summary.Rate)
	return summary, true
}
