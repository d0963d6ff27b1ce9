package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-roster-api/internal/models"
)

func grade(id int64, student int64, subject string, score, max float64) models.Grade {
	return models.Grade{ID: id, StudentID: student, Subject: subject, Score: score, MaxScore: max, Date: "2024-03-01"}
}

func TestLetterForBoundaries(t *testing.T) {
	cases := []struct {
		pct  float64
		want Letter
	}{
		{100, LetterA},
		{90, LetterA},
		{89.999, LetterB},
		{80, LetterB},
		{79.99, LetterC},
		{70, LetterC},
		{69.99, LetterD},
		{60, LetterD},
		{59.99, LetterF},
		{0, LetterF},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LetterFor(tc.pct), "pct %v", tc.pct)
	}
}

func TestGradeTierFor(t *testing.T) {
	assert.Equal(t, TierGood, GradeTierFor(80))
	assert.Equal(t, TierWarning, GradeTierFor(79.9))
	assert.Equal(t, TierWarning, GradeTierFor(70))
	assert.Equal(t, TierBad, GradeTierFor(69.9))
}

func TestComputeGradeSummary(t *testing.T) {
	summary, ok := ComputeGradeSummary([]models.Grade{
		grade(1, 1, "Math", 45, 50),
		grade(2, 1, "Math", 8, 10),
	})
	require.True(t, ok)
	assert.InDelta(t, 85.0, summary.Average, 1e-9)
	assert.Equal(t, 85, summary.Rounded)
	assert.Equal(t, LetterB, summary.Letter)
	assert.Equal(t, TierGood, summary.Tier)
	assert.Equal(t, 2, summary.Count)
}

func TestComputeGradeSummaryRoundingOnlyForDisplay(t *testing.T) {
	summary, ok := ComputeGradeSummary([]models.Grade{grade(1, 1, "Art", 89.5, 100)})
	require.True(t, ok)
	assert.Equal(t, 90, summary.Rounded)
	assert.Equal(t, LetterB, summary.Letter)
}

func TestComputeGradeSummaryEmpty(t *testing.T) {
	_, ok := ComputeGradeSummary(nil)
	assert.False(t, ok)
}

func TestComputeGradeSummarySkipsNonPositiveMax(t *testing.T) {
	_, ok := ComputeGradeSummary([]models.Grade{grade(1, 1, "Math", 10, 0)})
	assert.False(t, ok)

	summary, ok := ComputeGradeSummary([]models.Grade{
		grade(1, 1, "Math", 10, 0),
		grade(2, 1, "Math", 7, 10),
		grade(3, 1, "Math", 3, -5),
	})
	require.True(t, ok)
	assert.Equal(t, 1, summary.Count)
	assert.InDelta(t, 70.0, summary.Average, 1e-9)
}

func TestClassAverage(t *testing.T) {
	assert.Equal(t, 0.0, ClassAverage(nil))
	avg := ClassAverage([]models.Grade{
		grade(1, 1, "Math", 90, 100),
		grade(2, 2, "Math", 70, 100),
	})
	assert.InDelta(t, 80.0, avg, 1e-9)
}

func TestGradeDistribution(t *testing.T) {
	grades := []models.Grade{
		grade(1, 1, "Math", 95, 100),
		grade(2, 1, "Math", 85, 100),
		grade(3, 1, "Math", 75, 100),
		grade(4, 1, "Math", 65, 100),
		grade(5, 1, "Math", 50, 100),
	}
	dist := GradeDistribution(grades)
	for _, l := range Letters {
		assert.Equal(t, 1, dist[l], "letter %s", l)
	}

	empty := GradeDistribution(nil)
	assert.Len(t, empty, 5)
	for _, l := range Letters {
		assert.Zero(t, empty[l])
	}
}

func TestRollupBySubjectFirstSeenOrder(t *testing.T) {
	rollups := RollupBySubject([]models.Grade{
		grade(1, 1, "Science", 80, 100),
		grade(2, 1, "Math", 90, 100),
		grade(3, 2, "Science", 60, 100),
		grade(4, 2, "History", 1, 0),
	})
	require.Len(t, rollups, 2)
	assert.Equal(t, "Science", rollups[0].Subject)
	assert.Equal(t, 2, rollups[0].Count)
	assert.InDelta(t, 70.0, rollups[0].Average, 1e-9)
	assert.Equal(t, TierWarning, rollups[0].Tier)
	assert.Equal(t, "Math", rollups[1].Subject)
	assert.Equal(t, TierGood, rollups[1].Tier)
}

func TestAveragesStayWithinPercentBounds(t *testing.T) {
	cases := []struct {
		name   string
		grades []models.Grade
	}{
		{"all zero", []models.Grade{grade(1, 1, "Math", 0, 10), grade(2, 1, "Math", 0, 9)}},
		{"all full", []models.Grade{grade(1, 1, "Math", 10, 10), grade(2, 1, "Art", 9, 9)}},
		{"mixed", []models.Grade{
			grade(1, 1, "Math", 0, 10),
			grade(2, 1, "Math", 10, 10),
			grade(3, 2, "Science", 7, 9),
		}},
		{"fractional max", []models.Grade{
			grade(1, 1, "Math", 2.5, 2.5),
			grade(2, 1, "Science", 0.1, 0.3),
			grade(3, 2, "Science", 33.3, 33.33),
			grade(4, 2, "Art", 0, 0.7),
		}},
		{"with skipped max", []models.Grade{
			grade(1, 1, "Math", 5, 0),
			grade(2, 1, "Math", 4.75, 4.75),
			grade(3, 2, "Art", 1, 7),
		}},
	}

	inBounds := func(t *testing.T, label string, v float64) {
		t.Helper()
		assert.GreaterOrEqual(t, v, 0.0, label)
		assert.LessOrEqual(t, v, 100.0, label)
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summary, ok := ComputeGradeSummary(tc.grades)
			require.True(t, ok)
			inBounds(t, "summary", summary.Average)
			assert.GreaterOrEqual(t, summary.Rounded, 0)
			assert.LessOrEqual(t, summary.Rounded, 100)

			inBounds(t, "class", ClassAverage(tc.grades))

			rollups := RollupBySubject(tc.grades)
			require.NotEmpty(t, rollups)
			for _, r := range rollups {
				inBounds(t, r.Subject, r.Average)
			}
		})
	}
}
