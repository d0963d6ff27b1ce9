package stats

import (
	"math"

	"github.com/noah-isme/sma-roster-api/internal/models"
)

// Letter is an A–F bucket derived from a percentage.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
	LetterF Letter = "F"
)

// Letters lists the buckets from best to worst.
var Letters = []Letter{LetterA, LetterB, LetterC, LetterD, LetterF}

// Tier is the coarse good/warning/bad badge bucket.
type Tier string

const (
	TierGood    Tier = "good"
	TierWarning Tier = "warning"
	TierBad     Tier = "bad"
)

// LetterFor maps a percentage to its letter using inclusive lower bounds.
func LetterFor(pct float64) Letter {
	switch {
	case pct >= 90:
		return LetterA
	case pct >= 80:
		return LetterB
	case pct >= 70:
		return LetterC
	case pct >= 60:
		return LetterD
	default:
		return LetterF
	}
}

// GradeTierFor maps a grade percentage to a tier. It is coarser than LetterFor
// and deliberately not derived from it.
func GradeTierFor(pct float64) Tier {
	switch {
	case pct >= 80:
		return TierGood
	case pct >= 70:
		return TierWarning
	default:
		return TierBad
	}
}

// RoundPercent rounds half away from zero for display.
func RoundPercent(v float64) int {
	return int(math.Round(v))
}

// GradeSummary is the mean percentage of a set of grades.
type GradeSummary struct {
	Average float64 `json:"average"`
	Rounded int     `json:"rounded"`
	Letter  Letter  `json:"letter"`
	Tier    Tier    `json:"tier"`
	Count   int     `json:"count"`
}

// ComputeGradeSummary averages score/max×100 over grades. ok is false when no
// grade could be counted, which callers render as "No grades".
func ComputeGradeSummary(grades []models.Grade) (summary GradeSummary, ok bool) {
	sum, count := sumPercentages(grades)
	if count == 0 {
		return GradeSummary{}, false
	}
	avg := sum / float64(count)
	return GradeSummary{
		Average: avg,
		Rounded: RoundPercent(avg),
		Letter:  LetterFor(avg),
		Tier:    GradeTierFor(avg),
		Count:   count,
	}, true
}

func sumPercentages(grades []models.Grade) (float64, int) {
	var (
		sum   float64
		count int
	)
	for _, g := range grades {
		pct, ok := g.Percentage()
		if !ok {
			continue
		}
		sum += pct
		count++
	}
	return sum, count
}

// ClassAverage is the mean percentage over every grade, ungrouped. It returns
// 0 when there is nothing to average.
func ClassAverage(grades []models.Grade) float64 {
	sum, count := sumPercentages(grades)
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// GradeDistribution counts grades per letter. Every letter is present in the
// result, zero when unused.
func GradeDistribution(grades []models.Grade) map[Letter]int {
	dist := make(map[Letter]int, len(Letters))
	for _, l := range Letters {
		dist[l] = 0
	}
	for _, g := range grades {
		if pct, ok := g.Percentage(); ok {
			dist[LetterFor(pct)]++
		}
	}
	return dist
}

// SubjectRollup is the average percentage of one subject.
type SubjectRollup struct {
	Subject string  `json:"subject"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Rounded int     `json:"rounded"`
	Tier    Tier    `json:"tier"`
}

// RollupBySubject groups grades by subject in first-seen order. Subjects whose
// grades were all skipped are omitted.
func RollupBySubject(grades []models.Grade) []SubjectRollup {
	type acc struct {
		sum   float64
		count int
	}
	order := make([]string, 0)
	groups := make(map[string]*acc)
	for _, g := range grades {
		pct, ok := g.Percentage()
		if !ok {
			continue
		}
		a, seen := groups[g.Subject]
		if !seen {
			a = &acc{}
			groups[g.Subject] = a
			order = append(order, g.Subject)
		}
		a.sum += pct
		a.count++
	}

	out := make([]SubjectRollup, 0, len(order))
	for _, subject := range order {
		a := groups[subject]
		avg := a.sum / float64(a.count)
		out = append(out, SubjectRollup{
			Subject: subject,
			Count:   a.count,
			Average: avg,
			Rounded: RoundPercent(avg),
			Tier:    GradeTierFor(avg),
		})
	}
	return out
}
