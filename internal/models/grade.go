package models

import "github.com/volatiletech/null/v8"

// Grade is one scored assessment for a student.
type Grade struct {
	ID        int64   `db:"id" json:"id"`
	StudentID int64   `db:"student_id" json:"student_id" validate:"gt=0"`
	Subject   string  `db:"subject" json:"subject" validate:"required,max=100"`
	Score     float64 `db:"score" json:"score" validate:"gte=0"`
	MaxScore  float64 `db:"max_score" json:"max_score" validate:"gt=0"`
	Date      string  `db:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Term      string  `db:"term" json:"term" validate:"max=50"`
}

// Percentage returns score/max×100. ok is false when MaxScore is not positive,
// in which case the grade is excluded from every aggregate.
func (g Grade) Percentage() (pct float64, ok bool) {
	if g.MaxScore <= 0 {
		return 0, false
	}
	return g.Score / g.MaxScore * 100, true
}

// GradeFilter scopes grade listings. Zero values match everything.
type GradeFilter struct {
	StudentID int64
	Subject   string
	Term      string
}

// Matches reports whether g satisfies the filter.
func (f GradeFilter) Matches(g Grade) bool {
	if f.StudentID > 0 && g.StudentID != f.StudentID {
		return false
	}
	if f.Subject != "" && g.Subject != f.Subject {
		return false
	}
	if f.Term != "" && g.Term != f.Term {
		return false
	}
	return true
}

// GradePatch carries a partial grade update.
type GradePatch struct {
	StudentID null.Int64   `json:"student_id"`
	Subject   null.String  `json:"subject"`
	Score     null.Float64 `json:"score"`
	MaxScore  null.Float64 `json:"max_score"`
	Date      null.String  `json:"date"`
	Term      null.String  `json:"term"`
}

// Apply copies set fields onto g.
func (p GradePatch) Apply(g *Grade) {
	if p.StudentID.Valid {
		g.StudentID = p.StudentID.Int64
	}
	applyString(&g.Subject, p.Subject)
	if p.Score.Valid {
		g.Score = p.Score.Float64
	}
	if p.MaxScore.Valid {
		g.MaxScore = p.MaxScore.Float64
	}
	applyString(&g.Date, p.Date)
	applyString(&g.Term, p.Term)
}
