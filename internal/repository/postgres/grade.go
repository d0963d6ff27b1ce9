package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

const gradeColumns = `id, student_id, subject, score, max_score, to_char(date, 'YYYY-MM-DD') AS date, term`

// GradeRepository manages persistence for grades.
type GradeRepository struct {
	db *sqlx.DB
}

var _ repository.GradeRepository = (*GradeRepository)(nil)

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// List returns grades matching the filter ordered by id.
func (r *GradeRepository) List(ctx context.Context, filter models.GradeFilter) ([]models.Grade, error) {
	w := &where{}
	if filter.StudentID > 0 {
		w.add("student_id = $%d", filter.StudentID)
	}
	if filter.Subject != "" {
		w.add("subject = $%d", filter.Subject)
	}
	if filter.Term != "" {
		w.add("term = $%d", filter.Term)
	}
	grades := make([]models.Grade, 0)
	query := fmt.Sprintf("SELECT %s FROM grades%s ORDER BY id", gradeColumns, w.sql())
	if err := r.db.SelectContext(ctx, &grades, query, w.args...); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// FindByID fetches a grade by id.
func (r *GradeRepository) FindByID(ctx context.Context, id int64) (*models.Grade, error) {
	var grade models.Grade
	query := fmt.Sprintf("SELECT %s FROM grades WHERE id = $1", gradeColumns)
	if err := r.db.GetContext(ctx, &grade, query, id); err != nil {
		return nil, notFound(err)
	}
	return &grade, nil
}

// Create inserts a grade and stores the assigned id on it.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	const query = `INSERT INTO grades (student_id, subject, score, max_score, date, term) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		grade.StudentID, grade.Subject, grade.Score, grade.MaxScore, grade.Date, grade.Term,
	).Scan(&grade.ID)
	if err != nil {
		return fmt.Errorf("create grade: %w", err)
	}
	return nil
}

// Update overwrites an existing grade.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	const query = `UPDATE grades SET student_id = $2, subject = $3, score = $4, max_score = $5, date = $6, term = $7 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		grade.ID, grade.StudentID, grade.Subject, grade.Score, grade.MaxScore, grade.Date, grade.Term,
	)
	if err != nil {
		return fmt.Errorf("update grade: %w", err)
	}
	return expectAffected(res, "update grade")
}

// Delete removes a grade.
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	return expectAffected(res, "delete grade")
}
