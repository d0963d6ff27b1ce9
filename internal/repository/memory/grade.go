package memory

import (
	"context"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

type gradeRepository struct {
	db *table[models.Grade]
}

// NewGradeRepository returns a grade repository backed by db.
func NewGradeRepository(db *DB) repository.GradeRepository {
	return &gradeRepository{db: db.grades}
}

func (r *gradeRepository) List(_ context.Context, filter models.GradeFilter) ([]models.Grade, error) {
	return r.db.filter(filter.Matches), nil
}

func (r *gradeRepository) FindByID(_ context.Context, id int64) (*models.Grade, error) {
	g, err := r.db.get(id)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gradeRepository) Create(_ context.Context, grade *models.Grade) error {
	*grade = r.db.insert(*grade, func(g *models.Grade, id int64) { g.ID = id })
	return nil
}

func (r *gradeRepository) Update(_ context.Context, grade *models.Grade) error {
	return r.db.replace(grade.ID, *grade)
}

func (r *gradeRepository) Delete(_ context.Context, id int64) error {
	return r.db.remove(id)
}
