package memory

import (
	"context"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

type teacherRepository struct {
	db *table[models.Teacher]
}

// NewTeacherRepository returns a teacher repository backed by db.
func NewTeacherRepository(db *DB) repository.TeacherRepository {
	return &teacherRepository{db: db.teachers}
}

func (r *teacherRepository) List(_ context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	matched := r.db.filter(filter.Matches)
	return models.Window(matched, filter.Page, filter.PageSize), len(matched), nil
}

func (r *teacherRepository) FindByID(_ context.Context, id int64) (*models.Teacher, error) {
	t, err := r.db.get(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *teacherRepository) Create(_ context.Context, teacher *models.Teacher) error {
	*teacher = r.db.insert(*teacher, func(t *models.Teacher, id int64) { t.ID = id })
	return nil
}

func (r *teacherRepository) Update(_ context.Context, teacher *models.Teacher) error {
	return r.db.replace(teacher.ID, *teacher)
}

func (r *teacherRepository) Delete(_ context.Context, id int64) error {
	return r.db.remove(id)
}
