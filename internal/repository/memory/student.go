package memory

import (
	"context"
	"strings"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

type studentRepository struct {
	db *table[models.Student]
}

// NewStudentRepository returns a student repository backed by db. Student
// codes are unique ignoring case.
func NewStudentRepository(db *DB) repository.StudentRepository {
	return &studentRepository{db: db.students}
}

func (r *studentRepository) List(_ context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	matched := r.db.filter(filter.Matches)
	return models.Window(matched, filter.Page, filter.PageSize), len(matched), nil
}

func (r *studentRepository) FindByID(_ context.Context, id int64) (*models.Student, error) {
	s, err := r.db.get(id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepository) ExistsByCode(_ context.Context, code string, excludeID int64) (bool, error) {
	found := r.db.filter(func(s models.Student) bool {
		return s.ID != excludeID && strings.EqualFold(s.StudentCode, code)
	})
	return len(found) > 0, nil
}

// codeTaken reports whether a student other than excludeID uses code.
// Callers must hold the lock.
func (r *studentRepository) codeTaken(code string, excludeID int64) bool {
	for id, row := range r.db.rows {
		if id != excludeID && strings.EqualFold(row.StudentCode, code) {
			return true
		}
	}
	return false
}

func (r *studentRepository) Create(_ context.Context, student *models.Student) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.codeTaken(student.StudentCode, 0) {
		return repository.ErrConflict
	}
	r.db.seq++
	student.ID = r.db.seq
	r.db.rows[student.ID] = *student
	return nil
}

func (r *studentRepository) Update(_ context.Context, student *models.Student) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.rows[student.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.codeTaken(student.StudentCode, student.ID) {
		return repository.ErrConflict
	}
	r.db.rows[student.ID] = *student
	return nil
}

func (r *studentRepository) Delete(_ context.Context, id int64) error {
	return r.db.remove(id)
}
