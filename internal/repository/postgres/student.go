package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

const studentColumns = `id, first_name, last_name, student_code, grade_level, section, email, phone, photo_url,
        to_char(enrollment_date, 'YYYY-MM-DD') AS enrollment_date, status`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

var _ repository.StudentRepository = (*StudentRepository)(nil)

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func studentWhere(filter models.StudentFilter) *where {
	w := &where{}
	if filter.GradeLevel > 0 {
		w.add("grade_level = $%d", filter.GradeLevel)
	}
	if filter.Section != "" {
		w.add("UPPER(section) = UPPER($%d)", filter.Section)
	}
	if filter.Status != "" {
		w.add("status = $%d", string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		w.args = append(w.args, "%"+strings.ToLower(search)+"%")
		n := len(w.args)
		w.conds = append(w.conds, fmt.Sprintf(
			"(LOWER(first_name || ' ' || last_name) LIKE $%[1]d OR LOWER(student_code) LIKE $%[1]d OR LOWER(email) LIKE $%[1]d OR grade_level::text LIKE $%[1]d OR LOWER(section) LIKE $%[1]d)", n))
	}
	return w
}

// List returns students matching the provided filters and the unpaged total.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	w := studentWhere(filter)
	query := fmt.Sprintf("SELECT %s FROM students%s ORDER BY id%s", studentColumns, w.sql(), limitOffset(filter.Page, filter.PageSize))

	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM students"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student by id.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	query := fmt.Sprintf("SELECT %s FROM students WHERE id = $1", studentColumns)
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, notFound(err)
	}
	return &student, nil
}

// ExistsByCode checks whether another student already uses code.
func (r *StudentRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	var exists bool
	const query = `SELECT EXISTS (SELECT 1 FROM students WHERE LOWER(student_code) = LOWER($1) AND id <> $2)`
	if err := r.db.GetContext(ctx, &exists, query, code, excludeID); err != nil {
		return false, fmt.Errorf("check student code: %w", err)
	}
	return exists, nil
}

// Create inserts a student and stores the assigned id on it.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (first_name, last_name, student_code, grade_level, section, email, phone, photo_url, enrollment_date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		student.FirstName, student.LastName, student.StudentCode, student.GradeLevel, student.Section,
		student.Email, student.Phone, student.PhotoURL, student.EnrollmentDate, string(student.Status),
	).Scan(&student.ID)
	if err != nil {
		return writeError(err, "create student")
	}
	return nil
}

// Update overwrites every column of an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET first_name = $2, last_name = $3, student_code = $4, grade_level = $5, section = $6,
        email = $7, phone = $8, photo_url = $9, enrollment_date = $10, status = $11 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		student.ID, student.FirstName, student.LastName, student.StudentCode, student.GradeLevel, student.Section,
		student.Email, student.Phone, student.PhotoURL, student.EnrollmentDate, string(student.Status),
	)
	if err != nil {
		return writeError(err, "update student")
	}
	return expectAffected(res, "update student")
}

// Delete removes a student. Grades and attendance are left in place.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return expectAffected(res, "delete student")
}
