package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

const teacherColumns = `id, first_name, last_name, email, phone, department, specialization, qualifications, experience_years,
        COALESCE(to_char(hire_date, 'YYYY-MM-DD'), '') AS hire_date, employment_status, photo_url`

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

var _ repository.TeacherRepository = (*TeacherRepository)(nil)

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

func teacherWhere(filter models.TeacherFilter) *where {
	w := &where{}
	if filter.Department != "" {
		w.add("LOWER(department) = LOWER($%d)", filter.Department)
	}
	if filter.EmploymentStatus != "" {
		w.add("employment_status = $%d", string(filter.EmploymentStatus))
	}
	switch filter.Experience {
	case models.ExperienceJunior:
		w.conds = append(w.conds, "experience_years <= 5")
	case models.ExperienceMid:
		w.conds = append(w.conds, "experience_years BETWEEN 5 AND 10")
	case models.ExperienceSenior:
		w.conds = append(w.conds, "experience_years >= 10")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		w.args = append(w.args, "%"+strings.ToLower(search)+"%")
		n := len(w.args)
		w.conds = append(w.conds, fmt.Sprintf(
			"(LOWER(first_name || ' ' || last_name) LIKE $%[1]d OR LOWER(email) LIKE $%[1]d OR LOWER(department) LIKE $%[1]d OR LOWER(specialization) LIKE $%[1]d)", n))
	}
	return w
}

// List returns teachers matching the filter and the unpaged total.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	w := teacherWhere(filter)
	query := fmt.Sprintf("SELECT %s FROM teachers%s ORDER BY id%s", teacherColumns, w.sql(), limitOffset(filter.Page, filter.PageSize))

	teachers := make([]models.Teacher, 0)
	if err := r.db.SelectContext(ctx, &teachers, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM teachers"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("count teachers: %w", err)
	}
	return teachers, total, nil
}

// FindByID fetches a teacher by id.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	var teacher models.Teacher
	query := fmt.Sprintf("SELECT %s FROM teachers WHERE id = $1", teacherColumns)
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, notFound(err)
	}
	return &teacher, nil
}

// Create inserts a teacher and stores the assigned id on it.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO teachers (first_name, last_name, email, phone, department, specialization, qualifications, experience_years, hire_date, employment_status, photo_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		teacher.FirstName, teacher.LastName, teacher.Email, teacher.Phone, teacher.Department, teacher.Specialization,
		teacher.Qualifications, teacher.ExperienceYears, nullableDate(teacher.HireDate), string(teacher.EmploymentStatus), teacher.PhotoURL,
	).Scan(&teacher.ID)
	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update overwrites every column of an existing teacher.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	const query = `UPDATE teachers SET first_name = $2, last_name = $3, email = $4, phone = $5, department = $6, specialization = $7,
        qualifications = $8, experience_years = $9, hire_date = $10, employment_status = $11, photo_url = $12 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		teacher.ID, teacher.FirstName, teacher.LastName, teacher.Email, teacher.Phone, teacher.Department, teacher.Specialization,
		teacher.Qualifications, teacher.ExperienceYears, nullableDate(teacher.HireDate), string(teacher.EmploymentStatus), teacher.PhotoURL,
	)
	if err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return expectAffected(res, "update teacher")
}

// Delete removes a teacher.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	return expectAffected(res, "delete teacher")
}
