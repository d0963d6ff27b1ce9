package remote

import (
	"context"
	"strings"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

// NewStore wires every repository to client.
func NewStore(client *Client) repository.Store {
	return repository.Store{
		Students:   &StudentRepository{client: client},
		Teachers:   &TeacherRepository{client: client},
		Grades:     &GradeRepository{client: client},
		Attendance: &AttendanceRepository{client: client},
	}
}

var ascendingByID = []Order{{Field: "Id", Direction: "ASC"}}

// StudentRepository stores students in the student table. Search and
// pagination run locally over the drained table.
type StudentRepository struct {
	client *Client
}

func (r *StudentRepository) all(ctx context.Context, where ...Condition) ([]models.Student, error) {
	var records []studentRecord
	q := Query{Fields: studentFields, Where: where, OrderBy: ascendingByID}
	if err := r.client.QueryAll(ctx, studentTable, q, &records); err != nil {
		return nil, err
	}
	out := make([]models.Student, len(records))
	for i, rec := range records {
		out[i] = rec.model()
	}
	return out, nil
}

// List returns students matching filter and the unpaged total.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	var where []Condition
	if filter.GradeLevel > 0 {
		where = append(where, EqualTo("grade_level_c", filter.GradeLevel))
	}
	if filter.Status != "" {
		where = append(where, EqualTo("status_c", string(filter.Status)))
	}
	students, err := r.all(ctx, where...)
	if err != nil {
		return nil, 0, err
	}
	matched := make([]models.Student, 0, len(students))
	for _, s := range students {
		if filter.Matches(s) {
			matched = append(matched, s)
		}
	}
	return models.Window(matched, filter.Page, filter.PageSize), len(matched), nil
}

// FindByID fetches one student.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	var rec studentRecord
	if err := r.client.Get(ctx, studentTable, id, studentFields, &rec); err != nil {
		return nil, err
	}
	s := rec.model()
	return &s, nil
}

// ExistsByCode reports whether another student uses code.
func (r *StudentRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	students, err := r.all(ctx)
	if err != nil {
		return false, err
	}
	for _, s := range students {
		if s.ID != excludeID && strings.EqualFold(s.StudentCode, code) {
			return true, nil
		}
	}
	return false, nil
}

// Create inserts student and adopts the id the API assigns.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	rec := toStudentRecord(*student)
	rec.ID = 0
	var stored studentRecord
	if err := r.client.Create(ctx, studentTable, rec, &stored); err != nil {
		return err
	}
	student.ID = stored.ID
	return nil
}

// Update sends the full student record.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.client.Update(ctx, studentTable, toStudentRecord(*student), nil)
}

// Delete removes a student.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, studentTable, id)
}

// TeacherRepository stores teachers in the teacher table.
type TeacherRepository struct {
	client *Client
}

// List returns teachers matching filter and the unpaged total.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	var where []Condition
	if filter.EmploymentStatus != "" {
		where = append(where, EqualTo("employment_status_c", string(filter.EmploymentStatus)))
	}
	var records []teacherRecord
	q := Query{Fields: teacherFields, Where: where, OrderBy: ascendingByID}
	if err := r.client.QueryAll(ctx, teacherTable, q, &records); err != nil {
		return nil, 0, err
	}
	matched := make([]models.Teacher, 0, len(records))
	for _, rec := range records {
		if t := rec.model(); filter.Matches(t) {
			matched = append(matched, t)
		}
	}
	return models.Window(matched, filter.Page, filter.PageSize), len(matched), nil
}

// FindByID fetches one teacher.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	var rec teacherRecord
	if err := r.client.Get(ctx, teacherTable, id, teacherFields, &rec); err != nil {
		return nil, err
	}
	t := rec.model()
	return &t, nil
}

// Create inserts teacher and adopts the assigned id.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	rec := toTeacherRecord(*teacher)
	rec.ID = 0
	var stored teacherRecord
	if err := r.client.Create(ctx, teacherTable, rec, &stored); err != nil {
		return err
	}
	teacher.ID = stored.ID
	return nil
}

// Update sends the full teacher record.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	return r.client.Update(ctx, teacherTable, toTeacherRecord(*teacher), nil)
}

// Delete removes a teacher.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, teacherTable, id)
}

// GradeRepository stores grades in the grade table.
type GradeRepository struct {
	client *Client
}

// List returns grades matching filter.
func (r *GradeRepository) List(ctx context.Context, filter models.GradeFilter) ([]models.Grade, error) {
	var where []Condition
	if filter.StudentID > 0 {
		where = append(where, EqualTo("student_id_c", filter.StudentID))
	}
	var records []gradeRecord
	q := Query{Fields: gradeFields, Where: where, OrderBy: ascendingByID}
	if err := r.client.QueryAll(ctx, gradeTable, q, &records); err != nil {
		return nil, err
	}
	out := make([]models.Grade, 0, len(records))
	for _, rec := range records {
		if g := rec.model(); filter.Matches(g) {
			out = append(out, g)
		}
	}
	return out, nil
}

// FindByID fetches one grade.
func (r *GradeRepository) FindByID(ctx context.Context, id int64) (*models.Grade, error) {
	var rec gradeRecord
	if err := r.client.Get(ctx, gradeTable, id, gradeFields, &rec); err != nil {
		return nil, err
	}
	g := rec.model()
	return &g, nil
}

// Create inserts grade and adopts the assigned id.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	rec := toGradeRecord(*grade)
	rec.ID = 0
	var stored gradeRecord
	if err := r.client.Create(ctx, gradeTable, rec, &stored); err != nil {
		return err
	}
	grade.ID = stored.ID
	return nil
}

// Update sends the full grade record.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	return r.client.Update(ctx, gradeTable, toGradeRecord(*grade), nil)
}

// Delete removes a grade.
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, gradeTable, id)
}

// AttendanceRepository stores attendance in the attendance table.
type AttendanceRepository struct {
	client *Client
}

// List returns records matching filter.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	var where []Condition
	if filter.StudentID > 0 {
		where = append(where, EqualTo("student_id_c", filter.StudentID))
	}
	if filter.Date != "" {
		where = append(where, EqualTo("date_c", filter.Date))
	}
	var records []attendanceRecord
	q := Query{Fields: attendanceFields, Where: where, OrderBy: ascendingByID}
	if err := r.client.QueryAll(ctx, attendanceTable, q, &records); err != nil {
		return nil, err
	}
	out := make([]models.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		if a := rec.model(); filter.Matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// FindByID fetches one attendance record.
func (r *AttendanceRepository) FindByID(ctx context.Context, id int64) (*models.AttendanceRecord, error) {
	var rec attendanceRecord
	if err := r.client.Get(ctx, attendanceTable, id, attendanceFields, &rec); err != nil {
		return nil, err
	}
	a := rec.model()
	return &a, nil
}

// Create inserts record and adopts the assigned id.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	rec := toAttendanceRecord(*record)
	rec.ID = 0
	var stored attendanceRecord
	if err := r.client.Create(ctx, attendanceTable, rec, &stored); err != nil {
		return err
	}
	record.ID = stored.ID
	return nil
}

// Upsert looks up the student's record for the date and patches it, or
// creates one. The records API has no conditional write, so two concurrent
// marks can still both create.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) (bool, error) {
	existing, err := r.List(ctx, models.AttendanceFilter{StudentID: record.StudentID, Date: record.Date})
	if err != nil {
		return false, err
	}
	if len(existing) == 0 {
		if err := r.Create(ctx, record); err != nil {
			return false, err
		}
		return true, nil
	}
	current := existing[0]
	current.Status = record.Status
	current.Notes = record.Notes
	if err := r.Update(ctx, &current); err != nil {
		return false, err
	}
	*record = current
	return false, nil
}

// Update sends the full attendance record.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	return r.client.Update(ctx, attendanceTable, toAttendanceRecord(*record), nil)
}

// Delete removes an attendance record.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, attendanceTable, id)
}

var (
	_ repository.StudentRepository    = (*StudentRepository)(nil)
	_ repository.TeacherRepository    = (*TeacherRepository)(nil)
	_ repository.GradeRepository      = (*GradeRepository)(nil)
	_ repository.AttendanceRepository = (*AttendanceRepository)(nil)
)
