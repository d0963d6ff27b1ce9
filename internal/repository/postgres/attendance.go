package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

const attendanceColumns = `id, student_id, to_char(date, 'YYYY-MM-DD') AS date, status, notes`

// AttendanceRepository manages persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

var _ repository.AttendanceRepository = (*AttendanceRepository)(nil)

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns records matching the filter ordered by id.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	w := &where{}
	if filter.StudentID > 0 {
		w.add("student_id = $%d", filter.StudentID)
	}
	if filter.Date != "" {
		w.add("date = $%d", filter.Date)
	}
	if filter.Status != "" {
		w.add("status = $%d", string(filter.Status))
	}
	records := make([]models.AttendanceRecord, 0)
	query := fmt.Sprintf("SELECT %s FROM attendance%s ORDER BY id", attendanceColumns, w.sql())
	if err := r.db.SelectContext(ctx, &records, query, w.args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// FindByID fetches an attendance record by id.
func (r *AttendanceRepository) FindByID(ctx context.Context, id int64) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	query := fmt.Sprintf("SELECT %s FROM attendance WHERE id = $1", attendanceColumns)
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, notFound(err)
	}
	return &record, nil
}

// Create inserts a record and stores the assigned id on it.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	const query = `INSERT INTO attendance (student_id, date, status, notes) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		record.StudentID, record.Date, string(record.Status), record.Notes,
	).Scan(&record.ID)
	if err != nil {
		return writeError(err, "create attendance")
	}
	return nil
}

// Upsert marks a student's day in one statement. xmax is zero only for rows
// the statement inserted.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) (bool, error) {
	const query = `INSERT INTO attendance (student_id, date, status, notes) VALUES ($1, $2, $3, $4)
        ON CONFLICT (student_id, date) DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes
        RETURNING id, (xmax = 0) AS inserted`
	var inserted bool
	err := r.db.QueryRowxContext(ctx, query,
		record.StudentID, record.Date, string(record.Status), record.Notes,
	).Scan(&record.ID, &inserted)
	if err != nil {
		return false, fmt.Errorf("upsert attendance: %w", err)
	}
	return inserted, nil
}

// Update overwrites an existing record.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	const query = `UPDATE attendance SET student_id = $2, date = $3, status = $4, notes = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, record.ID, record.StudentID, record.Date, string(record.Status), record.Notes)
	if err != nil {
		return writeError(err, "update attendance")
	}
	return expectAffected(res, "update attendance")
}

// Delete removes an attendance record.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return expectAffected(res, "delete attendance")
}
