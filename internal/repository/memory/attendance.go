package memory

import (
	"context"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

type attendanceRepository struct {
	db *table[models.AttendanceRecord]
}

// NewAttendanceRepository returns an attendance repository backed by db.
// A student has at most one record per date.
func NewAttendanceRepository(db *DB) repository.AttendanceRepository {
	return &attendanceRepository{db: db.attendance}
}

func (r *attendanceRepository) List(_ context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	return r.db.filter(filter.Matches), nil
}

func (r *attendanceRepository) FindByID(_ context.Context, id int64) (*models.AttendanceRecord, error) {
	rec, err := r.db.get(id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// sameDay returns the id of another record for the student and date.
// Callers must hold the lock.
func (r *attendanceRepository) sameDay(record models.AttendanceRecord) (int64, bool) {
	for id, row := range r.db.rows {
		if id != record.ID && row.StudentID == record.StudentID && row.Date == record.Date {
			return id, true
		}
	}
	return 0, false
}

func (r *attendanceRepository) Create(_ context.Context, record *models.AttendanceRecord) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	record.ID = 0
	if _, taken := r.sameDay(*record); taken {
		return repository.ErrConflict
	}
	r.db.seq++
	record.ID = r.db.seq
	r.db.rows[record.ID] = *record
	return nil
}

func (r *attendanceRepository) Upsert(_ context.Context, record *models.AttendanceRecord) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	record.ID = 0
	if id, ok := r.sameDay(*record); ok {
		current := r.db.rows[id]
		current.Status = record.Status
		current.Notes = record.Notes
		r.db.rows[id] = current
		*record = current
		return false, nil
	}
	r.db.seq++
	record.ID = r.db.seq
	r.db.rows[record.ID] = *record
	return true, nil
}

func (r *attendanceRepository) Update(_ context.Context, record *models.AttendanceRecord) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.rows[record.ID]; !ok {
		return repository.ErrNotFound
	}
	if _, taken := r.sameDay(*record); taken {
		return repository.ErrConflict
	}
	r.db.rows[record.ID] = *record
	return nil
}

func (r *attendanceRepository) Delete(_ context.Context, id int64) error {
	return r.db.remove(id)
}
