// Package memory is a process-local implementation of the repository
// interfaces. It is the default store for development and tests.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

// table holds rows of one entity keyed by id. Ids come from seq and are
// never reused.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[int64]T
	seq  int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

// snapshot returns every row ordered by id. Callers must hold the lock.
func (t *table[T]) snapshot() []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) get(id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return row, nil
}

// insert stores row under a fresh id, calling assign to stamp it first.
func (t *table[T]) insert(row T, assign func(*T, int64)) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	assign(&row, t.seq)
	t.rows[t.seq] = row
	return row
}

// load stores row under its existing id and advances seq past it.
func (t *table[T]) load(id int64, row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = row
	if id > t.seq {
		t.seq = id
	}
}

func (t *table[T]) replace(id int64, row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	t.rows[id] = row
	return nil
}

func (t *table[T]) remove(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *table[T]) filter(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0)
	for _, row := range t.snapshot() {
		if match(row) {
			out = append(out, row)
		}
	}
	return out
}

// DB is the set of in-memory tables behind the repositories.
type DB struct {
	students   *table[models.Student]
	teachers   *table[models.Teacher]
	grades     *table[models.Grade]
	attendance *table[models.AttendanceRecord]
}

// NewDB returns an empty database.
func NewDB() *DB {
	return &DB{
		students:   newTable[models.Student](),
		teachers:   newTable[models.Teacher](),
		grades:     newTable[models.Grade](),
		attendance: newTable[models.AttendanceRecord](),
	}
}

// NewStore wires every repository to db.
func NewStore(db *DB) repository.Store {
	return repository.Store{
		Students:   NewStudentRepository(db),
		Teachers:   NewTeacherRepository(db),
		Grades:     NewGradeRepository(db),
		Attendance: NewAttendanceRepository(db),
	}
}

// Seed is the fixture document accepted by LoadSeed.
type Seed struct {
	Students   []models.Student          `json:"students"`
	Teachers   []models.Teacher          `json:"teachers"`
	Grades     []models.Grade            `json:"grades"`
	Attendance []models.AttendanceRecord `json:"attendance"`
}

// Load copies seed rows into db, keeping their ids. Rows without a positive
// id are rejected.
func (db *DB) Load(seed Seed) error {
	for _, s := range seed.Students {
		if s.ID <= 0 {
			return fmt.Errorf("seed student %q: id must be positive", s.StudentCode)
		}
		db.students.load(s.ID, s)
	}
	for _, t := range seed.Teachers {
		if t.ID <= 0 {
			return fmt.Errorf("seed teacher %q: id must be positive", t.FullName())
		}
		db.teachers.load(t.ID, t)
	}
	for _, g := range seed.Grades {
		if g.ID <= 0 {
			return fmt.Errorf("seed grade for student %d: id must be positive", g.StudentID)
		}
		db.grades.load(g.ID, g)
	}
	for _, r := range seed.Attendance {
		if r.ID <= 0 {
			return fmt.Errorf("seed attendance for student %d: id must be positive", r.StudentID)
		}
		db.attendance.load(r.ID, r)
	}
	return nil
}

// LoadSeedFile reads a JSON Seed from path into db.
func (db *DB) LoadSeedFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}
	return db.Load(seed)
}
