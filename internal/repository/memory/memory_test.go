package memory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

func newStudent(code string, level int) *models.Student {
	return &models.Student{
		FirstName:      "Ada",
		LastName:       code,
		StudentCode:    code,
		GradeLevel:     level,
		Section:        "A",
		EnrollmentDate: "2024-01-08",
		Status:         models.StudentStatusActive,
	}
}

func TestStudentRepositoryAssignsIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(NewDB())

	first := newStudent("S1", 10)
	second := newStudent("S2", 11)
	first.ID = 99
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	require.NoError(t, repo.Delete(ctx, first.ID))
	third := newStudent("S3", 12)
	require.NoError(t, repo.Create(ctx, third))
	assert.Equal(t, int64(3), third.ID)
}

func TestStudentRepositoryConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(NewDB())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Create(ctx, newStudent(fmt.Sprintf("C%02d", i), 9))
		}(i)
	}
	wg.Wait()

	all, total, err := repo.List(ctx, models.StudentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 50, total)
	seen := make(map[int64]bool)
	for _, s := range all {
		assert.False(t, seen[s.ID])
		seen[s.ID] = true
	}
}

func TestStudentRepositoryListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(NewDB())
	for i, level := range []int{9, 10, 10, 10, 11} {
		s := newStudent(string(rune('A'+i)), level)
		require.NoError(t, repo.Create(ctx, s))
	}

	page, total, err := repo.List(ctx, models.StudentFilter{GradeLevel: 10, Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, int64(4), page[0].ID)
}

func TestStudentRepositoryUpdateAndNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(NewDB())
	s := newStudent("S1", 10)
	require.NoError(t, repo.Create(ctx, s))

	s.Email = ""
	s.Section = "B"
	require.NoError(t, repo.Update(ctx, s))
	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Section)

	_, err = repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &models.Student{ID: 42}), repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 42), repository.ErrNotFound)
}

func TestStudentRepositoryExistsByCode(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(NewDB())
	s := newStudent("STU-001", 10)
	require.NoError(t, repo.Create(ctx, s))

	exists, err := repo.ExistsByCode(ctx, "stu-001", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(ctx, "STU-001", s.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStudentRepositoryRejectsDuplicateCodeIgnoringCase(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(NewDB())
	first := newStudent("STU-001", 10)
	require.NoError(t, repo.Create(ctx, first))

	assert.ErrorIs(t, repo.Create(ctx, newStudent("stu-001", 11)), repository.ErrConflict)

	second := newStudent("STU-002", 10)
	require.NoError(t, repo.Create(ctx, second))
	second.StudentCode = "Stu-001"
	assert.ErrorIs(t, repo.Update(ctx, second), repository.ErrConflict)

	first.StudentCode = "stu-001"
	require.NoError(t, repo.Update(ctx, first))
}

func TestStudentRepositoryConcurrentCreatesSameCode(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(NewDB())

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Create(ctx, newStudent("SAME", 9)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, repository.ErrConflict)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	_, total, err := repo.List(ctx, models.StudentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestAttendanceRepositoryOneRecordPerDay(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(NewDB())

	first := &models.AttendanceRecord{StudentID: 1, Date: "2024-03-15", Status: models.AttendanceStatusPresent}
	require.NoError(t, repo.Create(ctx, first))
	dup := &models.AttendanceRecord{StudentID: 1, Date: "2024-03-15", Status: models.AttendanceStatusLate}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrConflict)

	other := &models.AttendanceRecord{StudentID: 1, Date: "2024-03-14", Status: models.AttendanceStatusPresent}
	require.NoError(t, repo.Create(ctx, other))
	other.Date = "2024-03-15"
	assert.ErrorIs(t, repo.Update(ctx, other), repository.ErrConflict)

	marked := &models.AttendanceRecord{StudentID: 1, Date: "2024-03-15", Status: models.AttendanceStatusAbsent, Notes: "sick"}
	created, err := repo.Upsert(ctx, marked)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, marked.ID)

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusAbsent, got.Status)
	assert.Equal(t, "sick", got.Notes)

	fresh := &models.AttendanceRecord{StudentID: 2, Date: "2024-03-15", Status: models.AttendanceStatusPresent}
	created, err = repo.Upsert(ctx, fresh)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(3), fresh.ID)
}

func TestAttendanceRepositoryConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(NewDB())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Upsert(ctx, &models.AttendanceRecord{StudentID: 7, Date: "2024-03-15", Status: models.AttendanceStatusPresent})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	recs, err := repo.List(ctx, models.AttendanceFilter{StudentID: 7, Date: "2024-03-15"})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestGradeAndAttendanceFilters(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	grades := NewGradeRepository(db)
	attendance := NewAttendanceRepository(db)

	require.NoError(t, grades.Create(ctx, &models.Grade{StudentID: 1, Subject: "Math", Score: 9, MaxScore: 10, Date: "2024-03-01"}))
	require.NoError(t, grades.Create(ctx, &models.Grade{StudentID: 2, Subject: "Math", Score: 7, MaxScore: 10, Date: "2024-03-01"}))
	require.NoError(t, attendance.Create(ctx, &models.AttendanceRecord{StudentID: 1, Date: "2024-03-01", Status: models.AttendanceStatusLate}))
	require.NoError(t, attendance.Create(ctx, &models.AttendanceRecord{StudentID: 1, Date: "2024-03-02", Status: models.AttendanceStatusPresent}))

	got, err := grades.List(ctx, models.GradeFilter{StudentID: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	recs, err := attendance.List(ctx, models.AttendanceFilter{StudentID: 1, Date: "2024-03-02"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, models.AttendanceStatusPresent, recs[0].Status)
}

func TestLoadSeedFileKeepsIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"students": [{"id": 7, "first_name": "Emma", "last_name": "Johnson", "student_code": "STU-007", "grade_level": 10, "section": "A", "enrollment_date": "2023-08-15", "status": "active"}],
		"teachers": [{"id": 3, "first_name": "Sarah", "last_name": "Wilson", "experience_years": 8, "employment_status": "full-time"}]
	}`), 0o600))

	db := NewDB()
	require.NoError(t, db.LoadSeedFile(path))
	store := NewStore(db)

	s, err := store.Students.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Emma Johnson", s.FullName())

	next := newStudent("STU-008", 10)
	require.NoError(t, store.Students.Create(context.Background(), next))
	assert.Equal(t, int64(8), next.ID)
}

func TestLoadRejectsMissingIDs(t *testing.T) {
	err := NewDB().Load(Seed{Grades: []models.Grade{{StudentID: 1}}})
	assert.Error(t, err)
}
