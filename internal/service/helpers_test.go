package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
	"github.com/noah-isme/sma-roster-api/internal/repository/memory"
	appErrors "github.com/noah-isme/sma-roster-api/pkg/errors"
)

var testNow = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func seededStore() repository.Store {
	db := memory.NewDB()
	_ = db.Load(memory.Seed{
		Students: []models.Student{
			{ID: 1, FirstName: "Emma", LastName: "Johnson", StudentCode: "STU-001", GradeLevel: 10, Section: "A", EnrollmentDate: "2023-08-15", Status: models.StudentStatusActive},
			{ID: 2, FirstName: "Liam", LastName: "Smith", StudentCode: "STU-002", GradeLevel: 11, Section: "B", EnrollmentDate: "2023-08-15", Status: models.StudentStatusInactive},
		},
		Grades: []models.Grade{
			{ID: 1, StudentID: 1, Subject: "Math", Score: 45, MaxScore: 50, Date: "2024-03-01"},
			{ID: 2, StudentID: 1, Subject: "Science", Score: 40, MaxScore: 50, Date: "2024-03-02"},
			{ID: 3, StudentID: 2, Subject: "Math", Score: 30, MaxScore: 50, Date: "2024-03-02"},
		},
		Attendance: []models.AttendanceRecord{
			{ID: 1, StudentID: 1, Date: "2024-03-15", Status: models.AttendanceStatusPresent},
			{ID: 2, StudentID: 2, Date: "2024-03-15", Status: models.AttendanceStatusLate},
			{ID: 3, StudentID: 1, Date: "2024-03-14", Status: models.AttendanceStatusPresent},
		},
	})
	return memory.NewStore(db)
}

// memoryCache is a CacheRepository backed by a map.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return c.getErr
	}
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func (c *memoryCache) DeleteByPattern(_ context.Context, pattern string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	n := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			n++
		}
	}
	return n, nil
}

var errStoreDown = errors.New("connection refused")

// failingGrades fails every call.
type failingGrades struct{ err error }

func (f failingGrades) List(context.Context, models.GradeFilter) ([]models.Grade, error) {
	return nil, f.err
}
func (f failingGrades) FindByID(context.Context, int64) (*models.Grade, error) { return nil, f.err }
func (f failingGrades) Create(context.Context, *models.Grade) error          { return f.err }
func (f failingGrades) Update(context.Context, *models.Grade) error          { return f.err }
func (f failingGrades) Delete(context.Context, int64) error                  { return f.err }