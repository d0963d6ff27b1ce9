package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

// snapshot is a point-in-time copy of the roster used for aggregation.
type snapshot struct {
	students   []models.Student
	grades     []models.Grade
	attendance []models.AttendanceRecord
}

// snapshotLoader reads the three roster collections concurrently. The first
// failure cancels the remaining reads.
type snapshotLoader struct {
	students   repository.StudentRepository
	grades     repository.GradeRepository
	attendance repository.AttendanceRepository
	metrics    *MetricsService
}

func (l snapshotLoader) load(ctx context.Context, studentID int64) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer l.observe("students", time.Now())
		if studentID > 0 {
			student, err := l.students.FindByID(gctx, studentID)
			if err != nil {
				return err
			}
			snap.students = []models.Student{*student}
			return nil
		}
		students, _, err := l.students.List(gctx, models.StudentFilter{})
		snap.students = students
		return err
	})
	g.Go(func() error {
		defer l.observe("grades", time.Now())
		grades, err := l.grades.List(gctx, models.GradeFilter{StudentID: studentID})
		snap.grades = grades
		return err
	})
	g.Go(func() error {
		defer l.observe("attendance", time.Now())
		records, err := l.attendance.List(gctx, models.AttendanceFilter{StudentID: studentID})
		snap.attendance = records
		return err
	})

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func (l snapshotLoader) observe(name string, start time.Time) {
	l.metrics.ObserveStoreRead(name, time.Since(start))
}
