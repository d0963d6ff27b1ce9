package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository/memory"
	appErrors "github.com/noah-isme/sma-roster-api/pkg/errors"
)

func newTeacherService() *TeacherService {
	svc := NewTeacherService(memory.NewTeacherRepository(memory.NewDB()), nil, nil, nil)
	svc.now = fixedClock
	return svc
}

func TestTeacherServiceCreateDefaults(t *testing.T) {
	svc := newTeacherService()

	teacher, err := svc.Create(context.Background(), CreateTeacherRequest{FirstName: "Sarah", LastName: "Wilson", ExperienceYears: 12})
	require.NoError(t, err)
	assert.Equal(t, models.EmploymentFullTime, teacher.EmploymentStatus)
	assert.Equal(t, "2024-03-15", teacher.HireDate)
	assert.Equal(t, int64(1), teacher.ID)
}

func TestTeacherServiceCreateRejectsBadEmail(t *testing.T) {
	svc := newTeacherService()

	_, err := svc.Create(context.Background(), CreateTeacherRequest{FirstName: "A", LastName: "B", Email: "not-an-email"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestTeacherServiceListExperienceBuckets(t *testing.T) {
	svc := newTeacherService()
	ctx := context.Background()
	for _, years := range []int{0, 5, 7, 10, 25} {
		_, err := svc.Create(ctx, CreateTeacherRequest{FirstName: "T", LastName: "X", ExperienceYears: years})
		require.NoError(t, err)
	}

	cases := map[string]int{
		models.ExperienceJunior: 2,
		models.ExperienceMid:    3,
		models.ExperienceSenior: 2,
	}
	for bucket, want := range cases {
		_, pagination, err := svc.List(ctx, models.TeacherFilter{Experience: bucket})
		require.NoError(t, err)
		assert.Equal(t, want, pagination.TotalCount, "bucket %s", bucket)
	}

	_, _, err := svc.List(ctx, models.TeacherFilter{Experience: "20+"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestTeacherServiceUpdateAndDelete(t *testing.T) {
	svc := newTeacherService()
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateTeacherRequest{FirstName: "Sarah", LastName: "Wilson", Department: "Science"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, models.TeacherPatch{
		EmploymentStatus: null.StringFrom(string(models.EmploymentPartTime)),
		Department:       null.StringFrom(""),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EmploymentPartTime, updated.EmploymentStatus)
	assert.Equal(t, "", updated.Department)
	assert.Equal(t, "Sarah", updated.FirstName)

	_, err = svc.Update(ctx, created.ID, models.TeacherPatch{EmploymentStatus: null.StringFrom("contractor")})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
