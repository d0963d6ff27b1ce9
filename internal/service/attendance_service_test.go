package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/noah-isme/sma-roster-api/internal/models"
	appErrors "github.com/noah-isme/sma-roster-api/pkg/errors"
)

func newAttendanceService() *AttendanceService {
	svc := NewAttendanceService(seededStore().Attendance, nil, nil, nil, nil)
	svc.now = fixedClock
	return svc
}

func TestAttendanceServiceMarkUpdatesExisting(t *testing.T) {
	svc := newAttendanceService()
	ctx := context.Background()

	record, created, err := svc.Mark(ctx, CreateAttendanceRequest{StudentID: 1, Status: models.AttendanceStatusAbsent, Notes: "sick"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(1), record.ID)
	assert.Equal(t, models.AttendanceStatusAbsent, record.Status)

	all, err := svc.List(ctx, models.AttendanceFilter{StudentID: 1, Date: "2024-03-15"})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "sick", all[0].Notes)
}

func TestAttendanceServiceMarkCreatesMissing(t *testing.T) {
	svc := newAttendanceService()

	record, created, err := svc.Mark(context.Background(), CreateAttendanceRequest{StudentID: 2, Date: "2024-03-13", Status: models.AttendanceStatusPresent})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(4), record.ID)
}

func TestAttendanceServiceRejectsUnknownStatus(t *testing.T) {
	svc := newAttendanceService()

	_, err := svc.Create(context.Background(), CreateAttendanceRequest{StudentID: 1, Status: "excused"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Update(context.Background(), 1, models.AttendancePatch{Status: null.StringFrom("excused")})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAttendanceServiceDelete(t *testing.T) {
	svc := newAttendanceService()
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 2))
	_, err := svc.Get(ctx, 2)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAttendanceServiceCreateSameDayConflicts(t *testing.T) {
	svc := newAttendanceService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateAttendanceRequest{StudentID: 1, Status: models.AttendanceStatusLate})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.Status)

	_, err = svc.Update(ctx, 3, models.AttendancePatch{Date: null.StringFrom("2024-03-15")})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	all, err := svc.List(ctx, models.AttendanceFilter{StudentID: 1, Date: "2024-03-15"})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAttendanceServiceMarkIsIdempotentPerDay(t *testing.T) {
	svc := newAttendanceService()
	ctx := context.Background()
	req := CreateAttendanceRequest{StudentID: 2, Date: "2024-03-12", Status: models.AttendanceStatusPresent}

	first, created, err := svc.Mark(ctx, req)
	require.NoError(t, err)
	assert.True(t, created)

	req.Status = models.AttendanceStatusAbsent
	second, created, err := svc.Mark(ctx, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.AttendanceStatusAbsent, second.Status)

	all, err := svc.List(ctx, models.AttendanceFilter{StudentID: 2, Date: "2024-03-12"})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
