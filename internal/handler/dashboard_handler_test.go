package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-roster-api/internal/dto"
	"github.com/noah-isme/sma-roster-api/internal/repository"
	appErrors "github.com/noah-isme/sma-roster-api/pkg/errors"
)

type fakeDashboardSrv struct {
	resp *dto.DashboardResponse
	hit  bool
	err  error
}

func (f *fakeDashboardSrv) Summary(context.Context) (*dto.DashboardResponse, bool, error) {
	return f.resp, f.hit, f.err
}

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Meta  map[string]interface{} `json:"meta"`
	Error *appErrors.Error       `json:"error"`
}

func TestDashboardHandlerSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{
		resp: &dto.DashboardResponse{Date: "2024-03-15", Students: dto.StudentCounts{Total: 4, Active: 3}},
		hit:  true,
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	handler.Summary(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	assert.Equal(t, "2024-03-15", envelope.Data["date"])
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestDashboardHandlerStoreUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{
		err: appErrors.Wrap(repository.ErrUnavailable, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to load dashboard data"),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	handler.Summary(c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", envelope.Error.Code)
	assert.Equal(t, "failed to load dashboard data", envelope.Error.Message)
}

func TestDashboardHandlerWithoutService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	handler.Summary(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
