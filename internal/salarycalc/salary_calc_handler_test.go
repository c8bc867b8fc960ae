package salarycalc_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-academy/internal/salarycalc"
	salarycalcerrors "go-academy/internal/salarycalc/errors"
	"go-academy/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeCalcService struct {
	calculateFn  func(ctx context.Context, tenantID, actorID string, req salarycalc.CalculateSalaryRequest) (salarycalc.CalculationResponse, error)
	getAllFn     func(ctx context.Context, tenantID, month string, page, pageSize int) ([]salarycalc.CalculationSummaryResponse, int64, error)
	getByIDFn    func(ctx context.Context, tenantID, id string) (salarycalc.CalculationResponse, error)
	approveFn    func(ctx context.Context, tenantID, actorID, id string) (salarycalc.CalculationSummaryResponse, error)
	markAsPaidFn func(ctx context.Context, tenantID, actorID, id string) (salarycalc.CalculationSummaryResponse, error)
}

func (f *fakeCalcService) Calculate(ctx context.Context, tenantID, actorID string, req salarycalc.CalculateSalaryRequest) (salarycalc.CalculationResponse, error) {
	if f.calculateFn != nil {
		return f.calculateFn(ctx, tenantID, actorID, req)
	}
	return salarycalc.CalculationResponse{}, nil
}

func (f *fakeCalcService) GetAll(ctx context.Context, tenantID, month string, page, pageSize int) ([]salarycalc.CalculationSummaryResponse, int64, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx, tenantID, month, page, pageSize)
	}
	return nil, 0, nil
}

func (f *fakeCalcService) GetByID(ctx context.Context, tenantID, id string) (salarycalc.CalculationResponse, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, tenantID, id)
	}
	return salarycalc.CalculationResponse{}, nil
}

func (f *fakeCalcService) Approve(ctx context.Context, tenantID, actorID, id string) (salarycalc.CalculationSummaryResponse, error) {
	if f.approveFn != nil {
		return f.approveFn(ctx, tenantID, actorID, id)
	}
	return salarycalc.CalculationSummaryResponse{}, nil
}

func (f *fakeCalcService) MarkAsPaid(ctx context.Context, tenantID, actorID, id string) (salarycalc.CalculationSummaryResponse, error) {
	if f.markAsPaidFn != nil {
		return f.markAsPaidFn(ctx, tenantID, actorID, id)
	}
	return salarycalc.CalculationSummaryResponse{}, nil
}

func newCalcRouter(svc salarycalc.Service, tenantID, staffID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("tenant_id", tenantID)
		c.Set("staff_id", staffID)
		c.Next()
	})

	handler := salarycalc.NewHandler(svc)
	router.POST("/salary-calculations/calculate", handler.Calculate)
	router.GET("/salary-calculations", handler.GetAll)
	router.GET("/salary-calculations/:id", handler.GetById)
	router.POST("/salary-calculations/:id/approve", handler.Approve)
	return router
}

func calcEnvelope(t *testing.T, body []byte) struct {
	Ok    bool                           `json:"ok"`
	Data  salarycalc.CalculationResponse `json:"data"`
	Error map[string]any                 `json:"error"`
} {
	t.Helper()
	var envelope struct {
		Ok    bool                           `json:"ok"`
		Data  salarycalc.CalculationResponse `json:"data"`
		Error map[string]any                 `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func TestCalcHandler_Calculate(t *testing.T) {
	tenantID := uuid.NewString()
	actorID := uuid.NewString()

	t.Run("persisted run responds 201", func(t *testing.T) {
		svc := &fakeCalcService{
			calculateFn: func(ctx context.Context, gotTenant, gotActor string, req salarycalc.CalculateSalaryRequest) (salarycalc.CalculationResponse, error) {
				assert.Equal(t, tenantID, gotTenant)
				assert.Equal(t, actorID, gotActor)
				return salarycalc.CalculationResponse{
					ID:        uuid.NewString(),
					StaffID:   req.StaffID,
					Month:     req.Month,
					NetSalary: 1_500_000,
					Status:    "calculated",
				}, nil
			},
		}
		router := newCalcRouter(svc, tenantID, actorID)

		body, _ := json.Marshal(salarycalc.CalculateSalaryRequest{
			StaffID: uuid.NewString(),
			Month:   "2026-03",
		})
		req, _ := http.NewRequest(http.MethodPost, "/salary-calculations/calculate", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		envelope := calcEnvelope(t, w.Body.Bytes())
		assert.True(t, envelope.Ok)
		assert.Equal(t, int64(1_500_000), envelope.Data.NetSalary)
	})

	t.Run("preview run responds 200", func(t *testing.T) {
		svc := &fakeCalcService{
			calculateFn: func(ctx context.Context, tenantID, actorID string, req salarycalc.CalculateSalaryRequest) (salarycalc.CalculationResponse, error) {
				return salarycalc.CalculationResponse{Preview: true, NetSalary: 900_000}, nil
			},
		}
		router := newCalcRouter(svc, tenantID, actorID)

		body, _ := json.Marshal(salarycalc.CalculateSalaryRequest{
			StaffID:     uuid.NewString(),
			Month:       "2026-03",
			PreviewMode: true,
		})
		req, _ := http.NewRequest(http.MethodPost, "/salary-calculations/calculate", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		envelope := calcEnvelope(t, w.Body.Bytes())
		assert.True(t, envelope.Data.Preview)
	})

	t.Run("missing required fields respond 400", func(t *testing.T) {
		router := newCalcRouter(&fakeCalcService{}, tenantID, actorID)

		req, _ := http.NewRequest(http.MethodPost, "/salary-calculations/calculate", bytes.NewBufferString(`{"staff_id": ""}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service errors map to their HTTP status", func(t *testing.T) {
		svc := &fakeCalcService{
			calculateFn: func(ctx context.Context, tenantID, actorID string, req salarycalc.CalculateSalaryRequest) (salarycalc.CalculationResponse, error) {
				return salarycalc.CalculationResponse{}, salarycalcerrors.ErrPolicyInactive
			},
		}
		router := newCalcRouter(svc, tenantID, actorID)

		body, _ := json.Marshal(salarycalc.CalculateSalaryRequest{
			StaffID: uuid.NewString(),
			Month:   "2026-03",
		})
		req, _ := http.NewRequest(http.MethodPost, "/salary-calculations/calculate", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, salarycalcerrors.ErrPolicyInactive.HTTPStatus, w.Code)
		envelope := calcEnvelope(t, w.Body.Bytes())
		assert.False(t, envelope.Ok)
	})
}

func TestCalcHandler_GetAll(t *testing.T) {
	tenantID := uuid.NewString()

	svc := &fakeCalcService{
		getAllFn: func(ctx context.Context, gotTenant, month string, page, pageSize int) ([]salarycalc.CalculationSummaryResponse, int64, error) {
			assert.Equal(t, "2026-03", month)
			assert.Equal(t, 2, page)
			assert.Equal(t, 5, pageSize)
			return []salarycalc.CalculationSummaryResponse{
				{ID: uuid.NewString(), Month: month, Status: "calculated"},
			}, 11, nil
		},
	}
	router := newCalcRouter(svc, tenantID, uuid.NewString())

	req, _ := http.NewRequest(http.MethodGet, "/salary-calculations?month=2026-03&page=2&page_size=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Ok   bool                                    `json:"ok"`
		Data []salarycalc.CalculationSummaryResponse `json:"data"`
		Meta *response.PaginationMeta                `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 1)
	assert.Equal(t, int64(11), envelope.Meta.Total)
	assert.Equal(t, 3, envelope.Meta.TotalPages)
}

func TestCalcHandler_Approve(t *testing.T) {
	tenantID := uuid.NewString()
	id := uuid.NewString()

	t.Run("approvable calculation", func(t *testing.T) {
		svc := &fakeCalcService{
			approveFn: func(ctx context.Context, tenantID, actorID, gotID string) (salarycalc.CalculationSummaryResponse, error) {
				assert.Equal(t, id, gotID)
				return salarycalc.CalculationSummaryResponse{ID: gotID, Status: "approved"}, nil
			},
		}
		router := newCalcRouter(svc, tenantID, uuid.NewString())

		req, _ := http.NewRequest(http.MethodPost, "/salary-calculations/"+id+"/approve", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong status", func(t *testing.T) {
		svc := &fakeCalcService{
			approveFn: func(ctx context.Context, tenantID, actorID, id string) (salarycalc.CalculationSummaryResponse, error) {
				return salarycalc.CalculationSummaryResponse{}, salarycalcerrors.ErrNotApprovable
			},
		}
		router := newCalcRouter(svc, tenantID, uuid.NewString())

		req, _ := http.NewRequest(http.MethodPost, "/salary-calculations/"+id+"/approve", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, salarycalcerrors.ErrNotApprovable.HTTPStatus, w.Code)
	})
}
