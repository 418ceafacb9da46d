package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	applyFn   func(ctx context.Context, actorID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error)
	approveFn func(ctx context.Context, actorID, id, comment string) (leave.LeaveResponse, error)
	rejectFn  func(ctx context.Context, actorID, id, comment string) (leave.LeaveResponse, error)
	cancelFn  func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error)
	getByIDFn func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error)
	listFn    func(ctx context.Context, actorID, status string) ([]leave.LeaveResponse, error)
	balanceFn func(ctx context.Context, actorID, employeeID string) (leave.BalanceResponse, error)
}

func (f *fakeLeaveService) Apply(ctx context.Context, actorID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	return f.applyFn(ctx, actorID, req)
}
func (f *fakeLeaveService) Approve(ctx context.Context, actorID, id, comment string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, actorID, id, comment)
}
func (f *fakeLeaveService) Reject(ctx context.Context, actorID, id, comment string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, actorID, id, comment)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, actorID, id)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, actorID, id)
}
func (f *fakeLeaveService) List(ctx context.Context, actorID, status string) ([]leave.LeaveResponse, error) {
	return f.listFn(ctx, actorID, status)
}
func (f *fakeLeaveService) Balance(ctx context.Context, actorID, employeeID string) (leave.BalanceResponse, error) {
	return f.balanceFn(ctx, actorID, employeeID)
}

func TestLeaveHandler_Apply(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()

		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, aid string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, "ANNUAL", req.LeaveType)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: aid,
					LeaveType:  req.LeaveType,
					StartDate:  req.StartDate,
					EndDate:    req.EndDate,
					TotalDays:  3,
					Status:     leave.StatusPending,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"ANNUAL","start_date":"2025-06-09","end_date":"2025-06-11","reason":"family event"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", actorID)

		h.Apply(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, actorID, got.EmployeeID)
		assert.Equal(t, leave.StatusPending, got.Status)
	})

	t.Run("missing leave type fails validation", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, aid string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called on invalid input")
				return leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"start_date":"2025-06-09","end_date":"2025-06-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", uuid.New().String())

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("overlap conflict surfaces as 409", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, aid string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrOverlapConflict
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"ANNUAL","start_date":"2025-06-09","end_date":"2025-06-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", uuid.New().String())

		h.Apply(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	t.Run("empty body approves without comment", func(t *testing.T) {
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actorID, id, comment string) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				assert.Empty(t, comment)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("already processed surfaces as 409", func(t *testing.T) {
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actorID, id, comment string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	t.Run("comment is required by binding", func(t *testing.T) {
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, actorID, id, comment string) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called without a comment")
				return leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/reject", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", uuid.New().String())

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, actorID, id, comment string) (leave.LeaveResponse, error) {
				assert.Equal(t, "short staffed", comment)
				return leave.LeaveResponse{ID: id, Status: leave.StatusRejected}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/reject", strings.NewReader(`{"comment":"short staffed"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", uuid.New().String())

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLeaveHandler_Cancel(t *testing.T) {
	leaveID := uuid.New().String()
	actorID := uuid.New().String()

	svc := &fakeLeaveService{
		cancelFn: func(ctx context.Context, aid, id string) (leave.LeaveResponse, error) {
			assert.Equal(t, actorID, aid)
			assert.Equal(t, leaveID, id)
			return leave.LeaveResponse{ID: id, Status: leave.StatusCancelled}, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/cancel", nil)
	c.Params = gin.Params{{Key: "id", Value: leaveID}}
	c.Set("employee_id", actorID)

	h.Cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, leave.StatusCancelled, got.Status)
}

func TestLeaveHandler_Balance(t *testing.T) {
	actorID := uuid.New().String()

	svc := &fakeLeaveService{
		balanceFn: func(ctx context.Context, aid, employeeID string) (leave.BalanceResponse, error) {
			return leave.BalanceResponse{
				EmployeeID: employeeID,
				Balances: map[string]leave.BalanceEntry{
					leave.TypeAnnual: {Allocated: 12, Remaining: 7, Taken: 5},
				},
			}, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves/balance/"+actorID, nil)
	c.Params = gin.Params{{Key: "employeeID", Value: actorID}}
	c.Set("employee_id", actorID)

	h.Balance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got leave.BalanceResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 5, got.Balances[leave.TypeAnnual].Taken)
}
