package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resto-ops/internal/employee"
	employeeerrors "resto-ops/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok      bool            `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Warning string          `json:"warning"`
	Error   *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeEmployeeService struct {
	createFn           func(ctx context.Context, restaurantID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getRosterFn        func(ctx context.Context, restaurantID string) (employee.RosterResponse, error)
	getOptionsFn       func(ctx context.Context, restaurantID string) ([]employee.EmployeeResponse, error)
	getByIDFn          func(ctx context.Context, restaurantID, id string) (employee.EmployeeResponse, error)
	updateFn           func(ctx context.Context, restaurantID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	archiveFn          func(ctx context.Context, restaurantID, id, reason string) (employee.TransitionResult, error)
	trashFn            func(ctx context.Context, restaurantID, id string) (employee.TransitionResult, error)
	restoreTrashFn     func(ctx context.Context, restaurantID, id string) (employee.TransitionResult, error)
	restoreArchiveFn   func(ctx context.Context, restaurantID, id string) (employee.TransitionResult, error)
	purgeFn            func(ctx context.Context, restaurantID, id string) (employee.TransitionResult, error)
	updateArchReasonFn func(ctx context.Context, restaurantID, id, reason string) (employee.TransitionResult, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, restaurantID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, restaurantID, req)
}
func (f *fakeEmployeeService) GetRoster(ctx context.Context, restaurantID string) (employee.RosterResponse, error) {
	return f.getRosterFn(ctx, restaurantID)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context, restaurantID string) ([]employee.EmployeeResponse, error) {
	return f.getOptionsFn(ctx, restaurantID)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, restaurantID, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, restaurantID, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, restaurantID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.updateFn(ctx, restaurantID, id, req)
}
func (f *fakeEmployeeService) Archive(ctx context.Context, restaurantID, id, reason string) (employee.TransitionResult, error) {
	return f.archiveFn(ctx, restaurantID, id, reason)
}
func (f *fakeEmployeeService) Trash(ctx context.Context, restaurantID, id string) (employee.TransitionResult, error) {
	return f.trashFn(ctx, restaurantID, id)
}
func (f *fakeEmployeeService) RestoreFromTrash(ctx context.Context, restaurantID, id string) (employee.TransitionResult, error) {
	return f.restoreTrashFn(ctx, restaurantID, id)
}
func (f *fakeEmployeeService) RestoreFromArchive(ctx context.Context, restaurantID, id string) (employee.TransitionResult, error) {
	return f.restoreArchiveFn(ctx, restaurantID, id)
}
func (f *fakeEmployeeService) Purge(ctx context.Context, restaurantID, id string) (employee.TransitionResult, error) {
	return f.purgeFn(ctx, restaurantID, id)
}
func (f *fakeEmployeeService) UpdateArchiveReason(ctx context.Context, restaurantID, id, reason string) (employee.TransitionResult, error) {
	return f.updateArchReasonFn(ctx, restaurantID, id, reason)
}

func newHandlerContext(t *testing.T, method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set("restaurant_id", uuid.NewString())
	return c, w
}

func TestEmployeeHandler_ArchiveRequiresReasonInBody(t *testing.T) {
	svc := &fakeEmployeeService{}
	handler := employee.NewHandler(svc)

	c, w := newHandlerContext(t, http.MethodPost, "/employees/x/archive", `{}`)
	handler.Archive(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestEmployeeHandler_ArchivePersistedOmitsWarning(t *testing.T) {
	svc := &fakeEmployeeService{
		archiveFn: func(ctx context.Context, restaurantID, id, reason string) (employee.TransitionResult, error) {
			return employee.TransitionResult{
				Employee:  employee.EmployeeResponse{ID: id, Partition: string(employee.PartitionArchived)},
				Persisted: true,
			}, nil
		},
	}
	handler := employee.NewHandler(svc)

	c, w := newHandlerContext(t, http.MethodPost, "/employees/x/archive", `{"reason":"fin de contrat"}`)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	handler.Archive(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	assert.Empty(t, env.Warning)
}

func TestEmployeeHandler_UnpersistedTransitionCarriesWarning(t *testing.T) {
	svc := &fakeEmployeeService{
		trashFn: func(ctx context.Context, restaurantID, id string) (employee.TransitionResult, error) {
			return employee.TransitionResult{
				Employee:  employee.EmployeeResponse{ID: id, Partition: string(employee.PartitionTrashed)},
				Persisted: false,
				Warning:   "change applied but not confirmed by the store, reload to reconcile",
			}, nil
		},
	}
	handler := employee.NewHandler(svc)

	c, w := newHandlerContext(t, http.MethodPost, "/employees/x/trash", "")
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	handler.Trash(c)

	// Still a success: the move happened, the caller decides how to
	// reconcile.
	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	assert.NotEmpty(t, env.Warning)
}

func TestEmployeeHandler_ServiceErrorsMapToHTTP(t *testing.T) {
	svc := &fakeEmployeeService{
		purgeFn: func(ctx context.Context, restaurantID, id string) (employee.TransitionResult, error) {
			return employee.TransitionResult{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	handler := employee.NewHandler(svc)

	c, w := newHandlerContext(t, http.MethodDelete, "/employees/x", "")
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	handler.Purge(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestEmployeeHandler_GetRoster(t *testing.T) {
	svc := &fakeEmployeeService{
		getRosterFn: func(ctx context.Context, restaurantID string) (employee.RosterResponse, error) {
			return employee.RosterResponse{
				Active:   []employee.EmployeeResponse{{Name: "Alice"}},
				Archived: []employee.EmployeeResponse{},
				Trashed:  []employee.EmployeeResponse{},
			}, nil
		},
	}
	handler := employee.NewHandler(svc)

	c, w := newHandlerContext(t, http.MethodGet, "/employees", "")
	handler.GetRoster(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	require.True(t, env.Ok)

	var roster employee.RosterResponse
	require.NoError(t, json.Unmarshal(env.Data, &roster))
	require.Len(t, roster.Active, 1)
	assert.Equal(t, "Alice", roster.Active[0].Name)
}
