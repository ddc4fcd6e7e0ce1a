package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"resto-ops/internal/activitylog"
	"resto-ops/internal/employee"
	employeeerrors "resto-ops/internal/employee/errors"
	"resto-ops/internal/employee/mock"
	"resto-ops/internal/events"
	"resto-ops/internal/messaging/kafka"
	kafkamock "resto-ops/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func uuid4(t *testing.T) string {
	t.Helper()
	return uuid.NewString()
}

type recordedEntry struct {
	actorName string
	action    string
	details   string
	category  activitylog.Category
}

type fakeRecorder struct {
	entries []recordedEntry
}

func (f *fakeRecorder) Record(ctx context.Context, restaurantID, actorName, action, details string, category activitylog.Category) activitylog.Entry {
	f.entries = append(f.entries, recordedEntry{
		actorName: actorName,
		action:    action,
		details:   details,
		category:  category,
	})
	return activitylog.Entry{}
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, restaurantID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type employeeServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	repo     *mock.MockRepository
	recorder *fakeRecorder
	service  employee.Service
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	recorder := &fakeRecorder{}

	svc := employee.NewService(db, repo, &fakeCounter{}, nil, nil, recorder, nil, nil)

	return &employeeServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		repo:     repo,
		recorder: recorder,
		service:  svc,
	}
}

func TestEmployeeService_GetRosterSweepsExpiredContracts(t *testing.T) {
	ctx := context.Background()
	deps := setupEmployeeServiceTest(t)
	defer deps.db.Close()

	restaurantID := uuid4(t)
	expired := newActiveEmployee("Paul")
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	expired.ContractEndDate = datePtr(yesterday)

	deps.repo.EXPECT().
		FindAllByRestaurant(ctx, restaurantID).
		Return([]employee.Employee{expired}, nil)

	deps.sqlMock.ExpectBegin()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			assert.True(t, e.IsArchived)
			assert.True(t, employee.IsAutoReason(e.ArchivedReason))
			return nil
		})
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.GetRoster(ctx, restaurantID)
	require.NoError(t, err)

	assert.Len(t, resp.Active, 0)
	require.Len(t, resp.Archived, 1)
	assert.Contains(t, resp.Archived[0].ArchivedReason, yesterday.Format("2006-01-02"))

	require.Len(t, deps.recorder.entries, 1)
	assert.Equal(t, activitylog.CategoryEquipe, deps.recorder.entries[0].category)
	assert.Equal(t, "Archivage automatique", deps.recorder.entries[0].action)
}

func TestEmployeeService_PurgeIssuesExactlyOneHardDelete(t *testing.T) {
	ctx := context.Background()
	deps := setupEmployeeServiceTest(t)
	defer deps.db.Close()

	restaurantID := uuid4(t)
	trashed := newActiveEmployee("Quentin")
	trashed.IsDeleted = true
	trashed.DeletedDate = datePtr(time.Now().UTC())

	deps.repo.EXPECT().
		FindAllByRestaurant(ctx, restaurantID).
		Return([]employee.Employee{trashed}, nil)

	deps.sqlMock.ExpectBegin()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().
		HardDelete(ctx, restaurantID, trashed.ID.String()).
		Return(nil).
		Times(1)
	deps.sqlMock.ExpectCommit()

	result, err := deps.service.Purge(ctx, restaurantID, trashed.ID.String())
	require.NoError(t, err)

	assert.True(t, result.Persisted)
	assert.Empty(t, result.Warning)

	require.Len(t, deps.recorder.entries, 1)
	assert.Equal(t, "Suppression définitive", deps.recorder.entries[0].action)
}

func TestEmployeeService_PurgeRejectsNonTrashed(t *testing.T) {
	ctx := context.Background()
	deps := setupEmployeeServiceTest(t)
	defer deps.db.Close()

	restaurantID := uuid4(t)
	active := newActiveEmployee("Rosa")

	deps.repo.EXPECT().
		FindAllByRestaurant(ctx, restaurantID).
		Return([]employee.Employee{active}, nil)

	_, err := deps.service.Purge(ctx, restaurantID, active.ID.String())
	assert.ErrorIs(t, err, employeeerrors.ErrNotTrashed)
	assert.Len(t, deps.recorder.entries, 0)
}

func TestEmployeeService_ArchiveWithoutReasonMutatesNothing(t *testing.T) {
	ctx := context.Background()
	deps := setupEmployeeServiceTest(t)
	defer deps.db.Close()

	restaurantID := uuid4(t)
	active := newActiveEmployee("Sonia")

	deps.repo.EXPECT().
		FindAllByRestaurant(ctx, restaurantID).
		Return([]employee.Employee{active}, nil)

	_, err := deps.service.Archive(ctx, restaurantID, active.ID.String(), "")
	assert.ErrorIs(t, err, employeeerrors.ErrArchiveReasonRequired)
	assert.Len(t, deps.recorder.entries, 0)
}

func TestEmployeeService_TransitionSurvivesPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	deps := setupEmployeeServiceTest(t)
	defer deps.db.Close()

	restaurantID := uuid4(t)
	active := newActiveEmployee("Théo")

	deps.repo.EXPECT().
		FindAllByRestaurant(ctx, restaurantID).
		Return([]employee.Employee{active}, nil)

	deps.sqlMock.ExpectBegin()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().
		Update(ctx, gomock.Any()).
		Return(errors.New("connection reset"))
	deps.sqlMock.ExpectRollback()

	result, err := deps.service.Trash(ctx, restaurantID, active.ID.String())
	require.NoError(t, err)

	// The move happened, the store did not confirm it.
	assert.False(t, result.Persisted)
	assert.NotEmpty(t, result.Warning)
	assert.Equal(t, string(employee.PartitionTrashed), result.Employee.Partition)

	// The transition is still logged exactly once.
	require.Len(t, deps.recorder.entries, 1)
	assert.Equal(t, activitylog.CategoryEquipe, deps.recorder.entries[0].category)
}

func TestEmployeeService_TrashReportsUnpersistedWhenOutboxWriteFails(t *testing.T) {
	ctx := context.Background()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	outbox := kafkamock.NewMockOutboxRepository(ctrl)
	recorder := &fakeRecorder{}

	svc := employee.NewService(db, repo, &fakeCounter{}, outbox, nil, recorder, nil, nil)

	restaurantID := uuid4(t)
	active := newActiveEmployee("Ugo")

	repo.EXPECT().
		FindAllByRestaurant(ctx, restaurantID).
		Return([]employee.Employee{active}, nil)

	sqlMock.ExpectBegin()
	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox)
	outbox.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event kafka.OutboxEvent) error {
			assert.Equal(t, events.EmployeeTrashed, event.EventType)
			assert.Equal(t, kafka.OutboxStatusPending, event.Status)
			return errors.New("relation lifecycle_outbox does not exist")
		})
	sqlMock.ExpectRollback()

	result, err := svc.Trash(ctx, restaurantID, active.ID.String())
	require.NoError(t, err)

	// The row update rolls back together with the event.
	assert.False(t, result.Persisted)
	assert.NotEmpty(t, result.Warning)
	assert.NoError(t, sqlMock.ExpectationsWereMet())

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "Mise à la corbeille", recorder.entries[0].action)
}

func TestEmployeeService_InvalidIDRejectedBeforeLoading(t *testing.T) {
	ctx := context.Background()
	deps := setupEmployeeServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Trash(ctx, uuid4(t), "not-a-uuid")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}
