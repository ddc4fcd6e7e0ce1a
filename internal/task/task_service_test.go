package task_test

import (
	"context"
	"testing"

	"resto-ops/internal/activitylog"
	"resto-ops/internal/employee"
	"resto-ops/internal/employee/mock"
	"resto-ops/internal/task"
	taskerrors "resto-ops/internal/task/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeTaskRepository struct {
	tasks   []task.Task
	created []task.Task
	batched [][]task.Task
}

func (f *fakeTaskRepository) Create(ctx context.Context, t *task.Task) error {
	f.created = append(f.created, *t)
	return nil
}

func (f *fakeTaskRepository) FindAllByRestaurant(ctx context.Context, restaurantID string) ([]task.Task, error) {
	return f.tasks, nil
}

func (f *fakeTaskRepository) FindByID(ctx context.Context, restaurantID, id string) (*task.Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID.String() == id {
			return &f.tasks[i], nil
		}
	}
	return nil, taskerrors.ErrTaskNotFound
}

func (f *fakeTaskRepository) Update(ctx context.Context, t *task.Task) error { return nil }

func (f *fakeTaskRepository) UpdateBatch(ctx context.Context, tasks []task.Task) error {
	f.batched = append(f.batched, tasks)
	return nil
}

func (f *fakeTaskRepository) Delete(ctx context.Context, restaurantID, id string) error {
	return nil
}

type fakeTaskRecorder struct {
	actions []string
}

func (f *fakeTaskRecorder) Record(ctx context.Context, restaurantID, actorName, action, details string, category activitylog.Category) activitylog.Entry {
	f.actions = append(f.actions, action)
	return activitylog.Entry{}
}

func setupTaskServiceTest(t *testing.T, tasks []task.Task, crew []employee.Employee) (task.Service, *fakeTaskRepository, *fakeTaskRecorder) {
	t.Helper()

	ctrl := gomock.NewController(t)
	employeeRepo := mock.NewMockRepository(ctrl)
	employeeRepo.EXPECT().
		FindByPartition(gomock.Any(), gomock.Any(), employee.PartitionActive).
		Return(crew, nil).
		AnyTimes()

	repo := &fakeTaskRepository{tasks: tasks}
	recorder := &fakeTaskRecorder{}
	svc := task.NewService(repo, employeeRepo, recorder)
	return svc, repo, recorder
}

func TestTaskService_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupTaskServiceTest(t, nil, nil)

	resp, err := svc.Create(ctx, uuid.NewString(), task.CreateTaskRequest{
		Title: "Nettoyage de la salle",
	})
	require.NoError(t, err)

	assert.Equal(t, string(task.StatusTodo), resp.Status)
	assert.Equal(t, string(task.PriorityNormal), resp.Priority)
	require.Len(t, repo.created, 1)
}

func TestTaskService_CreateRejectsUnknownPriority(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupTaskServiceTest(t, nil, nil)

	_, err := svc.Create(ctx, uuid.NewString(), task.CreateTaskRequest{
		Title:    "Inventaire",
		Priority: "Urgentissime",
	})
	assert.ErrorIs(t, err, taskerrors.ErrInvalidPriority)
}

func TestTaskService_ApplyAssignments(t *testing.T) {
	ctx := context.Background()
	crew := []employee.Employee{{ID: uuid.New(), Name: "Alice"}}
	open := task.Task{ID: uuid.New(), Title: "Plonge", Status: task.StatusTodo, Priority: task.PriorityNormal}
	svc, repo, recorder := setupTaskServiceTest(t, []task.Task{open}, crew)

	resp, err := svc.ApplyAssignments(ctx, uuid.NewString(), []task.Assignment{
		{TaskID: open.ID.String(), EmployeeID: crew[0].ID.String(), Reason: "disponible"},
		{TaskID: uuid.NewString(), EmployeeID: crew[0].ID.String(), Reason: "tâche inconnue"},
		{TaskID: open.ID.String(), EmployeeID: uuid.NewString(), Reason: "employé inconnu"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Applied, 1)
	assert.Equal(t, crew[0].ID.String(), resp.Applied[0].AssignedTo)
	assert.Equal(t, string(task.StatusInProgress), resp.Applied[0].Status)
	assert.Len(t, resp.Skipped, 2)

	// One batch write, one log entry, regardless of how many applied.
	require.Len(t, repo.batched, 1)
	assert.Len(t, repo.batched[0], 1)
	assert.Equal(t, []string{"Répartition des tâches"}, recorder.actions)
}

func TestTaskService_ApplyAssignmentsAllSkippedWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc, repo, recorder := setupTaskServiceTest(t, nil, nil)

	resp, err := svc.ApplyAssignments(ctx, uuid.NewString(), []task.Assignment{
		{TaskID: uuid.NewString(), EmployeeID: uuid.NewString()},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Applied)
	assert.Len(t, resp.Skipped, 1)
	assert.Empty(t, repo.batched)
	assert.Empty(t, recorder.actions)
}
