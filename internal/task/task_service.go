package task

import (
	"context"
	"fmt"
	"time"

	"resto-ops/internal/activitylog"
	"resto-ops/internal/employee"
	"resto-ops/internal/shared/contextutil"
	taskerrors "resto-ops/internal/task/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, restaurantID string, req CreateTaskRequest) (TaskResponse, error)
	List(ctx context.Context, restaurantID string) ([]TaskResponse, error)
	GetByID(ctx context.Context, restaurantID, id string) (TaskResponse, error)
	Update(ctx context.Context, restaurantID, id string, req UpdateTaskRequest) (TaskResponse, error)
	Delete(ctx context.Context, restaurantID, id string) error

	// ApplyAssignments binds suggested assignments onto the task list.
	// Assignments naming an unknown task or a non-active employee are
	// skipped, never fatal.
	ApplyAssignments(ctx context.Context, restaurantID string, assignments []Assignment) (ApplyAssignmentsResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	recorder  activitylog.Recorder
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	employeeRepo employee.Repository,
	recorder activitylog.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{
		repo:      repo,
		employees: employeeRepo,
		recorder:  recorder,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, restaurantID string, req CreateTaskRequest) (TaskResponse, error) {
	restaurantUUID, err := uuid.Parse(restaurantID)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidTaskID
	}

	priority := PriorityNormal
	if req.Priority != "" {
		p, ok := ParsePriority(req.Priority)
		if !ok {
			return TaskResponse{}, taskerrors.ErrInvalidPriority
		}
		priority = p
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidDueDate
	}

	t := &Task{
		ID:            uuid.New(),
		RestaurantID:  restaurantUUID,
		Title:         req.Title,
		Description:   req.Description,
		RequiredSkill: req.RequiredSkill,
		Status:        StatusTodo,
		Priority:      priority,
		DueDate:       dueDate,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("create task failed", zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("task created", zap.String("task_id", t.ID.String()))
	return mapToResponse(*t), nil
}

func (s *service) List(ctx context.Context, restaurantID string) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAllByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	res := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		res[i] = mapToResponse(t)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, restaurantID, id string) (TaskResponse, error) {
	t, err := s.repo.FindByID(ctx, restaurantID, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, restaurantID, id string, req UpdateTaskRequest) (TaskResponse, error) {
	status, ok := ParseStatus(req.Status)
	if !ok {
		return TaskResponse{}, taskerrors.ErrInvalidStatus
	}
	priority, ok := ParsePriority(req.Priority)
	if !ok {
		return TaskResponse{}, taskerrors.ErrInvalidPriority
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidDueDate
	}

	t, err := s.repo.FindByID(ctx, restaurantID, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}

	t.Title = req.Title
	t.Description = req.Description
	t.RequiredSkill = req.RequiredSkill
	t.Status = status
	t.Priority = priority
	t.DueDate = dueDate

	if req.AssignedTo == "" {
		t.AssignedTo = nil
		t.AssignmentReason = ""
	} else {
		assignee, err := uuid.Parse(req.AssignedTo)
		if err != nil {
			return TaskResponse{}, taskerrors.ErrUnknownAssignee
		}
		t.AssignedTo = &assignee
	}

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("update task failed", zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, restaurantID, id string) error {
	if err := s.repo.Delete(ctx, restaurantID, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) ApplyAssignments(ctx context.Context, restaurantID string, assignments []Assignment) (ApplyAssignmentsResponse, error) {
	tasks, err := s.repo.FindAllByRestaurant(ctx, restaurantID)
	if err != nil {
		return ApplyAssignmentsResponse{}, err
	}
	active, err := s.employees.FindByPartition(ctx, restaurantID, employee.PartitionActive)
	if err != nil {
		return ApplyAssignmentsResponse{}, err
	}

	taskByID := make(map[string]*Task, len(tasks))
	for i := range tasks {
		taskByID[tasks[i].ID.String()] = &tasks[i]
	}
	activeIDs := make(map[string]bool, len(active))
	for _, e := range active {
		activeIDs[e.ID.String()] = true
	}

	resp := ApplyAssignmentsResponse{Applied: []TaskResponse{}}
	var toPersist []Task

	for _, a := range assignments {
		t, ok := taskByID[a.TaskID]
		if !ok || !activeIDs[a.EmployeeID] {
			s.logger.Warn("assignment skipped",
				zap.String("task_id", a.TaskID),
				zap.String("employee_id", a.EmployeeID),
			)
			resp.Skipped = append(resp.Skipped, a)
			continue
		}

		assignee := uuid.MustParse(a.EmployeeID)
		t.AssignedTo = &assignee
		t.AssignmentReason = a.Reason
		if t.Status == StatusTodo {
			t.Status = StatusInProgress
		}

		toPersist = append(toPersist, *t)
		resp.Applied = append(resp.Applied, mapToResponse(*t))
	}

	if len(toPersist) > 0 {
		if err := s.repo.UpdateBatch(ctx, toPersist); err != nil {
			s.logger.Error("apply assignments persist failed", zap.Error(err))
			return ApplyAssignmentsResponse{}, err
		}

		s.recorder.Record(ctx, restaurantID, contextutil.GetActorName(ctx),
			"Répartition des tâches",
			fmt.Sprintf("%d tâche(s) assignée(s)", len(toPersist)),
			activitylog.CategoryEquipe)
	}

	return resp, nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:               t.ID.String(),
		Title:            t.Title,
		Description:      t.Description,
		RequiredSkill:    t.RequiredSkill,
		Status:           string(t.Status),
		Priority:         string(t.Priority),
		AssignmentReason: t.AssignmentReason,
	}
	if t.AssignedTo != nil {
		resp.AssignedTo = t.AssignedTo.String()
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format("2006-01-02")
	}
	return resp
}
