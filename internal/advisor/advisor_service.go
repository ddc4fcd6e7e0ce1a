package advisor

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"resto-ops/internal/employee"
	"resto-ops/internal/metrics"
	"resto-ops/internal/task"
	"resto-ops/internal/vacation"

	"go.uber.org/zap"
)

// vacationLookahead bounds the absence window sent with the prompt.
const vacationLookahead = 7 * 24 * time.Hour

type Service interface {
	// Suggest asks the text endpoint for a task split over the active
	// crew. A malformed or empty reply yields an empty list, never an
	// error; "no suggestions" is a valid outcome.
	Suggest(ctx context.Context, restaurantID string) ([]task.Assignment, error)
}

type service struct {
	client    Client
	employees employee.Repository
	tasks     task.Repository
	vacations vacation.Service
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewService(
	client Client,
	employeeRepo employee.Repository,
	taskRepo task.Repository,
	vacationService vacation.Service,
	m *metrics.Metrics,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("advisor.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("advisor.service")
	}
	return &service{
		client:    client,
		employees: employeeRepo,
		tasks:     taskRepo,
		vacations: vacationService,
		metrics:   m,
		logger:    l,
	}
}

func (s *service) Suggest(ctx context.Context, restaurantID string) ([]task.Assignment, error) {
	active, err := s.employees.FindByPartition(ctx, restaurantID, employee.PartitionActive)
	if err != nil {
		return nil, err
	}

	allTasks, err := s.tasks.FindAllByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	open := make([]task.Task, 0, len(allTasks))
	for _, t := range allTasks {
		if t.Status != task.StatusDone && t.AssignedTo == nil {
			open = append(open, t)
		}
	}

	if len(active) == 0 || len(open) == 0 {
		return []task.Assignment{}, nil
	}

	now := time.Now().UTC()
	absences, err := s.vacations.ApprovedBetween(ctx, restaurantID, now, now.Add(vacationLookahead))
	if err != nil {
		s.logger.Warn("advisor absence lookup failed, suggesting without it", zap.Error(err))
		absences = nil
	}

	reply, err := s.client.Generate(ctx, buildPrompt(active, open, absences))
	if err != nil {
		s.countCall("client_error")
		s.logger.Warn("advisor call failed", zap.Error(err))
		return []task.Assignment{}, nil
	}

	assignments := parseAssignments(reply)
	if assignments == nil {
		s.countCall("parse_error")
		s.logger.Warn("advisor reply was not parseable",
			zap.Int("reply_len", len(reply)),
		)
		return []task.Assignment{}, nil
	}

	assignments = filterKnown(assignments, open, active)
	if len(assignments) == 0 {
		s.countCall("empty")
	} else {
		s.countCall("ok")
	}

	s.logger.Info("advisor suggestions ready",
		zap.String("restaurant_id", restaurantID),
		zap.Int("count", len(assignments)),
	)
	return assignments, nil
}

type assignmentsEnvelope struct {
	Assignments []task.Assignment `json:"assignments"`
}

// parseAssignments tolerates fenced or chatty replies: it unwraps markdown
// code fences, then parses the outermost JSON object. Returns nil when
// nothing usable is found.
func parseAssignments(reply string) []task.Assignment {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil
	}

	var env assignmentsEnvelope
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &env); err != nil {
		return nil
	}
	if env.Assignments == nil {
		return nil
	}
	return env.Assignments
}

// filterKnown drops assignments naming a task or employee the prompt never
// mentioned; the model is not trusted with ids.
func filterKnown(assignments []task.Assignment, tasks []task.Task, employees []employee.Employee) []task.Assignment {
	taskIDs := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		taskIDs[t.ID.String()] = true
	}
	employeeIDs := make(map[string]bool, len(employees))
	for _, e := range employees {
		employeeIDs[e.ID.String()] = true
	}

	kept := make([]task.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if taskIDs[a.TaskID] && employeeIDs[a.EmployeeID] {
			kept = append(kept, a)
		}
	}
	return kept
}

func (s *service) countCall(outcome string) {
	if s.metrics != nil {
		s.metrics.AdvisorCalls.WithLabelValues(outcome).Inc()
	}
}
