package vacation

import (
	"context"
	"fmt"
	"time"

	"resto-ops/internal/activitylog"
	"resto-ops/internal/shared/contextutil"
	vacationerrors "resto-ops/internal/vacation/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, restaurantID string, req CreateVacationRequest) (VacationResponse, error)
	List(ctx context.Context, restaurantID string) ([]VacationResponse, error)
	Approve(ctx context.Context, restaurantID, id string) (VacationResponse, error)
	Reject(ctx context.Context, restaurantID, id, reason string) (VacationResponse, error)
	Delete(ctx context.Context, restaurantID, id string) error

	// ApprovedBetween returns employee ids unavailable at any point in the
	// window, for the task advisor.
	ApprovedBetween(ctx context.Context, restaurantID string, from, to time.Time) ([]Vacation, error)
}

type service struct {
	repo     Repository
	recorder activitylog.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder activitylog.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("vacation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacation.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func (s *service) Create(ctx context.Context, restaurantID string, req CreateVacationRequest) (VacationResponse, error) {
	restaurantUUID, err := uuid.Parse(restaurantID)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidVacationID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidVacationID
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidPeriod
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidPeriod
	}
	if endDate.Before(startDate) {
		return VacationResponse{}, vacationerrors.ErrInvalidPeriod
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, restaurantID, req.EmployeeID, startDate, endDate, "")
	if err != nil {
		s.logger.Error("vacation overlap check failed", zap.Error(err))
		return VacationResponse{}, err
	}
	if overlap {
		return VacationResponse{}, vacationerrors.ErrOverlappingPeriod
	}

	v := &Vacation{
		ID:           uuid.New(),
		RestaurantID: restaurantUUID,
		EmployeeID:   employeeUUID,
		StartDate:    startDate,
		EndDate:      endDate,
		Reason:       req.Reason,
		Status:       StatusPending,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		s.logger.Error("create vacation failed", zap.Error(err))
		return VacationResponse{}, err
	}

	s.logger.Info("vacation request created",
		zap.String("vacation_id", v.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*v), nil
}

func (s *service) List(ctx context.Context, restaurantID string) ([]VacationResponse, error) {
	vacations, err := s.repo.FindAllByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	res := make([]VacationResponse, len(vacations))
	for i, v := range vacations {
		res[i] = mapToResponse(v)
	}
	return res, nil
}

func (s *service) Approve(ctx context.Context, restaurantID, id string) (VacationResponse, error) {
	v, err := s.repo.FindByID(ctx, restaurantID, id)
	if err != nil {
		return VacationResponse{}, mapRepositoryError(err)
	}
	if v.Status != StatusPending {
		return VacationResponse{}, vacationerrors.ErrAlreadyDecided
	}

	v.Status = StatusApproved
	if approver, err := uuid.Parse(contextutil.GetUserID(ctx)); err == nil {
		v.ApprovedBy = &approver
	}

	if err := s.repo.Update(ctx, v); err != nil {
		s.logger.Error("approve vacation failed", zap.Error(err))
		return VacationResponse{}, err
	}

	s.recorder.Record(ctx, restaurantID, contextutil.GetActorName(ctx),
		"Congé approuvé",
		fmt.Sprintf("Congé du %s au %s approuvé", v.StartDate.Format("2006-01-02"), v.EndDate.Format("2006-01-02")),
		activitylog.CategoryEquipe)

	return mapToResponse(*v), nil
}

func (s *service) Reject(ctx context.Context, restaurantID, id, reason string) (VacationResponse, error) {
	if reason == "" {
		return VacationResponse{}, vacationerrors.ErrRejectionReasonRequired
	}

	v, err := s.repo.FindByID(ctx, restaurantID, id)
	if err != nil {
		return VacationResponse{}, mapRepositoryError(err)
	}
	if v.Status != StatusPending {
		return VacationResponse{}, vacationerrors.ErrAlreadyDecided
	}

	v.Status = StatusRejected
	v.RejectionReason = reason

	if err := s.repo.Update(ctx, v); err != nil {
		s.logger.Error("reject vacation failed", zap.Error(err))
		return VacationResponse{}, err
	}

	s.recorder.Record(ctx, restaurantID, contextutil.GetActorName(ctx),
		"Congé refusé",
		fmt.Sprintf("Congé du %s au %s refusé : %s", v.StartDate.Format("2006-01-02"), v.EndDate.Format("2006-01-02"), reason),
		activitylog.CategoryEquipe)

	return mapToResponse(*v), nil
}

func (s *service) Delete(ctx context.Context, restaurantID, id string) error {
	if err := s.repo.Delete(ctx, restaurantID, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) ApprovedBetween(ctx context.Context, restaurantID string, from, to time.Time) ([]Vacation, error) {
	return s.repo.FindApprovedOverlapping(ctx, restaurantID, from, to)
}

func mapToResponse(v Vacation) VacationResponse {
	resp := VacationResponse{
		ID:              v.ID.String(),
		EmployeeID:      v.EmployeeID.String(),
		StartDate:       v.StartDate.Format("2006-01-02"),
		EndDate:         v.EndDate.Format("2006-01-02"),
		Reason:          v.Reason,
		Status:          string(v.Status),
		RejectionReason: v.RejectionReason,
	}
	if v.ApprovedBy != nil {
		resp.ApprovedBy = v.ApprovedBy.String()
	}
	return resp
}
