package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"resto-ops/internal/activitylog"
	"resto-ops/internal/catalog"
	employeeerrors "resto-ops/internal/employee/errors"
	"resto-ops/internal/events"
	"resto-ops/internal/messaging/kafka"
	"resto-ops/internal/metrics"
	"resto-ops/internal/shared/contextutil"
	"resto-ops/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const rosterOptionsKeyPrefix = "employees:options:"

func RosterOptionsKey(restaurantID string) string {
	return rosterOptionsKeyPrefix + restaurantID
}

// notPersistedWarning is attached to a transition result when the roster
// move was applied but the backing store did not confirm the write. The
// caller decides whether to retry or reconcile; nothing is rolled back.
const notPersistedWarning = "change applied but not confirmed by the store, reload to reconcile"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, restaurantID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetRoster(ctx context.Context, restaurantID string) (RosterResponse, error)
	GetOptions(ctx context.Context, restaurantID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, restaurantID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, restaurantID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)

	Archive(ctx context.Context, restaurantID, id, reason string) (TransitionResult, error)
	Trash(ctx context.Context, restaurantID, id string) (TransitionResult, error)
	RestoreFromTrash(ctx context.Context, restaurantID, id string) (TransitionResult, error)
	RestoreFromArchive(ctx context.Context, restaurantID, id string) (TransitionResult, error)
	Purge(ctx context.Context, restaurantID, id string) (TransitionResult, error)
	UpdateArchiveReason(ctx context.Context, restaurantID, id, reason string) (TransitionResult, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	recorder activitylog.Recorder
	catalog  catalog.Service
	metrics  *metrics.Metrics
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	recorder activitylog.Recorder,
	catalogService catalog.Service,
	m *metrics.Metrics,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counterRepo,
		outbox:   outboxRepo,
		rdb:      rdb,
		recorder: recorder,
		catalog:  catalogService,
		metrics:  m,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, restaurantID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("restaurant_id", restaurantID),
		zap.String("email", req.Email),
	)

	restaurantUUID, err := uuid.Parse(restaurantID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	role, ok := ParseRole(req.Role)
	if !ok {
		s.logger.Warn("create employee unknown role", zap.String("role", req.Role))
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}

	entryDate, err := parseOptionalDate(req.EntryDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}
	contractEnd, err := parseOptionalDate(req.ContractEndDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}

	skills, err := parseSkills(req.Skills)
	if err != nil {
		return EmployeeResponse{}, err
	}

	nextVal, err := s.counter.GetNextValue(ctx, restaurantID, "employee_number")
	if err != nil {
		s.logger.Error("create employee generate number failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	certs, err := s.seedMandatoryCerts(ctx, restaurantID)
	if err != nil {
		s.logger.Error("create employee seed certs failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:              uuid.New(),
		RestaurantID:    restaurantUUID,
		EmployeeNumber:  fmt.Sprintf("EMP-%06d", nextVal),
		Name:            req.Name,
		Email:           req.Email,
		Role:            role,
		Department:      req.Department,
		Phone:           req.Phone,
		ContractType:    req.ContractType,
		EntryDate:       entryDate,
		ContractEndDate: contractEnd,
		Skills:          skills,
		Certs:           certs,
		Availability:    mapAvailability(req.Availability),
		Version:         1,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, empl, events.EmployeeCreated); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, restaurantID)
	s.recorder.Record(ctx, restaurantID, contextutil.GetActorName(ctx),
		"Nouvel employé",
		fmt.Sprintf("%s (%s) ajouté à l'équipe", empl.Name, empl.EmployeeNumber),
		activitylog.CategoryEquipe)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

// GetRoster loads the three partitions and runs the contract-expiry sweep
// before answering, so an expired contract can never be observed in the
// active list.
func (s *service) GetRoster(ctx context.Context, restaurantID string) (RosterResponse, error) {
	s.logger.Debug("get roster requested", zap.String("restaurant_id", restaurantID))

	all, err := s.repo.FindAllByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.Error("get roster failed", zap.Error(err))
		return RosterResponse{}, mapRepositoryError(err)
	}

	roster := BuildRoster(all)
	s.sweep(ctx, restaurantID, &roster)

	return RosterResponse{
		Active:   mapToListResponse(roster.Active),
		Archived: mapToListResponse(roster.Archived),
		Trashed:  mapToListResponse(roster.Trashed),
	}, nil
}

// sweep archives every active employee whose contract has lapsed. The
// in-memory roster is always swept; persistence failures are logged and the
// rows retried on the next load, which is safe because the sweep is
// idempotent over partition membership.
func (s *service) sweep(ctx context.Context, restaurantID string, roster *Roster) {
	expired := roster.SweepExpiredContracts(time.Now().UTC())
	if len(expired) == 0 {
		return
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Warn("sweep begin tx failed", zap.Error(err))
	} else {
		defer tx.Rollback()
		qtx := s.repo.WithTx(tx)
		persistErr := error(nil)
		for i := range expired {
			if err := qtx.Update(ctx, &expired[i]); err != nil {
				persistErr = err
				break
			}
			if err := s.enqueueLifecycleEvent(ctx, tx, &expired[i], events.EmployeeArchived); err != nil {
				persistErr = err
				break
			}
		}
		if persistErr == nil {
			persistErr = tx.Commit()
		}
		if persistErr != nil {
			s.logger.Warn("sweep not persisted, will retry on next load", zap.Error(persistErr))
		}
	}

	for _, e := range expired {
		s.recorder.Record(ctx, restaurantID, "",
			"Archivage automatique",
			fmt.Sprintf("%s archivé : contrat expiré le %s", e.Name, e.ContractEndDate.Format("2006-01-02")),
			activitylog.CategoryEquipe)
	}

	if s.metrics != nil {
		s.metrics.SweepArchived.Add(float64(len(expired)))
		s.metrics.LifecycleTransitions.WithLabelValues("sweep").Add(float64(len(expired)))
	}
	s.invalidateOptionsCache(ctx, restaurantID)

	s.logger.Info("contract-expiry sweep archived employees",
		zap.String("restaurant_id", restaurantID),
		zap.Int("count", len(expired)),
	)
}

func (s *service) GetOptions(ctx context.Context, restaurantID string) ([]EmployeeResponse, error) {
	cacheKey := RosterOptionsKey(restaurantID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		active, err := s.repo.FindByPartition(ctx, restaurantID, PartitionActive)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(active)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, restaurantID, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, restaurantID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

// Update rewrites the profile fields. Partition flags are not touched here;
// lifecycle moves go through the transition methods. The request version
// must match the stored record or the write is rejected with a conflict.
func (s *service) Update(ctx context.Context, restaurantID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("restaurant_id", restaurantID),
		zap.String("employee_id", id),
	)

	role, ok := ParseRole(req.Role)
	if !ok {
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}
	entryDate, err := parseOptionalDate(req.EntryDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}
	contractEnd, err := parseOptionalDate(req.ContractEndDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}
	skills, err := parseSkills(req.Skills)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByID(ctx, restaurantID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Name = req.Name
	empl.Email = req.Email
	empl.Role = role
	empl.Department = req.Department
	empl.Phone = req.Phone
	empl.ContractType = req.ContractType
	empl.EntryDate = entryDate
	empl.ContractEndDate = contractEnd
	empl.Skills = skills
	empl.Availability = mapAvailability(req.Availability)
	empl.Version = req.Version

	if err := s.repo.Update(ctx, empl); err != nil {
		s.logger.Warn("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx, restaurantID)
	s.recorder.Record(ctx, restaurantID, contextutil.GetActorName(ctx),
		"Modification d'un employé",
		fmt.Sprintf("Fiche de %s mise à jour", empl.Name),
		activitylog.CategoryEquipe)

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Archive(ctx context.Context, restaurantID, id, reason string) (TransitionResult, error) {
	return s.transition(ctx, restaurantID, id, "archive", events.EmployeeArchived,
		func(r *Roster, eid uuid.UUID) (Employee, error) {
			return r.Archive(eid, reason, time.Now().UTC())
		},
		func(e Employee) (string, string) {
			return "Archivage d'un employé", fmt.Sprintf("%s archivé : %s", e.Name, reason)
		},
	)
}

func (s *service) Trash(ctx context.Context, restaurantID, id string) (TransitionResult, error) {
	return s.transition(ctx, restaurantID, id, "trash", events.EmployeeTrashed,
		func(r *Roster, eid uuid.UUID) (Employee, error) {
			return r.Trash(eid, time.Now().UTC())
		},
		func(e Employee) (string, string) {
			return "Mise à la corbeille", fmt.Sprintf("%s déplacé vers la corbeille", e.Name)
		},
	)
}

func (s *service) RestoreFromTrash(ctx context.Context, restaurantID, id string) (TransitionResult, error) {
	return s.transition(ctx, restaurantID, id, "restore", events.EmployeeRestored,
		func(r *Roster, eid uuid.UUID) (Employee, error) {
			return r.RestoreFromTrash(eid)
		},
		func(e Employee) (string, string) {
			return "Restauration depuis la corbeille", fmt.Sprintf("%s restauré dans l'équipe", e.Name)
		},
	)
}

func (s *service) RestoreFromArchive(ctx context.Context, restaurantID, id string) (TransitionResult, error) {
	return s.transition(ctx, restaurantID, id, "restore", events.EmployeeRestored,
		func(r *Roster, eid uuid.UUID) (Employee, error) {
			return r.RestoreFromArchive(eid)
		},
		func(e Employee) (string, string) {
			return "Réintégration", fmt.Sprintf("%s réintégré, contrat à durée indéterminée", e.Name)
		},
	)
}

func (s *service) UpdateArchiveReason(ctx context.Context, restaurantID, id, reason string) (TransitionResult, error) {
	return s.transition(ctx, restaurantID, id, "reason_update", "",
		func(r *Roster, eid uuid.UUID) (Employee, error) {
			return r.UpdateArchiveReason(eid, reason)
		},
		func(e Employee) (string, string) {
			return "Motif d'archivage modifié", fmt.Sprintf("Motif de %s : %s", e.Name, reason)
		},
	)
}

// Purge removes a trashed employee for good: exactly one hard delete
// against the store, and the id stops resolving in every partition.
func (s *service) Purge(ctx context.Context, restaurantID, id string) (TransitionResult, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return TransitionResult{}, employeeerrors.ErrInvalidEmployeeID
	}

	all, err := s.repo.FindAllByRestaurant(ctx, restaurantID)
	if err != nil {
		return TransitionResult{}, mapRepositoryError(err)
	}
	roster := BuildRoster(all)

	e, err := roster.Purge(eid)
	if err != nil {
		return TransitionResult{}, err
	}

	persisted := true
	warning := ""

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		persisted, warning = false, notPersistedWarning
		s.logger.Warn("purge begin tx failed", zap.Error(err))
	} else {
		defer tx.Rollback()
		qtx := s.repo.WithTx(tx)
		persistErr := qtx.HardDelete(ctx, restaurantID, id)
		if persistErr == nil {
			persistErr = s.enqueueLifecycleEvent(ctx, tx, &e, events.EmployeePurged)
		}
		if persistErr == nil {
			persistErr = tx.Commit()
		}
		if persistErr != nil {
			persisted, warning = false, notPersistedWarning
			s.logger.Warn("purge not persisted", zap.Error(persistErr))
		}
	}

	s.recorder.Record(ctx, restaurantID, contextutil.GetActorName(ctx),
		"Suppression définitive",
		fmt.Sprintf("%s supprimé définitivement", e.Name),
		activitylog.CategoryEquipe)

	if s.metrics != nil {
		s.metrics.LifecycleTransitions.WithLabelValues("purge").Inc()
	}
	s.invalidateOptionsCache(ctx, restaurantID)

	return TransitionResult{Employee: mapToResponse(e), Persisted: persisted, Warning: warning}, nil
}

// transition runs one roster move end to end: load, mutate in memory,
// persist optimistically, log, count. Validation failures come back as an
// error with nothing mutated; persistence failures come back as a success
// with Persisted=false.
func (s *service) transition(
	ctx context.Context,
	restaurantID, id, kind, eventType string,
	apply func(*Roster, uuid.UUID) (Employee, error),
	describe func(Employee) (action, details string),
) (TransitionResult, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return TransitionResult{}, employeeerrors.ErrInvalidEmployeeID
	}

	all, err := s.repo.FindAllByRestaurant(ctx, restaurantID)
	if err != nil {
		return TransitionResult{}, mapRepositoryError(err)
	}
	roster := BuildRoster(all)

	e, err := apply(&roster, eid)
	if err != nil {
		return TransitionResult{}, err
	}

	persisted := true
	warning := ""

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		persisted, warning = false, notPersistedWarning
		s.logger.Warn("transition begin tx failed", zap.String("kind", kind), zap.Error(err))
	} else {
		defer tx.Rollback()
		qtx := s.repo.WithTx(tx)
		persistErr := qtx.Update(ctx, &e)
		if persistErr == nil && eventType != "" {
			persistErr = s.enqueueLifecycleEvent(ctx, tx, &e, eventType)
		}
		if persistErr == nil {
			persistErr = tx.Commit()
		}
		if persistErr != nil {
			persisted, warning = false, notPersistedWarning
			s.logger.Warn("transition not persisted",
				zap.String("kind", kind),
				zap.String("employee_id", id),
				zap.Error(persistErr),
			)
		}
	}

	action, details := describe(e)
	s.recorder.Record(ctx, restaurantID, contextutil.GetActorName(ctx),
		action, details, activitylog.CategoryEquipe)

	if s.metrics != nil {
		s.metrics.LifecycleTransitions.WithLabelValues(kind).Inc()
	}
	s.invalidateOptionsCache(ctx, restaurantID)

	s.logger.Info("lifecycle transition applied",
		zap.String("kind", kind),
		zap.String("employee_id", id),
		zap.Bool("persisted", persisted),
	)

	return TransitionResult{Employee: mapToResponse(e), Persisted: persisted, Warning: warning}, nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *sql.Tx, e *Employee, eventType string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.EmployeeLifecycleEvent{
		EventType:    eventType,
		RequestID:    rid,
		EmployeeID:   e.ID.String(),
		RestaurantID: e.RestaurantID.String(),
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   e.RestaurantID.String(),
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

// seedMandatoryCerts gives a new hire one À-faire cert per mandatory
// catalog entry so the compliance dashboard flags them immediately.
func (s *service) seedMandatoryCerts(ctx context.Context, restaurantID string) ([]EmployeeCert, error) {
	if s.catalog == nil {
		return nil, nil
	}

	mandatory, err := s.catalog.MandatoryCertConfigs(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	certs := make([]EmployeeCert, 0, len(mandatory))
	for _, m := range mandatory {
		certs = append(certs, EmployeeCert{
			Name:   m.Name,
			Status: CertTodo,
		})
	}
	return certs, nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, restaurantID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := RosterOptionsKey(restaurantID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate roster options cache",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
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

func parseSkills(inputs []SkillInput) ([]Skill, error) {
	skills := make([]Skill, 0, len(inputs))
	for _, in := range inputs {
		level, ok := ParseSkillLevel(in.Level)
		if !ok {
			return nil, employeeerrors.ErrInvalidSkillLevel
		}
		skills = append(skills, Skill{Name: in.Name, Level: level})
	}
	return skills, nil
}

func mapAvailability(inputs []DayAvailabilityInput) []DayAvailability {
	avail := make([]DayAvailability, 0, len(inputs))
	for _, in := range inputs {
		avail = append(avail, DayAvailability{
			Weekday:   time.Weekday(in.Weekday),
			Start:     in.Start,
			End:       in.End,
			Available: in.Available,
		})
	}
	return avail
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              e.ID.String(),
		RestaurantID:    e.RestaurantID.String(),
		EmployeeNumber:  e.EmployeeNumber,
		Name:            e.Name,
		Email:           e.Email,
		Role:            string(e.Role),
		Department:      e.Department,
		Phone:           e.Phone,
		ContractType:    e.ContractType,
		EntryDate:       formatOptionalDate(e.EntryDate),
		ContractEndDate: formatOptionalDate(e.ContractEndDate),
		Skills:          e.Skills,
		Certs:           e.Certs,
		Availability:    e.Availability,
		Partition:       string(e.Partition()),
		ArchivedDate:    formatOptionalDate(e.ArchivedDate),
		ArchivedReason:  e.ArchivedReason,
		DeletedDate:     formatOptionalDate(e.DeletedDate),
		Version:         e.Version,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
