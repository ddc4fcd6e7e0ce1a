package compliance

import (
	"context"
	"encoding/json"
	"time"

	"resto-ops/internal/catalog"
	"resto-ops/internal/employee"
	"resto-ops/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	dashboardKeyPrefix = "compliance:dashboard:"
	dashboardCacheTTL  = 10 * time.Minute
)

func DashboardKey(restaurantID string) string {
	return dashboardKeyPrefix + restaurantID
}

type Service interface {
	Dashboard(ctx context.Context, restaurantID string) (Snapshot, error)
}

type service struct {
	employees employee.Repository
	catalog   catalog.Service
	rdb       *redis.Client
	metrics   *metrics.Metrics
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	employeeRepo employee.Repository,
	catalogService catalog.Service,
	rdb *redis.Client,
	m *metrics.Metrics,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("compliance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compliance.service")
	}
	return &service{
		employees: employeeRepo,
		catalog:   catalogService,
		rdb:       rdb,
		metrics:   m,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

// Dashboard serves the cached snapshot when one exists; otherwise it
// recomputes from the active roster and the catalogs. The cache entry is
// dropped by lifecycle and settings changes, the TTL only bounds staleness
// when an invalidation is missed.
func (s *service) Dashboard(ctx context.Context, restaurantID string) (Snapshot, error) {
	cacheKey := DashboardKey(restaurantID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var snap Snapshot
			if json.Unmarshal([]byte(cached), &snap) == nil {
				return snap, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		active, err := s.employees.FindByPartition(ctx, restaurantID, employee.PartitionActive)
		if err != nil {
			s.logger.Error("compliance roster load failed", zap.Error(err))
			return Snapshot{}, err
		}

		mandatory, err := s.catalog.MandatoryCertConfigs(ctx, restaurantID)
		if err != nil {
			s.logger.Error("compliance cert catalog load failed", zap.Error(err))
			return Snapshot{}, err
		}
		mandatoryNames := make([]string, len(mandatory))
		for i, m := range mandatory {
			mandatoryNames[i] = m.Name
		}

		skills, err := s.catalog.GetSkills(ctx, restaurantID)
		if err != nil {
			s.logger.Error("compliance skill catalog load failed", zap.Error(err))
			return Snapshot{}, err
		}
		skillNames := make([]string, len(skills))
		for i, sk := range skills {
			skillNames[i] = sk.Name
		}

		snap := Evaluate(active, mandatoryNames, skillNames, time.Now().UTC())
		if s.metrics != nil {
			s.metrics.ComplianceEvals.Inc()
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(snap); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, dashboardCacheTTL)
			}
		}

		s.logger.Debug("compliance snapshot computed",
			zap.String("restaurant_id", restaurantID),
			zap.Int("employees", snap.EmployeeCount),
			zap.Int("global", snap.GlobalCompliance),
		)
		return snap, nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	return v.(Snapshot), nil
}
