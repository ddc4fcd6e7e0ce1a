package catalog

import (
	"context"
	"encoding/json"
	"time"

	"resto-ops/internal/activitylog"
	catalogerrors "resto-ops/internal/catalog/errors"
	"resto-ops/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	skillsKeyPrefix        = "catalog:skills:"
	certConfigsKeyPrefix   = "catalog:certs:"
	contractTypesKeyPrefix = "catalog:contract-types:"

	cacheTTL = time.Hour
)

func SkillsKey(restaurantID string) string        { return skillsKeyPrefix + restaurantID }
func CertConfigsKey(restaurantID string) string   { return certConfigsKeyPrefix + restaurantID }
func ContractTypesKey(restaurantID string) string { return contractTypesKeyPrefix + restaurantID }

//go:generate mockgen -source=catalog_service.go -destination=mock/catalog_service_mock.go -package=mock
type Service interface {
	GetSkills(ctx context.Context, restaurantID string) ([]SkillResponse, error)
	ReplaceSkills(ctx context.Context, restaurantID string, req ReplaceSkillsRequest) ([]SkillResponse, error)
	GetCertConfigs(ctx context.Context, restaurantID string) ([]CertConfigResponse, error)
	MandatoryCertConfigs(ctx context.Context, restaurantID string) ([]CertConfigResponse, error)
	ReplaceCertConfigs(ctx context.Context, restaurantID string, req ReplaceCertConfigsRequest) ([]CertConfigResponse, error)
	GetContractTypes(ctx context.Context, restaurantID string) ([]ContractTypeResponse, error)
	ReplaceContractTypes(ctx context.Context, restaurantID string, req ReplaceContractTypesRequest) ([]ContractTypeResponse, error)
}

// DependentKey derives a cache key that must also be dropped when the skill
// or cert catalog is replaced. The compliance dashboard registers its
// snapshot key this way, since its numbers are computed from both catalogs.
type DependentKey func(restaurantID string) string

type service struct {
	repo       Repository
	rdb        *redis.Client
	recorder   activitylog.Recorder
	dependents []DependentKey
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, recorder activitylog.Recorder, dependents []DependentKey, logger ...*zap.Logger) Service {
	l := zap.L().Named("catalog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("catalog.service")
	}
	return &service{
		repo:       repo,
		rdb:        rdb,
		recorder:   recorder,
		dependents: dependents,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func (s *service) GetSkills(ctx context.Context, restaurantID string) ([]SkillResponse, error) {
	return cachedList(ctx, s, SkillsKey(restaurantID), func() ([]SkillResponse, error) {
		skills, err := s.repo.FindSkills(ctx, restaurantID)
		if err != nil {
			return nil, err
		}
		return mapSkills(skills), nil
	})
}

func (s *service) ReplaceSkills(ctx context.Context, restaurantID string, req ReplaceSkillsRequest) ([]SkillResponse, error) {
	rid, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, catalogerrors.ErrInvalidRestaurantID
	}
	if hasDuplicates(req.Skills) {
		return nil, catalogerrors.ErrDuplicateCatalogName
	}

	skills := make([]SkillDefinition, 0, len(req.Skills))
	for _, name := range req.Skills {
		skills = append(skills, SkillDefinition{
			ID:           uuid.New(),
			RestaurantID: rid,
			Name:         name,
		})
	}

	if err := s.repo.ReplaceSkills(ctx, restaurantID, skills); err != nil {
		s.logger.Error("replace skill catalog failed", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, SkillsKey(restaurantID))
	s.invalidateDependents(ctx, restaurantID)
	s.recorder.Record(ctx, restaurantID, contextutil.GetActorName(ctx),
		"Mise à jour du catalogue de compétences",
		"Catalogue remplacé", activitylog.CategorySystem)

	return mapSkills(skills), nil
}

func (s *service) GetCertConfigs(ctx context.Context, restaurantID string) ([]CertConfigResponse, error) {
	return cachedList(ctx, s, CertConfigsKey(restaurantID), func() ([]CertConfigResponse, error) {
		configs, err := s.repo.FindCertConfigs(ctx, restaurantID)
		if err != nil {
			return nil, err
		}
		return mapCertConfigs(configs), nil
	})
}

// MandatoryCertConfigs is what compliance and new-hire seeding consume.
func (s *service) MandatoryCertConfigs(ctx context.Context, restaurantID string) ([]CertConfigResponse, error) {
	configs, err := s.GetCertConfigs(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	mandatory := make([]CertConfigResponse, 0, len(configs))
	for _, c := range configs {
		if c.IsMandatory {
			mandatory = append(mandatory, c)
		}
	}
	return mandatory, nil
}

func (s *service) ReplaceCertConfigs(ctx context.Context, restaurantID string, req ReplaceCertConfigsRequest) ([]CertConfigResponse, error) {
	rid, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, catalogerrors.ErrInvalidRestaurantID
	}

	names := make([]string, 0, len(req.Certs))
	configs := make([]CertConfig, 0, len(req.Certs))
	for _, c := range req.Certs {
		if c.ValidityMonths < 0 {
			return nil, catalogerrors.ErrInvalidValidity
		}
		names = append(names, c.Name)
		configs = append(configs, CertConfig{
			ID:             uuid.New(),
			RestaurantID:   rid,
			Name:           c.Name,
			IsMandatory:    c.IsMandatory,
			ValidityMonths: c.ValidityMonths,
			TemplateURL:    c.TemplateURL,
		})
	}
	if hasDuplicates(names) {
		return nil, catalogerrors.ErrDuplicateCatalogName
	}

	if err := s.repo.ReplaceCertConfigs(ctx, restaurantID, configs); err != nil {
		s.logger.Error("replace cert catalog failed", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, CertConfigsKey(restaurantID))
	s.invalidateDependents(ctx, restaurantID)
	s.recorder.Record(ctx, restaurantID, contextutil.GetActorName(ctx),
		"Mise à jour du catalogue de certifications",
		"Catalogue remplacé", activitylog.CategorySystem)

	return mapCertConfigs(configs), nil
}

func (s *service) GetContractTypes(ctx context.Context, restaurantID string) ([]ContractTypeResponse, error) {
	return cachedList(ctx, s, ContractTypesKey(restaurantID), func() ([]ContractTypeResponse, error) {
		types, err := s.repo.FindContractTypes(ctx, restaurantID)
		if err != nil {
			return nil, err
		}
		return mapContractTypes(types), nil
	})
}

func (s *service) ReplaceContractTypes(ctx context.Context, restaurantID string, req ReplaceContractTypesRequest) ([]ContractTypeResponse, error) {
	rid, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, catalogerrors.ErrInvalidRestaurantID
	}
	if hasDuplicates(req.ContractTypes) {
		return nil, catalogerrors.ErrDuplicateCatalogName
	}

	types := make([]ContractType, 0, len(req.ContractTypes))
	for _, name := range req.ContractTypes {
		types = append(types, ContractType{
			ID:           uuid.New(),
			RestaurantID: rid,
			Name:         name,
		})
	}

	if err := s.repo.ReplaceContractTypes(ctx, restaurantID, types); err != nil {
		s.logger.Error("replace contract types failed", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, ContractTypesKey(restaurantID))
	s.recorder.Record(ctx, restaurantID, contextutil.GetActorName(ctx),
		"Mise à jour des types de contrat",
		"Catalogue remplacé", activitylog.CategorySystem)

	return mapContractTypes(types), nil
}

// cachedList tries Redis, then falls back to the loader behind a
// singleflight so a cold key triggers one database read, not one per caller.
func cachedList[T any](ctx context.Context, s *service, key string, load func() ([]T, error)) ([]T, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp []T
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		resp, err := load()
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, key, jsonData, cacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]T), nil
}

// invalidateDependents drops every registered dependent key, so derived
// views (the compliance snapshot) recompute on their next read instead of
// serving pre-change numbers until their TTL runs out.
func (s *service) invalidateDependents(ctx context.Context, restaurantID string) {
	for _, key := range s.dependents {
		s.invalidate(ctx, key(restaurantID))
	}
}

func (s *service) invalidate(ctx context.Context, key string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Error("failed to invalidate catalog cache",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func hasDuplicates(names []string) bool {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return true
		}
		seen[n] = struct{}{}
	}
	return false
}

func mapSkills(skills []SkillDefinition) []SkillResponse {
	res := make([]SkillResponse, len(skills))
	for i, sk := range skills {
		res[i] = SkillResponse{ID: sk.ID.String(), Name: sk.Name}
	}
	return res
}

func mapCertConfigs(configs []CertConfig) []CertConfigResponse {
	res := make([]CertConfigResponse, len(configs))
	for i, c := range configs {
		res[i] = CertConfigResponse{
			ID:             c.ID.String(),
			Name:           c.Name,
			IsMandatory:    c.IsMandatory,
			ValidityMonths: c.ValidityMonths,
			TemplateURL:    c.TemplateURL,
		}
	}
	return res
}

func mapContractTypes(types []ContractType) []ContractTypeResponse {
	res := make([]ContractTypeResponse, len(types))
	for i, t := range types {
		res[i] = ContractTypeResponse{ID: t.ID.String(), Name: t.Name}
	}
	return res
}
