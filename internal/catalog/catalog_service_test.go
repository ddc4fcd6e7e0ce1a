package catalog_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"resto-ops/internal/activitylog"
	"resto-ops/internal/catalog"
	catalogerrors "resto-ops/internal/catalog/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeCatalogRepository struct {
	findSkillsFn       func(ctx context.Context, restaurantID string) ([]catalog.SkillDefinition, error)
	replaceSkillsFn    func(ctx context.Context, restaurantID string, skills []catalog.SkillDefinition) error
	findCertsFn        func(ctx context.Context, restaurantID string) ([]catalog.CertConfig, error)
	replaceCertsFn     func(ctx context.Context, restaurantID string, configs []catalog.CertConfig) error
	findContractsFn    func(ctx context.Context, restaurantID string) ([]catalog.ContractType, error)
	replaceContractsFn func(ctx context.Context, restaurantID string, types []catalog.ContractType) error
}

func (f *fakeCatalogRepository) FindSkills(ctx context.Context, restaurantID string) ([]catalog.SkillDefinition, error) {
	return f.findSkillsFn(ctx, restaurantID)
}
func (f *fakeCatalogRepository) ReplaceSkills(ctx context.Context, restaurantID string, skills []catalog.SkillDefinition) error {
	return f.replaceSkillsFn(ctx, restaurantID, skills)
}
func (f *fakeCatalogRepository) FindCertConfigs(ctx context.Context, restaurantID string) ([]catalog.CertConfig, error) {
	return f.findCertsFn(ctx, restaurantID)
}
func (f *fakeCatalogRepository) ReplaceCertConfigs(ctx context.Context, restaurantID string, configs []catalog.CertConfig) error {
	return f.replaceCertsFn(ctx, restaurantID, configs)
}
func (f *fakeCatalogRepository) FindContractTypes(ctx context.Context, restaurantID string) ([]catalog.ContractType, error) {
	return f.findContractsFn(ctx, restaurantID)
}
func (f *fakeCatalogRepository) ReplaceContractTypes(ctx context.Context, restaurantID string, types []catalog.ContractType) error {
	return f.replaceContractsFn(ctx, restaurantID, types)
}

type nopCatalogRecorder struct{}

func (nopCatalogRecorder) Record(ctx context.Context, restaurantID, actorName, action, details string, category activitylog.Category) activitylog.Entry {
	return activitylog.Entry{}
}

func dashboardKeyStub(restaurantID string) string {
	return "compliance:dashboard:" + restaurantID
}

func TestGetSkills_CacheHitSkipsRepository(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	restaurantID := uuid.NewString()

	cached := []catalog.SkillResponse{{ID: uuid.NewString(), Name: "Grill"}}
	jsonData, err := json.Marshal(cached)
	require.NoError(t, err)
	redisMock.ExpectGet(catalog.SkillsKey(restaurantID)).SetVal(string(jsonData))

	repo := &fakeCatalogRepository{
		findSkillsFn: func(ctx context.Context, restaurantID string) ([]catalog.SkillDefinition, error) {
			t.Fatal("repository should not be hit on a cache hit")
			return nil, nil
		},
	}

	svc := catalog.NewService(repo, rdb, nopCatalogRecorder{}, nil)
	skills, err := svc.GetSkills(context.Background(), restaurantID)

	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Grill", skills[0].Name)
}

func TestGetSkills_CacheMissLoadsAndStores(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	restaurantID := uuid.NewString()

	redisMock.ExpectGet(catalog.SkillsKey(restaurantID)).RedisNil()
	redisMock.ExpectSet(catalog.SkillsKey(restaurantID), gomock.Any(), time.Hour).SetVal("OK")

	repo := &fakeCatalogRepository{
		findSkillsFn: func(ctx context.Context, restaurantID string) ([]catalog.SkillDefinition, error) {
			return []catalog.SkillDefinition{{ID: uuid.New(), Name: "Caisse"}}, nil
		},
	}

	svc := catalog.NewService(repo, rdb, nopCatalogRecorder{}, nil)
	skills, err := svc.GetSkills(context.Background(), restaurantID)

	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Caisse", skills[0].Name)
}

func TestReplaceCertConfigs_DropsOwnAndDependentKeys(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	restaurantID := uuid.NewString()

	redisMock.ExpectDel(catalog.CertConfigsKey(restaurantID)).SetVal(1)
	redisMock.ExpectDel(dashboardKeyStub(restaurantID)).SetVal(1)

	repo := &fakeCatalogRepository{
		replaceCertsFn: func(ctx context.Context, restaurantID string, configs []catalog.CertConfig) error {
			return nil
		},
	}

	svc := catalog.NewService(repo, rdb, nopCatalogRecorder{},
		[]catalog.DependentKey{dashboardKeyStub})
	_, err := svc.ReplaceCertConfigs(context.Background(), restaurantID, catalog.ReplaceCertConfigsRequest{
		Certs: []catalog.CertConfigInput{{Name: "Hygiène", IsMandatory: true, ValidityMonths: 12}},
	})

	require.NoError(t, err)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestReplaceSkills_DropsDependentKeys(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	restaurantID := uuid.NewString()

	redisMock.ExpectDel(catalog.SkillsKey(restaurantID)).SetVal(1)
	redisMock.ExpectDel(dashboardKeyStub(restaurantID)).SetVal(1)

	repo := &fakeCatalogRepository{
		replaceSkillsFn: func(ctx context.Context, restaurantID string, skills []catalog.SkillDefinition) error {
			return nil
		},
	}

	svc := catalog.NewService(repo, rdb, nopCatalogRecorder{},
		[]catalog.DependentKey{dashboardKeyStub})
	_, err := svc.ReplaceSkills(context.Background(), restaurantID, catalog.ReplaceSkillsRequest{
		Skills: []string{"Grill", "Caisse"},
	})

	require.NoError(t, err)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestReplaceSkills_RejectsDuplicateNames(t *testing.T) {
	repo := &fakeCatalogRepository{
		replaceSkillsFn: func(ctx context.Context, restaurantID string, skills []catalog.SkillDefinition) error {
			t.Fatal("repository should not be hit when validation fails")
			return nil
		},
	}

	svc := catalog.NewService(repo, nil, nopCatalogRecorder{}, nil)
	_, err := svc.ReplaceSkills(context.Background(), uuid.NewString(), catalog.ReplaceSkillsRequest{
		Skills: []string{"Grill", "Grill"},
	})

	assert.ErrorIs(t, err, catalogerrors.ErrDuplicateCatalogName)
}

func TestReplaceCertConfigs_RejectsNegativeValidity(t *testing.T) {
	svc := catalog.NewService(&fakeCatalogRepository{}, nil, nopCatalogRecorder{}, nil)
	_, err := svc.ReplaceCertConfigs(context.Background(), uuid.NewString(), catalog.ReplaceCertConfigsRequest{
		Certs: []catalog.CertConfigInput{{Name: "Sécurité", ValidityMonths: -1}},
	})

	assert.ErrorIs(t, err, catalogerrors.ErrInvalidValidity)
}

func TestMandatoryCertConfigs_FiltersMandatoryOnly(t *testing.T) {
	repo := &fakeCatalogRepository{
		findCertsFn: func(ctx context.Context, restaurantID string) ([]catalog.CertConfig, error) {
			return []catalog.CertConfig{
				{ID: uuid.New(), Name: "Hygiène", IsMandatory: true},
				{ID: uuid.New(), Name: "Latte Art", IsMandatory: false},
			}, nil
		},
	}

	svc := catalog.NewService(repo, nil, nopCatalogRecorder{}, nil)
	mandatory, err := svc.MandatoryCertConfigs(context.Background(), uuid.NewString())

	require.NoError(t, err)
	require.Len(t, mandatory, 1)
	assert.Equal(t, "Hygiène", mandatory[0].Name)
}
