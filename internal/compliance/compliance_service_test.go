package compliance_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"resto-ops/internal/catalog"
	"resto-ops/internal/compliance"
	"resto-ops/internal/employee"
	"resto-ops/internal/employee/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeCatalogService struct {
	mandatoryCerts []catalog.CertConfigResponse
	skills         []catalog.SkillResponse
}

func (f *fakeCatalogService) GetSkills(ctx context.Context, restaurantID string) ([]catalog.SkillResponse, error) {
	return f.skills, nil
}
func (f *fakeCatalogService) ReplaceSkills(ctx context.Context, restaurantID string, req catalog.ReplaceSkillsRequest) ([]catalog.SkillResponse, error) {
	return nil, nil
}
func (f *fakeCatalogService) GetCertConfigs(ctx context.Context, restaurantID string) ([]catalog.CertConfigResponse, error) {
	return f.mandatoryCerts, nil
}
func (f *fakeCatalogService) MandatoryCertConfigs(ctx context.Context, restaurantID string) ([]catalog.CertConfigResponse, error) {
	return f.mandatoryCerts, nil
}
func (f *fakeCatalogService) ReplaceCertConfigs(ctx context.Context, restaurantID string, req catalog.ReplaceCertConfigsRequest) ([]catalog.CertConfigResponse, error) {
	return nil, nil
}
func (f *fakeCatalogService) GetContractTypes(ctx context.Context, restaurantID string) ([]catalog.ContractTypeResponse, error) {
	return nil, nil
}
func (f *fakeCatalogService) ReplaceContractTypes(ctx context.Context, restaurantID string, req catalog.ReplaceContractTypesRequest) ([]catalog.ContractTypeResponse, error) {
	return nil, nil
}

func TestDashboard_ServesCachedSnapshotWithoutRecomputing(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	rdb, redisMock := redismock.NewClientMock()

	restaurantID := uuid.NewString()
	cached := compliance.Snapshot{
		CertComplianceRate:  80,
		SkillComplianceRate: 60,
		GlobalCompliance:    70,
		EmployeeCount:       5,
	}
	jsonData, err := json.Marshal(cached)
	require.NoError(t, err)

	redisMock.ExpectGet(compliance.DashboardKey(restaurantID)).SetVal(string(jsonData))

	svc := compliance.NewService(repo, &fakeCatalogService{}, rdb, nil)
	snap, err := svc.Dashboard(context.Background(), restaurantID)

	require.NoError(t, err)
	assert.Equal(t, 70, snap.GlobalCompliance)
	assert.Equal(t, 5, snap.EmployeeCount)
}

func TestDashboard_CacheMissComputesAndStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	rdb, redisMock := redismock.NewClientMock()

	restaurantID := uuid.NewString()
	crew := []employee.Employee{
		{
			ID:           uuid.New(),
			RestaurantID: uuid.MustParse(restaurantID),
			Name:         "Nora",
			Certs:        []employee.EmployeeCert{},
			Skills:       []employee.Skill{{Name: "Grill", Level: employee.LevelExpert}},
		},
	}

	redisMock.ExpectGet(compliance.DashboardKey(restaurantID)).RedisNil()
	redisMock.ExpectSet(compliance.DashboardKey(restaurantID), gomock.Any(), 10*time.Minute).SetVal("OK")
	repo.EXPECT().
		FindByPartition(gomock.Any(), restaurantID, employee.PartitionActive).
		Return(crew, nil).
		Times(1)

	cat := &fakeCatalogService{
		mandatoryCerts: []catalog.CertConfigResponse{{Name: "Hygiène", IsMandatory: true}},
		skills:         []catalog.SkillResponse{{Name: "Grill"}},
	}

	svc := compliance.NewService(repo, cat, rdb, nil)
	snap, err := svc.Dashboard(context.Background(), restaurantID)

	require.NoError(t, err)
	assert.Equal(t, 0, snap.CertComplianceRate)
	assert.Equal(t, 100, snap.SkillComplianceRate)
	assert.Equal(t, 50, snap.GlobalCompliance)
	require.Len(t, snap.Alerts, 1)
	require.Len(t, snap.Alerts[0].Alerts, 1)
	assert.Equal(t, compliance.AlertMissing, snap.Alerts[0].Alerts[0].Kind)
}

func TestDashboard_NilRedisStillComputes(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)

	restaurantID := uuid.NewString()
	repo.EXPECT().
		FindByPartition(gomock.Any(), restaurantID, employee.PartitionActive).
		Return([]employee.Employee{}, nil)

	svc := compliance.NewService(repo, &fakeCatalogService{}, nil, nil)
	snap, err := svc.Dashboard(context.Background(), restaurantID)

	require.NoError(t, err)
	assert.Equal(t, 100, snap.GlobalCompliance)
	assert.Equal(t, 0, snap.EmployeeCount)
}
