package catalog

import (
	"context"

	"resto-ops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=catalog_repo.go -destination=mock/catalog_repo_mock.go -package=mock
type Repository interface {
	FindSkills(ctx context.Context, restaurantID string) ([]SkillDefinition, error)
	ReplaceSkills(ctx context.Context, restaurantID string, skills []SkillDefinition) error
	FindCertConfigs(ctx context.Context, restaurantID string) ([]CertConfig, error)
	ReplaceCertConfigs(ctx context.Context, restaurantID string, configs []CertConfig) error
	FindContractTypes(ctx context.Context, restaurantID string) ([]ContractType, error)
	ReplaceContractTypes(ctx context.Context, restaurantID string, types []ContractType) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindSkills(ctx context.Context, restaurantID string) ([]SkillDefinition, error) {
	var skills []SkillDefinition
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		Order("name ASC").
		Find(&skills).Error
	return skills, err
}

// ReplaceSkills swaps the whole catalog atomically. Settings are replaced
// as a blob, not patched row by row.
func (r *repository) ReplaceSkills(ctx context.Context, restaurantID string, skills []SkillDefinition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(tenant.Scope(restaurantID)).Delete(&SkillDefinition{}).Error; err != nil {
			return err
		}
		if len(skills) == 0 {
			return nil
		}
		return tx.Create(&skills).Error
	})
}

func (r *repository) FindCertConfigs(ctx context.Context, restaurantID string) ([]CertConfig, error) {
	var configs []CertConfig
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		Order("name ASC").
		Find(&configs).Error
	return configs, err
}

func (r *repository) ReplaceCertConfigs(ctx context.Context, restaurantID string, configs []CertConfig) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(tenant.Scope(restaurantID)).Delete(&CertConfig{}).Error; err != nil {
			return err
		}
		if len(configs) == 0 {
			return nil
		}
		return tx.Create(&configs).Error
	})
}

func (r *repository) FindContractTypes(ctx context.Context, restaurantID string) ([]ContractType, error) {
	var types []ContractType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(restaurantID)).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) ReplaceContractTypes(ctx context.Context, restaurantID string, types []ContractType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(tenant.Scope(restaurantID)).Delete(&ContractType{}).Error; err != nil {
			return err
		}
		if len(types) == 0 {
			return nil
		}
		return tx.Create(&types).Error
	})
}
