package catalog

import (
	"time"

	"github.com/google/uuid"
)

// SkillDefinition is one entry of the restaurant's skill catalog. Employee
// skills must reference a catalog name to count for compliance.
type SkillDefinition struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_skill_def_name"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_skill_def_name"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CertConfig is the global certification catalog entry. Name is the key
// employee certs reference. ValidityMonths of 0 means the cert never
// expires.
type CertConfig struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_cert_config_name"`
	Name           string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_cert_config_name"`
	IsMandatory    bool      `gorm:"not null;default:false"`
	ValidityMonths int       `gorm:"not null;default:0"`
	TemplateURL    string    `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ContractType struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_contract_type_name"`
	Name         string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_contract_type_name"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
