package employee

import (
	"time"

	"github.com/google/uuid"
)

// Role is the single role string attached to an employee. Unknown values
// are rejected at the boundary.
type Role string

const (
	RoleManager          Role = "Manager"
	RoleTrainer          Role = "Trainer"
	RoleTeamMember       Role = "TeamMember"
	RoleMcCafeSpecialist Role = "McCafeSpecialist"
	RoleHostGreeter      Role = "HostGreeter"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleManager, RoleTrainer, RoleTeamMember, RoleMcCafeSpecialist, RoleHostGreeter:
		return Role(s), true
	}
	return "", false
}

// SkillLevel is ordered from Non Formé up to Expert.
type SkillLevel string

const (
	LevelNonForme      SkillLevel = "Non Formé"
	LevelDebutant      SkillLevel = "Débutant"
	LevelIntermediaire SkillLevel = "Intermédiaire"
	LevelForme         SkillLevel = "Formé"
	LevelExpert        SkillLevel = "Expert"
)

var skillLevelOrder = map[SkillLevel]int{
	LevelNonForme:      0,
	LevelDebutant:      1,
	LevelIntermediaire: 2,
	LevelForme:         3,
	LevelExpert:        4,
}

func ParseSkillLevel(s string) (SkillLevel, bool) {
	if _, ok := skillLevelOrder[SkillLevel(s)]; ok {
		return SkillLevel(s), true
	}
	return "", false
}

// Qualified reports whether the level counts for skill compliance.
func (l SkillLevel) Qualified() bool {
	return l == LevelForme || l == LevelExpert
}

type CertStatus string

const (
	CertTodo      CertStatus = "À faire"
	CertCompleted CertStatus = "Complété"
	CertExpired   CertStatus = "Expiré"
)

func ParseCertStatus(s string) (CertStatus, bool) {
	switch CertStatus(s) {
	case CertTodo, CertCompleted, CertExpired:
		return CertStatus(s), true
	}
	return "", false
}

type Skill struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// EmployeeCert is one certification held (or owed) by an employee. The
// stored status can drift behind the expiry date; consumers must go through
// ExpiredAt instead of trusting Status alone.
type EmployeeCert struct {
	Name             string     `json:"name"`
	Status           CertStatus `json:"status"`
	DateObtained     *time.Time `json:"dateObtained,omitempty"`
	ExpiryDate       *time.Time `json:"expiryDate,omitempty"`
	DocumentURL      string     `json:"documentUrl,omitempty"`
	EmployeeSignedAt *time.Time `json:"employeeSignedAt,omitempty"`
	TrainerSignedAt  *time.Time `json:"trainerSignedAt,omitempty"`
	EvaluationNote   string     `json:"evaluationNote,omitempty"`
}

// ExpiredAt reports whether the cert is logically expired at the given
// instant. A cert expiring exactly at now is expired. The date always wins
// over a stale Complété status.
func (c EmployeeCert) ExpiredAt(now time.Time) bool {
	if c.ExpiryDate == nil {
		return false
	}
	return !c.ExpiryDate.After(now)
}

// DayAvailability describes one weekday of the recurring schedule.
type DayAvailability struct {
	Weekday   time.Weekday `json:"weekday"`
	Start     string       `json:"start,omitempty"`
	End       string       `json:"end,omitempty"`
	Available bool         `json:"available"`
}

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeNumber string    `gorm:"type:varchar(20);uniqueIndex:uq_employee_number"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex:uq_employee_email"`
	Role           Role      `gorm:"type:varchar(30);not null"`
	Department     string    `gorm:"type:varchar(100)"`
	Phone          string    `gorm:"type:varchar(30)"`
	ContractType   string    `gorm:"type:varchar(50)"`

	EntryDate       *time.Time `gorm:"type:date"`
	ContractEndDate *time.Time `gorm:"type:date"`

	Skills       []Skill           `gorm:"serializer:json"`
	Certs        []EmployeeCert    `gorm:"serializer:json"`
	Availability []DayAvailability `gorm:"serializer:json"`

	// Lifecycle flags. Exactly one of {active, archived, trashed} holds at
	// any observable time; both flags set is a corrupt record.
	IsArchived     bool       `gorm:"not null;default:false"`
	ArchivedDate   *time.Time `gorm:"type:date"`
	ArchivedReason string     `gorm:"type:text"`
	IsDeleted      bool       `gorm:"not null;default:false"`
	DeletedDate    *time.Time `gorm:"type:date"`

	// Version guards concurrent upserts on the same employee id.
	Version int `gorm:"not null;default:1"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Partition derives the lifecycle partition from the flags. Trashed wins
// over archived so a corrupt double-flagged record is still in one place.
func (e *Employee) Partition() Partition {
	switch {
	case e.IsDeleted:
		return PartitionTrashed
	case e.IsArchived:
		return PartitionArchived
	default:
		return PartitionActive
	}
}
