package employee

type SkillInput struct {
	Name  string `json:"name" binding:"required"`
	Level string `json:"level" binding:"required"`
}

type DayAvailabilityInput struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

type CreateEmployeeRequest struct {
	Name            string                 `json:"name" binding:"required"`
	Email           string                 `json:"email" binding:"required,email"`
	Role            string                 `json:"role" binding:"required"`
	Department      string                 `json:"department"`
	Phone           string                 `json:"phone"`
	ContractType    string                 `json:"contract_type"`
	EntryDate       string                 `json:"entry_date"`
	ContractEndDate string                 `json:"contract_end_date"`
	Skills          []SkillInput           `json:"skills"`
	Availability    []DayAvailabilityInput `json:"availability"`
}

type UpdateEmployeeRequest struct {
	Name            string                 `json:"name" binding:"required"`
	Email           string                 `json:"email" binding:"required,email"`
	Role            string                 `json:"role" binding:"required"`
	Department      string                 `json:"department"`
	Phone           string                 `json:"phone"`
	ContractType    string                 `json:"contract_type"`
	EntryDate       string                 `json:"entry_date"`
	ContractEndDate string                 `json:"contract_end_date"`
	Skills          []SkillInput           `json:"skills"`
	Availability    []DayAvailabilityInput `json:"availability"`

	// Version must match the stored record or the update is rejected.
	Version int `json:"version" binding:"required,min=1"`
}

type ArchiveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type UpdateArchiveReasonRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type EmployeeResponse struct {
	ID              string            `json:"id"`
	RestaurantID    string            `json:"restaurant_id"`
	EmployeeNumber  string            `json:"employee_number"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Role            string            `json:"role"`
	Department      string            `json:"department,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	ContractType    string            `json:"contract_type,omitempty"`
	EntryDate       string            `json:"entry_date,omitempty"`
	ContractEndDate string            `json:"contract_end_date,omitempty"`
	Skills          []Skill           `json:"skills,omitempty"`
	Certs           []EmployeeCert    `json:"certs,omitempty"`
	Availability    []DayAvailability `json:"availability,omitempty"`
	Partition       string            `json:"partition"`
	ArchivedDate    string            `json:"archived_date,omitempty"`
	ArchivedReason  string            `json:"archived_reason,omitempty"`
	DeletedDate     string            `json:"deleted_date,omitempty"`
	Version         int               `json:"version"`
}

type RosterResponse struct {
	Active   []EmployeeResponse `json:"active"`
	Archived []EmployeeResponse `json:"archived"`
	Trashed  []EmployeeResponse `json:"trashed"`
}

// TransitionResult is the explicit outcome of a lifecycle transition. The
// in-memory move always happened when a result comes back; Persisted tells
// the caller whether the backing store confirmed it.
type TransitionResult struct {
	Employee  EmployeeResponse `json:"employee"`
	Persisted bool             `json:"persisted"`
	Warning   string           `json:"warning,omitempty"`
}
