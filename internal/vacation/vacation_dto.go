package vacation

type CreateVacationRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type RejectVacationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type VacationResponse struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Reason          string `json:"reason,omitempty"`
	Status          string `json:"status"`
	ApprovedBy      string `json:"approved_by,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}
