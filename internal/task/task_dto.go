package task

type CreateTaskRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	RequiredSkill string `json:"required_skill"`
	Priority      string `json:"priority"`
	DueDate       string `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	RequiredSkill string `json:"required_skill"`
	Status        string `json:"status" binding:"required"`
	Priority      string `json:"priority" binding:"required"`
	DueDate       string `json:"due_date"`
	AssignedTo    string `json:"assigned_to"`
}

// Assignment binds one task to one employee with the advisor's (or the
// manager's) justification.
type Assignment struct {
	TaskID     string `json:"taskId" binding:"required"`
	EmployeeID string `json:"employeeId" binding:"required"`
	Reason     string `json:"reason"`
}

type ApplyAssignmentsRequest struct {
	Assignments []Assignment `json:"assignments" binding:"required,dive"`
}

type TaskResponse struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	RequiredSkill    string `json:"required_skill,omitempty"`
	Status           string `json:"status"`
	Priority         string `json:"priority"`
	AssignedTo       string `json:"assigned_to,omitempty"`
	AssignmentReason string `json:"assignment_reason,omitempty"`
	DueDate          string `json:"due_date,omitempty"`
}

type ApplyAssignmentsResponse struct {
	Applied []TaskResponse `json:"applied"`
	Skipped []Assignment   `json:"skipped,omitempty"`
}
