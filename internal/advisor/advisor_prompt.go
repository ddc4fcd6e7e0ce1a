package advisor

import (
	"fmt"
	"strings"

	"resto-ops/internal/employee"
	"resto-ops/internal/task"
	"resto-ops/internal/vacation"
)

// buildPrompt lays out the crew, the open tasks and the approved absences,
// then states the assignment policy and the exact reply schema. The policy
// is communicated to the model, not enforced here: the service re-validates
// ids on the way back, nothing else.
func buildPrompt(employees []employee.Employee, tasks []task.Task, vacations []vacation.Vacation) string {
	var b strings.Builder

	b.WriteString("Tu es l'assistant de planification d'un restaurant.\n\n")

	b.WriteString("ÉQUIPE DISPONIBLE :\n")
	for _, e := range employees {
		b.WriteString(fmt.Sprintf("- id=%s | %s | rôle: %s", e.ID, e.Name, e.Role))
		if len(e.Skills) > 0 {
			parts := make([]string, len(e.Skills))
			for i, s := range e.Skills {
				parts[i] = fmt.Sprintf("%s (%s)", s.Name, s.Level)
			}
			b.WriteString(" | compétences: " + strings.Join(parts, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nTÂCHES À RÉPARTIR :\n")
	for _, t := range tasks {
		b.WriteString(fmt.Sprintf("- id=%s | %s | priorité: %s", t.ID, t.Title, t.Priority))
		if t.RequiredSkill != "" {
			b.WriteString(" | compétence requise: " + t.RequiredSkill)
		}
		b.WriteString("\n")
	}

	if len(vacations) > 0 {
		b.WriteString("\nABSENCES APPROUVÉES (ne rien assigner à ces employés) :\n")
		for _, v := range vacations {
			b.WriteString(fmt.Sprintf("- employé %s absent du %s au %s\n",
				v.EmployeeID,
				v.StartDate.Format("2006-01-02"),
				v.EndDate.Format("2006-01-02"),
			))
		}
	}

	b.WriteString(`
RÈGLES :
1. N'assigne une tâche exigeant une compétence qu'à un employé Formé ou Expert sur cette compétence.
2. N'assigne jamais une tâche à un employé en absence approuvée.
3. Répartis la charge équitablement entre les employés.

Réponds UNIQUEMENT avec un JSON strictement conforme à ce schéma, sans texte autour :
{"assignments":[{"taskId":"...","employeeId":"...","reason":"justification courte"}]}
`)

	return b.String()
}
