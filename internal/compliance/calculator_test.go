package compliance_test

import (
	"testing"
	"time"

	"resto-ops/internal/compliance"
	"resto-ops/internal/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crewMember(name string, certs []employee.EmployeeCert, skills []employee.Skill) employee.Employee {
	return employee.Employee{
		ID:     uuid.New(),
		Name:   name,
		Role:   employee.RoleTeamMember,
		Certs:  certs,
		Skills: skills,
	}
}

func completedCert(name string, expiry *time.Time) employee.EmployeeCert {
	return employee.EmployeeCert{
		Name:       name,
		Status:     employee.CertCompleted,
		ExpiryDate: expiry,
	}
}

func TestEvaluate_ZeroDenominatorsAreFullyCompliant(t *testing.T) {
	now := time.Now().UTC()

	snap := compliance.Evaluate(nil, nil, nil, now)
	assert.Equal(t, 100, snap.CertComplianceRate)
	assert.Equal(t, 100, snap.SkillComplianceRate)
	assert.Equal(t, 100, snap.GlobalCompliance)
	assert.Empty(t, snap.Alerts)

	snap = compliance.Evaluate(
		[]employee.Employee{crewMember("Alice", nil, nil)},
		nil, nil, now,
	)
	assert.Equal(t, 100, snap.CertComplianceRate)
	assert.Equal(t, 100, snap.SkillComplianceRate)
	assert.Equal(t, 100, snap.GlobalCompliance)
}

func TestEvaluate_MissingMandatoryCerts(t *testing.T) {
	now := time.Now().UTC()
	crew := []employee.Employee{crewMember("Bruno", nil, nil)}

	snap := compliance.Evaluate(crew, []string{"Hygiène", "Sécurité"}, nil, now)

	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, "Bruno", snap.Alerts[0].EmployeeName)
	require.Len(t, snap.Alerts[0].Alerts, 2)
	for _, a := range snap.Alerts[0].Alerts {
		assert.Equal(t, compliance.AlertMissing, a.Kind)
		assert.Equal(t, compliance.SeverityHigh, a.Severity)
	}
	assert.Equal(t, 0, snap.CertComplianceRate)
}

func TestEvaluate_ExpiringSoonStillCountsAsCompliant(t *testing.T) {
	now := time.Now().UTC()
	in10Days := now.AddDate(0, 0, 10)
	crew := []employee.Employee{
		crewMember("Carla", []employee.EmployeeCert{completedCert("Hygiène", &in10Days)}, nil),
	}

	snap := compliance.Evaluate(crew, []string{"Hygiène"}, nil, now)

	require.Len(t, snap.Alerts, 1)
	require.Len(t, snap.Alerts[0].Alerts, 1)
	assert.Equal(t, compliance.AlertExpiringSoon, snap.Alerts[0].Alerts[0].Kind)
	assert.Equal(t, compliance.SeverityMedium, snap.Alerts[0].Alerts[0].Severity)
	assert.Equal(t, 100, snap.CertComplianceRate)
}

func TestEvaluate_ExpiryAtNowIsExpired(t *testing.T) {
	now := time.Now().UTC()
	crew := []employee.Employee{
		crewMember("David", []employee.EmployeeCert{completedCert("Hygiène", &now)}, nil),
	}

	for i := 0; i < 3; i++ {
		snap := compliance.Evaluate(crew, []string{"Hygiène"}, nil, now)
		require.Len(t, snap.Alerts, 1)
		require.Len(t, snap.Alerts[0].Alerts, 1)
		assert.Equal(t, compliance.AlertExpired, snap.Alerts[0].Alerts[0].Kind)
		assert.Equal(t, compliance.SeverityHigh, snap.Alerts[0].Alerts[0].Severity)
		assert.Equal(t, 0, snap.CertComplianceRate)
	}
}

func TestEvaluate_StaleCompletedStatusIsExpired(t *testing.T) {
	now := time.Now().UTC()
	lastMonth := now.AddDate(0, -1, 0)
	crew := []employee.Employee{
		crewMember("Emma", []employee.EmployeeCert{completedCert("Hygiène", &lastMonth)}, nil),
	}

	snap := compliance.Evaluate(crew, []string{"Hygiène"}, nil, now)

	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, compliance.AlertExpired, snap.Alerts[0].Alerts[0].Kind)
}

func TestEvaluate_TodoCertIsMissingEvenWithFutureExpiry(t *testing.T) {
	now := time.Now().UTC()
	nextYear := now.AddDate(1, 0, 0)
	crew := []employee.Employee{
		crewMember("Farid", []employee.EmployeeCert{{
			Name:       "Hygiène",
			Status:     employee.CertTodo,
			ExpiryDate: &nextYear,
		}}, nil),
	}

	snap := compliance.Evaluate(crew, []string{"Hygiène"}, nil, now)

	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, compliance.AlertMissing, snap.Alerts[0].Alerts[0].Kind)
}

func TestEvaluate_SkillComplianceAtFiftyPercent(t *testing.T) {
	now := time.Now().UTC()
	qualified := crewMember("Gabriel", nil, []employee.Skill{
		{Name: "Grill", Level: employee.LevelForme},
		{Name: "Caisse", Level: employee.LevelExpert},
	})
	unqualified := crewMember("Hana", nil, []employee.Skill{
		{Name: "Grill", Level: employee.LevelDebutant},
	})

	snap := compliance.Evaluate(
		[]employee.Employee{qualified, unqualified},
		nil,
		[]string{"Grill", "Caisse"},
		now,
	)

	assert.Equal(t, 50, snap.SkillComplianceRate)
	require.Len(t, snap.SkillCoverage, 2)
	assert.Equal(t, 1, snap.SkillCoverage[0].QualifiedCount)
	assert.Equal(t, 2, snap.SkillCoverage[0].EmployeeCount)
	assert.Equal(t, 50, snap.SkillCoverage[0].Rate)
}

func TestEvaluate_GlobalComplianceAveragesBothRates(t *testing.T) {
	now := time.Now().UTC()
	crew := []employee.Employee{
		crewMember("Iris", []employee.EmployeeCert{completedCert("Hygiène", nil)}, []employee.Skill{
			{Name: "Grill", Level: employee.LevelNonForme},
		}),
	}

	snap := compliance.Evaluate(crew, []string{"Hygiène"}, []string{"Grill"}, now)

	assert.Equal(t, 100, snap.CertComplianceRate)
	assert.Equal(t, 0, snap.SkillComplianceRate)
	assert.Equal(t, 50, snap.GlobalCompliance)

	// Certs without an expiry never raise an alert.
	assert.Empty(t, snap.Alerts)
}
