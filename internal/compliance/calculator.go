// Package compliance derives certification and skill coverage for a
// restaurant's active crew. Evaluate is pure: the same roster, catalog and
// instant always produce the same snapshot, which is what makes the result
// safe to cache and recompute on demand.
package compliance

import (
	"math"
	"time"

	"resto-ops/internal/employee"
)

const ExpiringSoonWindow = 30 * 24 * time.Hour

type AlertKind string

const (
	AlertMissing      AlertKind = "MISSING"
	AlertExpired      AlertKind = "EXPIRED"
	AlertExpiringSoon AlertKind = "EXPIRING_SOON"
)

type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
)

type CertAlert struct {
	CertName   string    `json:"cert_name"`
	Kind       AlertKind `json:"kind"`
	Severity   Severity  `json:"severity"`
	ExpiryDate string    `json:"expiry_date,omitempty"`
}

// EmployeeAlerts groups every alert raised for one employee. Employees with
// nothing to report never appear in the snapshot.
type EmployeeAlerts struct {
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name"`
	Alerts       []CertAlert `json:"alerts"`
}

type SkillCoverage struct {
	SkillName      string `json:"skill_name"`
	QualifiedCount int    `json:"qualified_count"`
	EmployeeCount  int    `json:"employee_count"`
	Rate           int    `json:"rate"`
}

type Snapshot struct {
	CertComplianceRate  int              `json:"cert_compliance_rate"`
	SkillComplianceRate int              `json:"skill_compliance_rate"`
	GlobalCompliance    int              `json:"global_compliance"`
	Alerts              []EmployeeAlerts `json:"alerts"`
	SkillCoverage       []SkillCoverage  `json:"skill_coverage"`
	EmployeeCount       int              `json:"employee_count"`
	MandatoryCertCount  int              `json:"mandatory_cert_count"`
	SkillCatalogSize    int              `json:"skill_catalog_size"`
	EvaluatedAt         time.Time        `json:"evaluated_at"`
}

// Evaluate walks the active roster against the mandatory cert names and the
// skill catalog. Expiry is always derived from the cert's date; a stored
// Complété status on a lapsed cert counts as expired. An expiry date equal
// to now is already expired, never expiring-soon.
func Evaluate(employees []employee.Employee, mandatoryCerts, skillCatalog []string, now time.Time) Snapshot {
	snap := Snapshot{
		Alerts:             []EmployeeAlerts{},
		SkillCoverage:      make([]SkillCoverage, 0, len(skillCatalog)),
		EmployeeCount:      len(employees),
		MandatoryCertCount: len(mandatoryCerts),
		SkillCatalogSize:   len(skillCatalog),
		EvaluatedAt:        now,
	}

	completedSlots := 0
	for _, e := range employees {
		alerts := evaluateEmployeeCerts(e, mandatoryCerts, now)
		for _, a := range alerts {
			if a.Kind != AlertMissing && a.Kind != AlertExpired {
				completedSlots++
			}
		}
		completedSlots += len(mandatoryCerts) - len(alerts)
		if len(alerts) > 0 {
			snap.Alerts = append(snap.Alerts, EmployeeAlerts{
				EmployeeID:   e.ID.String(),
				EmployeeName: e.Name,
				Alerts:       alerts,
			})
		}
	}

	qualifiedSlots := 0
	for _, skillName := range skillCatalog {
		qualified := 0
		for _, e := range employees {
			if hasQualifiedSkill(e, skillName) {
				qualified++
			}
		}
		qualifiedSlots += qualified
		snap.SkillCoverage = append(snap.SkillCoverage, SkillCoverage{
			SkillName:      skillName,
			QualifiedCount: qualified,
			EmployeeCount:  len(employees),
			Rate:           percent(qualified, len(employees)),
		})
	}

	snap.CertComplianceRate = percent(completedSlots, len(employees)*len(mandatoryCerts))
	snap.SkillComplianceRate = percent(qualifiedSlots, len(employees)*len(skillCatalog))
	snap.GlobalCompliance = int(math.Round(float64(snap.CertComplianceRate+snap.SkillComplianceRate) / 2))

	return snap
}

func evaluateEmployeeCerts(e employee.Employee, mandatoryCerts []string, now time.Time) []CertAlert {
	var alerts []CertAlert
	for _, certName := range mandatoryCerts {
		cert, found := findCert(e, certName)
		if !found || cert.Status != employee.CertCompleted {
			alerts = append(alerts, CertAlert{
				CertName: certName,
				Kind:     AlertMissing,
				Severity: SeverityHigh,
			})
			continue
		}
		if cert.ExpiredAt(now) {
			alerts = append(alerts, CertAlert{
				CertName:   certName,
				Kind:       AlertExpired,
				Severity:   SeverityHigh,
				ExpiryDate: cert.ExpiryDate.Format("2006-01-02"),
			})
			continue
		}
		if cert.ExpiryDate != nil && !cert.ExpiryDate.After(now.Add(ExpiringSoonWindow)) {
			alerts = append(alerts, CertAlert{
				CertName:   certName,
				Kind:       AlertExpiringSoon,
				Severity:   SeverityMedium,
				ExpiryDate: cert.ExpiryDate.Format("2006-01-02"),
			})
		}
	}
	return alerts
}

func findCert(e employee.Employee, name string) (employee.EmployeeCert, bool) {
	for _, c := range e.Certs {
		if c.Name == name {
			return c, true
		}
	}
	return employee.EmployeeCert{}, false
}

func hasQualifiedSkill(e employee.Employee, skillName string) bool {
	for _, s := range e.Skills {
		if s.Name == skillName && s.Level.Qualified() {
			return true
		}
	}
	return false
}

// percent rounds half away from zero; an empty denominator reads as fully
// compliant, there is nothing to satisfy.
func percent(num, den int) int {
	if den == 0 {
		return 100
	}
	return int(math.Round(100 * float64(num) / float64(den)))
}
