package employee

import (
	"fmt"
	"strings"
	"time"

	employeeerrors "resto-ops/internal/employee/errors"

	"github.com/google/uuid"
)

type Partition string

const (
	PartitionActive   Partition = "active"
	PartitionArchived Partition = "archived"
	PartitionTrashed  Partition = "trashed"
)

func ParsePartition(s string) (Partition, bool) {
	switch Partition(s) {
	case PartitionActive, PartitionArchived, PartitionTrashed:
		return Partition(s), true
	}
	return "", false
}

// AutoReasonPrefix marks archive reasons generated by the contract-expiry
// sweep, pending validation by a manager.
const AutoReasonPrefix = "[AUTO]"

func autoArchiveReason(contractEnd time.Time) string {
	return fmt.Sprintf("%s Contrat expiré le %s, motif à valider", AutoReasonPrefix, contractEnd.Format("2006-01-02"))
}

// IsAutoReason reports whether a reason was machine-generated by the sweep.
func IsAutoReason(reason string) bool {
	return strings.HasPrefix(reason, AutoReasonPrefix)
}

// Roster owns the three lifecycle partitions. All membership mutation goes
// through its transition methods; each one validates first and mutates only
// on success, so an employee is never in two partitions or in none, even
// when the caller gave a bad id. Transitions into archived and trashed
// prepend, keeping the most recent transition first.
type Roster struct {
	Active   []Employee
	Archived []Employee
	Trashed  []Employee
}

// BuildRoster partitions a flat employee list by its lifecycle flags.
func BuildRoster(employees []Employee) Roster {
	var r Roster
	for _, e := range employees {
		switch e.Partition() {
		case PartitionTrashed:
			r.Trashed = append(r.Trashed, e)
		case PartitionArchived:
			r.Archived = append(r.Archived, e)
		default:
			r.Active = append(r.Active, e)
		}
	}
	return r
}

// Find locates an employee in any partition.
func (r *Roster) Find(id uuid.UUID) (Employee, Partition, bool) {
	for _, set := range []struct {
		part Partition
		list []Employee
	}{
		{PartitionActive, r.Active},
		{PartitionArchived, r.Archived},
		{PartitionTrashed, r.Trashed},
	} {
		for _, e := range set.list {
			if e.ID == id {
				return e, set.part, true
			}
		}
	}
	return Employee{}, "", false
}

// Archive moves an active employee to the archived partition. A non-empty
// reason is required for manual archival.
func (r *Roster) Archive(id uuid.UUID, reason string, now time.Time) (Employee, error) {
	if strings.TrimSpace(reason) == "" {
		return Employee{}, employeeerrors.ErrArchiveReasonRequired
	}
	return r.archive(id, reason, now)
}

func (r *Roster) archive(id uuid.UUID, reason string, now time.Time) (Employee, error) {
	idx, err := r.indexIn(r.Active, id, employeeerrors.ErrNotActive)
	if err != nil {
		return Employee{}, err
	}

	e := r.Active[idx]
	d := dateOf(now)
	e.IsArchived = true
	e.ArchivedDate = &d
	e.ArchivedReason = reason

	r.Active = removeAt(r.Active, idx)
	r.Archived = prepend(r.Archived, e)
	return e, nil
}

// Trash moves an active employee to the trash. No reason required.
func (r *Roster) Trash(id uuid.UUID, now time.Time) (Employee, error) {
	idx, err := r.indexIn(r.Active, id, employeeerrors.ErrNotActive)
	if err != nil {
		return Employee{}, err
	}

	e := r.Active[idx]
	d := dateOf(now)
	e.IsDeleted = true
	e.DeletedDate = &d

	r.Active = removeAt(r.Active, idx)
	r.Trashed = prepend(r.Trashed, e)
	return e, nil
}

// RestoreFromTrash returns a trashed employee to the active roster.
func (r *Roster) RestoreFromTrash(id uuid.UUID) (Employee, error) {
	idx, err := r.indexIn(r.Trashed, id, employeeerrors.ErrNotTrashed)
	if err != nil {
		return Employee{}, err
	}

	e := r.Trashed[idx]
	e.IsDeleted = false
	e.DeletedDate = nil

	r.Trashed = removeAt(r.Trashed, idx)
	r.Active = prepend(r.Active, e)
	return e, nil
}

// RestoreFromArchive reintegrates an archived employee. The contract end
// date is reset to unset: reintegration always restarts the employee on an
// open-ended contract.
func (r *Roster) RestoreFromArchive(id uuid.UUID) (Employee, error) {
	idx, err := r.indexIn(r.Archived, id, employeeerrors.ErrNotArchived)
	if err != nil {
		return Employee{}, err
	}

	e := r.Archived[idx]
	e.IsArchived = false
	e.ArchivedDate = nil
	e.ArchivedReason = ""
	e.ContractEndDate = nil

	r.Archived = removeAt(r.Archived, idx)
	r.Active = prepend(r.Active, e)
	return e, nil
}

// Purge removes a trashed employee permanently. Irreversible.
func (r *Roster) Purge(id uuid.UUID) (Employee, error) {
	idx, err := r.indexIn(r.Trashed, id, employeeerrors.ErrNotTrashed)
	if err != nil {
		return Employee{}, err
	}

	e := r.Trashed[idx]
	r.Trashed = removeAt(r.Trashed, idx)
	return e, nil
}

// UpdateArchiveReason replaces an archived employee's reason in place,
// typically to validate an auto-generated one. Partition is unchanged.
func (r *Roster) UpdateArchiveReason(id uuid.UUID, reason string) (Employee, error) {
	if strings.TrimSpace(reason) == "" {
		return Employee{}, employeeerrors.ErrArchiveReasonRequired
	}

	idx, err := r.indexIn(r.Archived, id, employeeerrors.ErrNotArchived)
	if err != nil {
		return Employee{}, err
	}

	r.Archived[idx].ArchivedReason = reason
	return r.Archived[idx], nil
}

// SweepExpiredContracts archives every active employee whose contract end
// date is strictly before today, with a machine-generated reason embedding
// that date. Running the sweep twice on the same roster is a no-op the
// second time: archived employees are no longer in the active set.
func (r *Roster) SweepExpiredContracts(now time.Time) []Employee {
	today := dateOf(now)

	var stillActive, expired []Employee
	for _, e := range r.Active {
		if e.ContractEndDate != nil && e.ContractEndDate.Before(today) {
			expired = append(expired, e)
			continue
		}
		stillActive = append(stillActive, e)
	}

	if len(expired) == 0 {
		return nil
	}

	archived := make([]Employee, 0, len(expired))
	for _, e := range expired {
		d := today
		e.IsArchived = true
		e.ArchivedDate = &d
		e.ArchivedReason = autoArchiveReason(*e.ContractEndDate)
		archived = append(archived, e)
	}

	r.Active = stillActive
	// Newest transitions first, same as single archival.
	r.Archived = append(archived, r.Archived...)
	return archived
}

func (r *Roster) indexIn(list []Employee, id uuid.UUID, wrongPartition error) (int, error) {
	for i, e := range list {
		if e.ID == id {
			return i, nil
		}
	}
	if _, _, found := r.Find(id); found {
		return 0, wrongPartition
	}
	return 0, employeeerrors.ErrEmployeeNotFound
}

func removeAt(list []Employee, i int) []Employee {
	out := make([]Employee, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

func prepend(list []Employee, e Employee) []Employee {
	out := make([]Employee, 0, len(list)+1)
	out = append(out, e)
	return append(out, list...)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
