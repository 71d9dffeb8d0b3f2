package domain

import "fmt"

// ConflictType kind of scheduling problem found for a (medic, booking) pair
type ConflictType string

const (
	ConflictDoubleBooking         ConflictType = "double_booking"
	ConflictQualificationMismatch ConflictType = "qualification_mismatch"
	ConflictOvertimeViolation     ConflictType = "overtime_violation"
	ConflictInsufficientRest      ConflictType = "insufficient_rest"
	ConflictTravelTimeInfeasible  ConflictType = "travel_time_infeasible"
	ConflictTimeOff               ConflictType = "time_off_conflict"
	ConflictGoogleCalendar        ConflictType = "google_calendar_conflict"
)

// Severity critical conflicts block assignment, warnings may be overridden
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Severity returns the fixed severity of the conflict type
func (t ConflictType) Severity() Severity {
	switch t {
	case ConflictTravelTimeInfeasible, ConflictGoogleCalendar:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}

// Overridable reports whether an admin may assign despite this conflict
func (t ConflictType) Overridable() bool {
	return t.Severity() == SeverityWarning
}

// Conflict one detected scheduling problem
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Message     string
	Details     map[string]interface{}
	CanOverride bool
}

// NewConflict builds a conflict with severity and override flag derived from its type
func NewConflict(t ConflictType, message string, details map[string]interface{}) Conflict {
	return Conflict{
		Type:        t,
		Severity:    t.Severity(),
		Message:     message,
		Details:     details,
		CanOverride: t.Overridable(),
	}
}

// ConflictReport aggregated verdict of a conflict check
type ConflictReport struct {
	Conflicts         []Conflict
	TotalConflicts    int
	CriticalConflicts int
	Warnings          int
	CanAssign         bool
	Recommendation    string
}

// NewConflictReport aggregates conflicts into a verdict
func NewConflictReport(conflicts []Conflict) *ConflictReport {
	report := &ConflictReport{
		Conflicts:      conflicts,
		TotalConflicts: len(conflicts),
	}
	if report.Conflicts == nil {
		report.Conflicts = []Conflict{}
	}

	for _, c := range conflicts {
		if c.Severity == SeverityCritical {
			report.CriticalConflicts++
		} else {
			report.Warnings++
		}
	}

	report.CanAssign = report.CriticalConflicts == 0

	switch {
	case !report.CanAssign:
		report.Recommendation = fmt.Sprintf("Cannot assign - %d critical conflict(s)", report.CriticalConflicts)
	case report.Warnings > 0:
		report.Recommendation = fmt.Sprintf("Can assign with %d warning(s)", report.Warnings)
	default:
		report.Recommendation = "Safe to assign"
	}

	return report
}

// HasOnlyOverridable returns true if every conflict may be overridden
func (r *ConflictReport) HasOnlyOverridable() bool {
	for _, c := range r.Conflicts {
		if !c.CanOverride {
			return false
		}
	}
	return true
}
