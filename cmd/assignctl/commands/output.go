package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/integrations/assignmentapi"
	"github.com/m04kA/SMC-AssignmentService/internal/scheduleboard"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var (
	// ErrUnknownFormat неизвестный формат вывода
	ErrUnknownFormat = errors.New("assignctl: unknown output format")

	// ErrAssignmentRejected сервис отклонил назначение
	ErrAssignmentRejected = errors.New("assignctl: assignment rejected")
)

func render(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

type conflictView struct {
	Type        string                 `json:"type" yaml:"type"`
	Severity    string                 `json:"severity" yaml:"severity"`
	Message     string                 `json:"message" yaml:"message"`
	Details     map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
	CanOverride bool                   `json:"can_override" yaml:"can_override"`
}

type reportView struct {
	CanAssign         bool           `json:"can_assign" yaml:"can_assign"`
	Recommendation    string         `json:"recommendation" yaml:"recommendation"`
	TotalConflicts    int            `json:"total_conflicts" yaml:"total_conflicts"`
	CriticalConflicts int            `json:"critical_conflicts" yaml:"critical_conflicts"`
	Warnings          int            `json:"warnings" yaml:"warnings"`
	Conflicts         []conflictView `json:"conflicts" yaml:"conflicts"`
	Degraded          bool           `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

func newReportView(r *domain.ConflictReport) *reportView {
	if r == nil {
		return nil
	}
	v := &reportView{
		CanAssign:         r.CanAssign,
		Recommendation:    r.Recommendation,
		TotalConflicts:    r.TotalConflicts,
		CriticalConflicts: r.CriticalConflicts,
		Warnings:          r.Warnings,
		Conflicts:         make([]conflictView, 0, len(r.Conflicts)),
	}
	for _, c := range r.Conflicts {
		v.Conflicts = append(v.Conflicts, conflictView{
			Type:        string(c.Type),
			Severity:    string(c.Severity),
			Message:     c.Message,
			Details:     c.Details,
			CanOverride: c.CanOverride,
		})
	}
	return v
}

type assignmentView struct {
	BookingID string      `json:"booking_id" yaml:"booking_id"`
	MedicID   string      `json:"medic_id" yaml:"medic_id"`
	Status    string      `json:"status" yaml:"status"`
	Version   int64       `json:"version" yaml:"version"`
	Conflicts *reportView `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

func newAssignmentView(a *assignmentapi.Assignment) assignmentView {
	return assignmentView{
		BookingID: a.BookingID.String(),
		MedicID:   a.MedicID.String(),
		Status:    string(a.Status),
		Version:   a.Version,
		Conflicts: newReportView(a.Report),
	}
}

type rejectionView struct {
	Error     string      `json:"error" yaml:"error"`
	Conflicts *reportView `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

type shiftView struct {
	BookingID string `json:"booking_id" yaml:"booking_id"`
	Date      string `json:"date" yaml:"date"`
	Start     string `json:"start" yaml:"start"`
	End       string `json:"end" yaml:"end"`
	Site      string `json:"site" yaml:"site"`
	Status    string `json:"status" yaml:"status"`
	Version   int64  `json:"version" yaml:"version"`
}

type medicRowView struct {
	MedicID string      `json:"medic_id" yaml:"medic_id"`
	Name    string      `json:"name" yaml:"name"`
	Shifts  []shiftView `json:"shifts" yaml:"shifts"`
}

type boardView struct {
	WeekStart  string         `json:"week_start" yaml:"week_start"`
	LoadedAt   string         `json:"loaded_at" yaml:"loaded_at"`
	Medics     []medicRowView `json:"medics" yaml:"medics"`
	Unassigned []shiftView    `json:"unassigned" yaml:"unassigned"`
}

func newShiftView(b *domain.Booking) shiftView {
	return shiftView{
		BookingID: b.ID.String(),
		Date:      b.ShiftDate.Format(domain.DateFormat),
		Start:     b.StartTime.String(),
		End:       b.EndTime.String(),
		Site:      b.SitePostcode,
		Status:    string(b.Status),
		Version:   b.Version,
	}
}

func newBoardView(snap scheduleboard.Snapshot) boardView {
	v := boardView{
		WeekStart:  snap.Monday.Format(domain.DateFormat),
		LoadedAt:   snap.LoadedAt.Format(time.RFC3339),
		Medics:     make([]medicRowView, 0, len(snap.Medics)),
		Unassigned: make([]shiftView, 0),
	}

	for _, m := range snap.Medics {
		row := medicRowView{MedicID: m.ID.String(), Name: m.FullName(), Shifts: make([]shiftView, 0)}
		for _, b := range snap.BookingsOf(m.ID) {
			row.Shifts = append(row.Shifts, newShiftView(b))
		}
		v.Medics = append(v.Medics, row)
	}
	sort.SliceStable(v.Medics, func(i, j int) bool { return v.Medics[i].Name < v.Medics[j].Name })

	for _, b := range snap.Unassigned() {
		v.Unassigned = append(v.Unassigned, newShiftView(b))
	}

	return v
}

type previewView struct {
	BookingID string      `json:"booking_id" yaml:"booking_id"`
	MedicID   string      `json:"medic_id" yaml:"medic_id"`
	Report    *reportView `json:"report" yaml:"report"`
}

func newPreviewView(p *scheduleboard.Preview) previewView {
	report := newReportView(p.Report)
	if report != nil {
		report.Degraded = p.Degraded
	}
	return previewView{BookingID: p.BookingID.String(), MedicID: p.MedicID.String(), Report: report}
}

func parseUUIDFlag(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return id, nil
}
