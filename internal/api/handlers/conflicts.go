package handlers

import "github.com/m04kA/SMC-AssignmentService/internal/domain"

// ConflictResponse один конфликт в отчёте
type ConflictResponse struct {
	Type        string                 `json:"type"`
	Severity    string                 `json:"severity"`
	Message     string                 `json:"message"`
	Details     map[string]interface{} `json:"details,omitempty"`
	CanOverride bool                   `json:"can_override"`
}

// ConflictReportResponse отчёт детектора конфликтов
type ConflictReportResponse struct {
	CanAssign         bool               `json:"can_assign"`
	TotalConflicts    int                `json:"total_conflicts"`
	CriticalConflicts int                `json:"critical_conflicts"`
	Warnings          int                `json:"warnings"`
	Conflicts         []ConflictResponse `json:"conflicts"`
	Recommendation    string             `json:"recommendation"`
}

// FromConflictReport конвертирует доменный отчёт в HTTP модель
func FromConflictReport(report *domain.ConflictReport) *ConflictReportResponse {
	resp := &ConflictReportResponse{
		CanAssign:         report.CanAssign,
		TotalConflicts:    report.TotalConflicts,
		CriticalConflicts: report.CriticalConflicts,
		Warnings:          report.Warnings,
		Conflicts:         make([]ConflictResponse, 0, len(report.Conflicts)),
		Recommendation:    report.Recommendation,
	}
	for _, c := range report.Conflicts {
		resp.Conflicts = append(resp.Conflicts, ConflictResponse{
			Type:        string(c.Type),
			Severity:    string(c.Severity),
			Message:     c.Message,
			Details:     c.Details,
			CanOverride: c.CanOverride,
		})
	}
	return resp
}
