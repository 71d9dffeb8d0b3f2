package matching

import (
	"sort"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// DefaultTopCandidates сколько кандидатов попадает в отчёт
const DefaultTopCandidates = 5

// Rank сортирует кандидатов по убыванию общей оценки.
// Сортировка стабильная: при равенстве сохраняется порядок входа.
func Rank(candidates []*domain.Candidate) []*domain.Candidate {
	ranked := make([]*domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			ranked = append(ranked, c)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})

	return ranked
}

// Top возвращает первые n кандидатов ранжированного списка
func Top(ranked []*domain.Candidate, n int) []*domain.Candidate {
	if n <= 0 || len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}
