package scheduler

import (
	"sort"

	"github.com/oposita/studyplan/internal/domain"
)

// StreamPriority returns a sort priority (lower = forced first): cases >
// programming > theory, the precedence used throughout Stage A′. Adapted
// from the teacher's RiskPriority, which ranks domain.RiskLevel the same way.
func StreamPriority(s domain.Stream) int {
	switch s {
	case domain.StreamCases:
		return 0
	case domain.StreamProgramming:
		return 1
	default:
		return 2
	}
}

// OrderByPrecedence sorts a slice of streams in place by StreamPriority,
// mirroring the teacher's CanonicalSort (stable, priority-driven ordering).
func OrderByPrecedence(streams []domain.Stream) {
	sort.SliceStable(streams, func(i, j int) bool {
		return StreamPriority(streams[i]) < StreamPriority(streams[j])
	})
}
