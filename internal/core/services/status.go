package services

import (
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driving"
	"github.com/numan-developer-2/RAGSystem-Company/internal/index/snapshot"
)

// Ensure StatusService implements the interface.
var _ driving.StatusService = (*StatusService)(nil)

// StatusService reports read-only metadata about the current snapshot.
type StatusService struct {
	holder *snapshot.Holder
}

// NewStatusService creates a status service.
func NewStatusService(holder *snapshot.Holder) *StatusService {
	return &StatusService{holder: holder}
}

// Status reports snapshot readiness and corpus counts. Before the first
// ingestion it reports not ready with zero counts.
func (s *StatusService) Status() domain.Status {
	snap := s.holder.Load()
	if snap == nil {
		return domain.Status{}
	}
	return snap.Status()
}
