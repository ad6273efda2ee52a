package mcp

import (
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driving"
	"github.com/numan-developer-2/RAGSystem-Company/internal/index/snapshot"
)

// Ports aggregates the driving ports the MCP server exposes.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions and runs retrieval.
	Query driving.QueryService

	// Status reports index state. Optional.
	Status driving.StatusService

	// Snapshots backs the document resources. Optional.
	Snapshots *snapshot.Holder
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// Status and Snapshots are optional
	return nil
}
