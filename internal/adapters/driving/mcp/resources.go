package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/numan-developer-2/RAGSystem-Company/internal/index/snapshot"
)

const (
	// uriScheme is the custom URI scheme for ragsystem resources.
	uriScheme = "ragsystem://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the index state.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "State of the document index",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	// Static resource for listing indexed documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "List of all indexed documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for document content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Normalised text of a specific indexed document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// handleStatusResource returns the current index state.
func (s *Server) handleStatusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Status == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	status := s.ports.Status.Status()

	type statusInfo struct {
		Ready           bool   `json:"ready"`
		SnapshotVersion string `json:"snapshot_version,omitempty"`
		Documents       int    `json:"documents"`
		Chunks          int    `json:"chunks"`
	}

	data, err := json.MarshalIndent(statusInfo{
		Ready:           status.Ready,
		SnapshotVersion: status.SnapshotVersion,
		Documents:       status.DocumentCount,
		Chunks:          status.ChunkCount,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentsResource returns a list of all indexed documents.
func (s *Server) handleDocumentsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snap := s.currentSnapshot()
	if snap == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	type docInfo struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Format string `json:"format"`
	}

	infos := make([]docInfo, len(snap.Documents))
	for i, doc := range snap.Documents {
		infos[i] = docInfo{
			ID:     doc.ID,
			Name:   doc.Name,
			Format: string(doc.Format),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns the normalised text of one
// indexed document.
func (s *Server) handleDocumentContentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snap := s.currentSnapshot()
	if snap == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	for _, doc := range snap.Documents {
		if doc.ID == docID {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/plain",
					Text:     doc.Text,
				}},
			}, nil
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func (s *Server) currentSnapshot() *snapshot.Snapshot {
	if s.ports.Snapshots == nil {
		return nil
	}
	return s.ports.Snapshots.Load()
}

// extractDocumentID extracts the document ID from a URI like
// ragsystem://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
