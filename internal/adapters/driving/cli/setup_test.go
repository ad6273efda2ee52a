package cli

import (
	"context"
	"time"

	configfile "github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/config/file"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

// mockQueryService returns a canned answer and records the last request.
type mockQueryService struct {
	answer  *domain.Answer
	result  *domain.RetrievalResult
	err     error
	calls   int
	lastReq domain.QueryRequest
}

func (m *mockQueryService) Ask(_ context.Context, req domain.QueryRequest) (*domain.Answer, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockQueryService) Retrieve(_ context.Context, _ string, _ domain.RetrievalOptions) (*domain.RetrievalResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockIngestService returns a canned report and records the last call.
type mockIngestService struct {
	report  *domain.IngestReport
	err     error
	calls   int
	lastDir string
	lastCfg domain.ChunkingConfig
}

func (m *mockIngestService) Ingest(_ context.Context, dir string, cfg domain.ChunkingConfig) (*domain.IngestReport, error) {
	m.calls++
	m.lastDir = dir
	m.lastCfg = cfg
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// mockStatusService returns a fixed status.
type mockStatusService struct {
	status domain.Status
}

func (m *mockStatusService) Status() domain.Status { return m.status }

// setupTestServices swaps the wired services for mocks and returns a
// cleanup that restores the previous state and resets command flags.
func setupTestServices() func() {
	oldWired := wired
	oldConfig := appConfig
	oldQuery := queryService
	oldIngest := ingestService
	oldStatus := statusService

	wired = true
	appConfig = configfile.Default()
	queryService = &mockQueryService{
		answer: &domain.Answer{
			Text:       "Annual leave is 25 days per year.",
			Confidence: 0.82,
			Citations: []domain.Citation{
				{DocumentID: "d1", DocumentName: "handbook.pdf", ChunkIndex: 3, Snippet: "Employees receive 25 days of annual leave."},
			},
			LatencyMS: 42,
		},
	}
	ingestService = &mockIngestService{
		report: &domain.IngestReport{
			SnapshotVersion:  "snap-1",
			DocumentsIndexed: 2,
			ChunksIndexed:    14,
			Duration:         120 * time.Millisecond,
		},
	}
	statusService = &mockStatusService{
		status: domain.Status{
			Ready:               true,
			SnapshotVersion:     "snap-1",
			BuiltAt:             time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			DocumentCount:       2,
			ChunkCount:          14,
			EmbeddingDimensions: 768,
		},
	}

	return func() {
		wired = oldWired
		appConfig = oldConfig
		queryService = oldQuery
		ingestService = oldIngest
		statusService = oldStatus

		askTopK = 0
		askAlpha = 0
		askNoRerank = false
		askJSON = false
		ingestChunkSize = 0
		ingestOverlap = 0
		statusJSON = false
		verbose = false
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}
