package mcp

import (
	"context"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer  *domain.Answer
	result  *domain.RetrievalResult
	err     error
	lastReq domain.QueryRequest
}

func (m *mockQueryService) Ask(_ context.Context, req domain.QueryRequest) (*domain.Answer, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockQueryService) Retrieve(_ context.Context, question string, opts domain.RetrievalOptions) (*domain.RetrievalResult, error) {
	m.lastReq = domain.QueryRequest{Question: question, Options: opts}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockStatusService is a mock implementation of driving.StatusService.
type mockStatusService struct {
	status domain.Status
}

func (m *mockStatusService) Status() domain.Status { return m.status }
