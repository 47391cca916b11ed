package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/docforge/docforge-engine/pkg/models"
	"github.com/docforge/docforge-engine/pkg/objectstore"
	"github.com/docforge/docforge-engine/pkg/services"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockDocumentServiceForHandler implements services.DocumentService for
// handler tests. Unset fields make the happy-path methods return zero
// values; err short-circuits every method.
type mockDocumentServiceForHandler struct {
	doc        *models.Document
	body       *objectstore.Object
	docs       []*models.Document
	total      int
	err        error
	lastInput  *services.CreateDocumentInput
	lastStatus string
}

var _ services.DocumentService = (*mockDocumentServiceForHandler)(nil)

func (m *mockDocumentServiceForHandler) Create(ctx context.Context, input services.CreateDocumentInput) (*models.Document, error) {
	m.lastInput = &input
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func (m *mockDocumentServiceForHandler) Get(ctx context.Context, id uuid.UUID) (*models.Document, *objectstore.Object, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.doc, m.body, nil
}

func (m *mockDocumentServiceForHandler) Update(ctx context.Context, id uuid.UUID, input services.UpdateDocumentInput) (*models.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func (m *mockDocumentServiceForHandler) Delete(ctx context.Context, id uuid.UUID) error {
	return m.err
}

func (m *mockDocumentServiceForHandler) List(ctx context.Context, filter map[string]any, limit, offset int) ([]*models.Document, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.docs, m.total, nil
}

func (m *mockDocumentServiceForHandler) ApplyTransition(ctx context.Context, id uuid.UUID, requested string) (*models.Document, error) {
	m.lastStatus = requested
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func (m *mockDocumentServiceForHandler) CreateWorkingCopy(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

// mockSearchServiceForHandler implements services.SearchService for handler
// tests, recording the forwarded arguments.
type mockSearchServiceForHandler struct {
	response *models.SearchResponse
	err      error

	lastQuery     string
	lastVersionID *uuid.UUID
	lastTags      []string
	lastLimit     int
	lastOffset    int
}

var _ services.SearchService = (*mockSearchServiceForHandler)(nil)

func (m *mockSearchServiceForHandler) Search(ctx context.Context, query string, versionID *uuid.UUID, tags []string, limit, offset int) (*models.SearchResponse, error) {
	m.lastQuery = query
	m.lastVersionID = versionID
	m.lastTags = tags
	m.lastLimit = limit
	m.lastOffset = offset
	if m.err != nil {
		return nil, m.err
	}
	if m.response != nil {
		return m.response, nil
	}
	return &models.SearchResponse{Results: []models.SearchResult{}, Limit: limit, Offset: offset}, nil
}
