package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/graph"
	"github.com/docforge/docforge-engine/pkg/objectstore"
	"github.com/docforge/docforge-engine/pkg/search"
)

// ============================================================================
// In-memory graph store
// ============================================================================

type mockEdge struct {
	from uuid.UUID
	to   uuid.UUID
}

// mockGraphStore is an in-memory graph.Store with the same contract as the
// Postgres implementation: (nil, nil) for missing nodes, CAS on update,
// idempotent edge creation, ErrNotFound on deleting absent edges, and edges
// cascading on node delete.
type mockGraphStore struct {
	nodes     map[uuid.UUID]*graph.Node
	nodeOrder []uuid.UUID
	edges     map[string][]mockEdge

	createNodeErr error
	updateNodeErr error
	createEdgeErr error
	traverseErr   error
}

func newMockGraphStore() *mockGraphStore {
	return &mockGraphStore{
		nodes: make(map[uuid.UUID]*graph.Node),
		edges: make(map[string][]mockEdge),
	}
}

var _ graph.Store = (*mockGraphStore)(nil)

func (m *mockGraphStore) CreateNode(ctx context.Context, label string, props map[string]any) (*graph.Node, error) {
	if m.createNodeErr != nil {
		return nil, m.createNodeErr
	}
	if label == graph.LabelTag {
		for _, n := range m.nodes {
			if n.Label == graph.LabelTag && n.Props["name"] == props["name"] {
				return nil, apperrors.ErrConflict
			}
		}
	}

	now := time.Now()
	node := &graph.Node{
		ID:        uuid.New(),
		Label:     label,
		Props:     props,
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.nodes[node.ID] = node
	m.nodeOrder = append(m.nodeOrder, node.ID)
	return node, nil
}

func (m *mockGraphStore) GetNode(ctx context.Context, label string, id uuid.UUID) (*graph.Node, error) {
	node, ok := m.nodes[id]
	if !ok || node.Label != label {
		return nil, nil
	}
	return node, nil
}

func (m *mockGraphStore) UpdateNode(ctx context.Context, label string, id uuid.UUID, props map[string]any, expectedRevision int64) (*graph.Node, error) {
	if m.updateNodeErr != nil {
		return nil, m.updateNodeErr
	}
	node, ok := m.nodes[id]
	if !ok || node.Label != label {
		return nil, apperrors.ErrNotFound
	}
	if node.Revision != expectedRevision {
		return nil, apperrors.ErrConflict
	}
	node.Props = props
	node.Revision++
	node.UpdatedAt = time.Now()
	return node, nil
}

func (m *mockGraphStore) DeleteNode(ctx context.Context, label string, id uuid.UUID) error {
	node, ok := m.nodes[id]
	if !ok || node.Label != label {
		return apperrors.ErrNotFound
	}
	delete(m.nodes, id)
	for typ, edges := range m.edges {
		var kept []mockEdge
		for _, e := range edges {
			if e.from != id && e.to != id {
				kept = append(kept, e)
			}
		}
		m.edges[typ] = kept
	}
	return nil
}

func (m *mockGraphStore) ListNodes(ctx context.Context, label string, filter map[string]any, limit, offset int) (*graph.ListResult, error) {
	var matches []*graph.Node
	for _, id := range m.nodeOrder {
		node, ok := m.nodes[id]
		if !ok || node.Label != label {
			continue
		}
		matched := true
		for k, v := range filter {
			if node.Props[k] != v {
				matched = false
				break
			}
		}
		if matched {
			matches = append(matches, node)
		}
	}

	total := len(matches)
	if offset > len(matches) {
		offset = len(matches)
	}
	matches = matches[offset:]
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return &graph.ListResult{Items: matches, Total: total}, nil
}

func (m *mockGraphStore) CreateEdge(ctx context.Context, edgeType string, fromID, toID uuid.UUID, props map[string]any) error {
	if m.createEdgeErr != nil {
		return m.createEdgeErr
	}
	for _, e := range m.edges[edgeType] {
		if e.from == fromID && e.to == toID {
			return nil
		}
	}
	m.edges[edgeType] = append(m.edges[edgeType], mockEdge{from: fromID, to: toID})
	return nil
}

func (m *mockGraphStore) DeleteEdge(ctx context.Context, edgeType string, fromID, toID uuid.UUID) error {
	for i, e := range m.edges[edgeType] {
		if e.from == fromID && e.to == toID {
			m.edges[edgeType] = append(m.edges[edgeType][:i], m.edges[edgeType][i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockGraphStore) EdgeExists(ctx context.Context, edgeType string, fromID, toID uuid.UUID) (bool, error) {
	for _, e := range m.edges[edgeType] {
		if e.from == fromID && e.to == toID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockGraphStore) Traverse(ctx context.Context, edgeType string, fromID uuid.UUID, dir graph.Direction) ([]*graph.Node, error) {
	if m.traverseErr != nil {
		return nil, m.traverseErr
	}
	ids, err := m.Neighbors(ctx, edgeType, fromID, dir)
	if err != nil {
		return nil, err
	}
	var nodes []*graph.Node
	for _, id := range ids {
		if node, ok := m.nodes[id]; ok {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

func (m *mockGraphStore) Neighbors(ctx context.Context, edgeType string, fromID uuid.UUID, dir graph.Direction) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, e := range m.edges[edgeType] {
		if dir == graph.DirectionOut && e.from == fromID {
			ids = append(ids, e.to)
		}
		if dir == graph.DirectionIn && e.to == fromID {
			ids = append(ids, e.from)
		}
	}
	return ids, nil
}

// ============================================================================
// In-memory object store
// ============================================================================

type mockObjectStore struct {
	objects map[string]*objectstore.Object

	putErr    error
	getErr    error
	deleteErr error

	deletedKeys []string
}

func newMockObjectStore() *mockObjectStore {
	return &mockObjectStore{objects: make(map[string]*objectstore.Object)}
}

var _ objectstore.Store = (*mockObjectStore)(nil)

func (m *mockObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = &objectstore.Object{Data: data, ContentType: contentType}
	return nil
}

func (m *mockObjectStore) Get(ctx context.Context, key string) (*objectstore.Object, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	obj, ok := m.objects[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return obj, nil
}

func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	m.deletedKeys = append(m.deletedKeys, key)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, key)
	return nil
}

func (m *mockObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.objects[key]
	return ok, nil
}

// ============================================================================
// Search provider
// ============================================================================

type mockSearchProvider struct {
	lastRequest *search.Request
	result      *search.Result
	err         error
}

var _ search.Provider = (*mockSearchProvider)(nil)

func (m *mockSearchProvider) Search(ctx context.Context, req search.Request) (*search.Result, error) {
	m.lastRequest = &req
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &search.Result{}, nil
}
