package database

import (
	"context"
	"lotbook/models"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is a process-local Store with ObjectID-style identifiers.
// List returns records in insertion order.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]models.Project
	order    []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]models.Project)}
}

func (s *MemoryStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]models.Project, 0, len(s.order))
	for _, id := range s.order {
		projects = append(projects, s.projects[id])
	}
	return projects, nil
}

func (s *MemoryStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, invalidID(id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) InsertProject(ctx context.Context, p models.Project) (*models.InsertResult, error) {
	p.ID = primitive.NewObjectID().Hex()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[p.ID] = p
	s.order = append(s.order, p.ID)
	return &models.InsertResult{Acknowledged: true, InsertedID: p.ID}, nil
}

func (s *MemoryStore) UpdateProject(ctx context.Context, id string, p models.Project) (*models.UpdateResult, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, invalidID(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.projects[id]
	if !ok {
		return &models.UpdateResult{Acknowledged: true}, nil
	}

	p.ID = id
	result := &models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if current != p {
		s.projects[id] = p
		result.ModifiedCount = 1
	}
	return result, nil
}

func (s *MemoryStore) DeleteProject(ctx context.Context, id string) (*models.DeleteResult, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, invalidID(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return &models.DeleteResult{Acknowledged: true}, nil
	}

	delete(s.projects, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close(ctx context.Context) error { return nil }
