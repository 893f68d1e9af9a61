package database

import (
	"context"
	"errors"
	"lotbook/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var storeOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "lotbook",
		Name:      "store_operations_total",
		Help:      "Store calls by operation and result",
	},
	[]string{"op", "result"},
)

// Instrument wraps a Store so each call is counted in
// lotbook_store_operations_total.
func Instrument(s Store) Store {
	if _, ok := s.(*instrumentedStore); ok {
		return s
	}
	return &instrumentedStore{Store: s}
}

type instrumentedStore struct {
	Store
}

func observe(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case errors.Is(err, ErrInvalidID):
		result = "invalid_id"
	default:
		result = "error"
	}
	storeOperations.WithLabelValues(op, result).Inc()
}

func (s *instrumentedStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.Store.ListProjects(ctx)
	observe("list", err)
	return projects, err
}

func (s *instrumentedStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	p, err := s.Store.GetProject(ctx, id)
	observe("get", err)
	return p, err
}

func (s *instrumentedStore) InsertProject(ctx context.Context, p models.Project) (*models.InsertResult, error) {
	res, err := s.Store.InsertProject(ctx, p)
	observe("insert", err)
	return res, err
}

func (s *instrumentedStore) UpdateProject(ctx context.Context, id string, p models.Project) (*models.UpdateResult, error) {
	res, err := s.Store.UpdateProject(ctx, id, p)
	observe("update", err)
	return res, err
}

func (s *instrumentedStore) DeleteProject(ctx context.Context, id string) (*models.DeleteResult, error) {
	res, err := s.Store.DeleteProject(ctx, id)
	observe("delete", err)
	return res, err
}
