package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"lotbook/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func (db *PostgresStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	query := `
		SELECT id, doc
		FROM projects
		ORDER BY created_at
	`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func (db *PostgresStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, invalidID(id)
	}

	query := `
		SELECT id, doc
		FROM projects
		WHERE id = $1
	`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

func (db *PostgresStore) InsertProject(ctx context.Context, p models.Project) (*models.InsertResult, error) {
	doc, err := marshalDoc(p)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO projects (doc)
		VALUES ($1)
		RETURNING id
	`

	var id uuid.UUID
	if err := db.Pool.QueryRow(ctx, query, doc).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}

	db.logger.Info("created project", zap.Stringer("id", id), zap.String("name", p.Name))
	return &models.InsertResult{Acknowledged: true, InsertedID: id.String()}, nil
}

func (db *PostgresStore) UpdateProject(ctx context.Context, id string, p models.Project) (*models.UpdateResult, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, invalidID(id)
	}

	doc, err := marshalDoc(p)
	if err != nil {
		return nil, err
	}

	// doc IS DISTINCT FROM keeps modifiedCount at zero for identical writes.
	query := `
		WITH target AS (
			SELECT id, doc IS DISTINCT FROM $2::jsonb AS changed
			FROM projects
			WHERE id = $1
		), updated AS (
			UPDATE projects
			SET doc = $2::jsonb, updated_at = NOW()
			WHERE id = (SELECT id FROM target WHERE changed)
			RETURNING id
		)
		SELECT
			(SELECT COUNT(*) FROM target),
			(SELECT COUNT(*) FROM updated)
	`

	var matched, modified int64
	if err := db.Pool.QueryRow(ctx, query, projectID, doc).Scan(&matched, &modified); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	db.logger.Info("updated project", zap.String("id", id), zap.Int64("matched", matched))
	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  matched,
		ModifiedCount: modified,
	}, nil
}

func (db *PostgresStore) DeleteProject(ctx context.Context, id string) (*models.DeleteResult, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, invalidID(id)
	}

	query := `DELETE FROM projects WHERE id = $1`

	result, err := db.Pool.Exec(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	db.logger.Info("deleted project", zap.String("id", id), zap.Int64("deleted", result.RowsAffected()))
	return &models.DeleteResult{Acknowledged: true, DeletedCount: result.RowsAffected()}, nil
}

// Helper functions

func marshalDoc(p models.Project) ([]byte, error) {
	p.ID = ""
	doc, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode project: %w", err)
	}
	return doc, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		id  uuid.UUID
		doc []byte
	)
	if err := row.Scan(&id, &doc); err != nil {
		return nil, err
	}

	var project models.Project
	if err := json.Unmarshal(doc, &project); err != nil {
		return nil, fmt.Errorf("failed to decode project %s: %w", id, err)
	}
	project.ID = id.String()
	return &project, nil
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanProjects(rows rowsScanner) ([]models.Project, error) {
	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}
