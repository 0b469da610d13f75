package repository

import (
	"context"
	"fmt"
	"time"

	"farmagent/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

const postgresSchema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS interactions (
	id               UUID PRIMARY KEY,
	kind             TEXT NOT NULL,
	query            TEXT,
	intent           TEXT,
	entities         JSONB,
	crop             TEXT,
	symptoms         JSONB,
	top_candidate    TEXT,
	confidence       DOUBLE PRECISION,
	ai_assisted      BOOLEAN NOT NULL DEFAULT FALSE,
	symptom_vector   vector(8),
	response_time_ms INTEGER NOT NULL DEFAULT 0,
	action           TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_interactions_kind_crop ON interactions (kind, LOWER(crop));
`

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository and ensures its schema
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping checks the connection
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// LogInteraction records one chat turn or diagnosis
func (r *PostgresRepository) LogInteraction(ctx context.Context, it *model.Interaction) error {
	query := `
		INSERT INTO interactions (
			id, kind, query, intent, entities, crop, symptoms, top_candidate,
			confidence, ai_assisted, symptom_vector, response_time_ms, created_at
		) VALUES (
			:id, :kind, :query, :intent, :entities, :crop, :symptoms, :top_candidate,
			:confidence, :ai_assisted, :symptom_vector, :response_time_ms, :created_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, it); err != nil {
		return fmt.Errorf("failed to log interaction: %w", err)
	}
	return nil
}

// LogFeedback attaches a user action to a logged interaction
func (r *PostgresRepository) LogFeedback(ctx context.Context, interactionID, action string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE interactions SET action = $2 WHERE id = $1`, interactionID, action)
	if err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SimilarDiagnoses finds past diagnoses of the same crop nearest to vec
func (r *PostgresRepository) SimilarDiagnoses(ctx context.Context, crop string, vec pgvector.Vector, limit int) ([]model.SimilarCase, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := `
		SELECT id, crop, top_candidate, confidence,
			symptom_vector <-> $1 AS distance, created_at
		FROM interactions
		WHERE kind = $2
			AND LOWER(crop) = LOWER($3)
			AND symptom_vector IS NOT NULL
			AND top_candidate IS NOT NULL
			AND confidence IS NOT NULL
		ORDER BY distance, created_at DESC
		LIMIT $4
	`
	var cases []model.SimilarCase
	if err := r.db.SelectContext(ctx, &cases, query, vec, model.InteractionDiagnosis, crop, limit); err != nil {
		return nil, fmt.Errorf("failed to find similar diagnoses: %w", err)
	}
	return cases, nil
}
