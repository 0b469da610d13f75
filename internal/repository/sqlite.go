package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"farmagent/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
	_ "modernc.org/sqlite"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS interactions (
	id               TEXT PRIMARY KEY,
	kind             TEXT NOT NULL,
	query            TEXT,
	intent           TEXT,
	entities         TEXT,
	crop             TEXT,
	symptoms         TEXT,
	top_candidate    TEXT,
	confidence       REAL,
	ai_assisted      INTEGER NOT NULL DEFAULT 0,
	symptom_vector   TEXT,
	response_time_ms INTEGER NOT NULL DEFAULT 0,
	action           TEXT,
	created_at       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_interactions_kind_crop ON interactions(kind, crop COLLATE NOCASE);
`

// SQLiteRepository stores interactions in a local SQLite file.
// Symptom vectors are kept as text and compared in Go.
type SQLiteRepository struct {
	db *sqlx.DB
}

// NewSQLiteRepository opens (creating if needed) the database at path
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single writer avoids SQLITE_BUSY under concurrent async logging
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ping checks the database is reachable
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// sqliteInteraction mirrors model.Interaction with a unix timestamp
type sqliteInteraction struct {
	*model.Interaction
	CreatedAtUnix int64 `db:"created_at_unix"`
}

// LogInteraction records one chat turn or diagnosis
func (r *SQLiteRepository) LogInteraction(ctx context.Context, it *model.Interaction) error {
	query := `
		INSERT INTO interactions (
			id, kind, query, intent, entities, crop, symptoms, top_candidate,
			confidence, ai_assisted, symptom_vector, response_time_ms, created_at
		) VALUES (
			:id, :kind, :query, :intent, :entities, :crop, :symptoms, :top_candidate,
			:confidence, :ai_assisted, :symptom_vector, :response_time_ms, :created_at_unix
		)
	`
	row := sqliteInteraction{Interaction: it, CreatedAtUnix: it.CreatedAt.UnixNano()}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to log interaction: %w", err)
	}
	return nil
}

// LogFeedback attaches a user action to a logged interaction
func (r *SQLiteRepository) LogFeedback(ctx context.Context, interactionID, action string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE interactions SET action = ? WHERE id = ?`, action, interactionID)
	if err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type sqliteCaseRow struct {
	ID            string          `db:"id"`
	Crop          string          `db:"crop"`
	TopCandidate  string          `db:"top_candidate"`
	Confidence    float64         `db:"confidence"`
	SymptomVector pgvector.Vector `db:"symptom_vector"`
	CreatedAt     int64           `db:"created_at"`
}

// SimilarDiagnoses finds past diagnoses of the same crop nearest to vec
func (r *SQLiteRepository) SimilarDiagnoses(ctx context.Context, crop string, vec pgvector.Vector, limit int) ([]model.SimilarCase, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := `
		SELECT id, crop, top_candidate, confidence, symptom_vector, created_at
		FROM interactions
		WHERE kind = ?
			AND crop = ? COLLATE NOCASE
			AND symptom_vector IS NOT NULL
			AND top_candidate IS NOT NULL
			AND confidence IS NOT NULL
	`
	var rows []sqliteCaseRow
	if err := r.db.SelectContext(ctx, &rows, query, model.InteractionDiagnosis, crop); err != nil {
		return nil, fmt.Errorf("failed to find similar diagnoses: %w", err)
	}

	target := vec.Slice()
	cases := make([]model.SimilarCase, 0, len(rows))
	for _, row := range rows {
		cases = append(cases, model.SimilarCase{
			InteractionID: row.ID,
			Crop:          row.Crop,
			TopCandidate:  row.TopCandidate,
			Confidence:    row.Confidence,
			Distance:      l2Distance(target, row.SymptomVector.Slice()),
			CreatedAt:     time.Unix(0, row.CreatedAt).UTC(),
		})
	}

	sort.SliceStable(cases, func(i, j int) bool {
		if cases[i].Distance != cases[j].Distance {
			return cases[i].Distance < cases[j].Distance
		}
		return cases[i].CreatedAt.After(cases[j].CreatedAt)
	})
	if len(cases) > limit {
		cases = cases[:limit]
	}
	return cases, nil
}
