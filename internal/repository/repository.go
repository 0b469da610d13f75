package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"farmagent/internal/config"
	"farmagent/internal/model"

	"github.com/pgvector/pgvector-go"
)

// ErrNotFound is returned when feedback names an unknown interaction
var ErrNotFound = errors.New("interaction not found")

// Repository stores interaction analytics. Conversation context is never persisted.
type Repository interface {
	LogInteraction(ctx context.Context, it *model.Interaction) error
	LogFeedback(ctx context.Context, interactionID, action string) error
	// SimilarDiagnoses returns past diagnoses of crop ordered by symptom-vector distance
	SimilarDiagnoses(ctx context.Context, crop string, vec pgvector.Vector, limit int) ([]model.SimilarCase, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open returns the repository selected by DB_DRIVER
func Open(cfg *config.Config) (Repository, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return NewPostgresRepository(cfg.GetPostgreSQLDSN(), cfg.Database.MaxConnections, cfg.Database.MaxIdleConnections)
	case config.DriverSQLite:
		return NewSQLiteRepository(cfg.Database.SQLitePath)
	case config.DriverNone, "":
		return NoopRepository{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// NoopRepository discards everything; used when no database is configured
type NoopRepository struct{}

func (NoopRepository) LogInteraction(context.Context, *model.Interaction) error { return nil }

func (NoopRepository) LogFeedback(context.Context, string, string) error { return nil }

func (NoopRepository) SimilarDiagnoses(context.Context, string, pgvector.Vector, int) ([]model.SimilarCase, error) {
	return nil, nil
}

func (NoopRepository) Ping(context.Context) error { return nil }

func (NoopRepository) Close() error { return nil }

// l2Distance is the Euclidean distance pgvector's <-> operator computes
func l2Distance(a, b []float32) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		var x, y float64
		if i < len(a) {
			x = float64(a[i])
		}
		if i < len(b) {
			y = float64(b[i])
		}
		sum += (x - y) * (x - y)
	}
	return math.Sqrt(sum)
}
