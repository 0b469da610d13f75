package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"farmagent/internal/config"
	"farmagent/internal/model"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "farm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func ptr[T any](v T) *T { return &v }

func diagnosisRecord(crop, top string, confidence float64, vec []float32, at time.Time) *model.Interaction {
	v := pgvector.NewVector(vec)
	return &model.Interaction{
		ID:            uuid.NewString(),
		Kind:          model.InteractionDiagnosis,
		Crop:          ptr(crop),
		Symptoms:      model.JSONArray{"Leaf curl"},
		TopCandidate:  ptr(top),
		Confidence:    ptr(confidence),
		SymptomVector: &v,
		CreatedAt:     at,
	}
}

func TestSQLiteLogChatAndFeedback(t *testing.T) {
	repo := newTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, repo.Ping(ctx))

	chat := &model.Interaction{
		ID:        uuid.NewString(),
		Kind:      model.InteractionChat,
		Query:     ptr("Will it rain tomorrow?"),
		Intent:    ptr("weather"),
		Entities:  model.EntitiesToJSONMap(model.EntityBag{model.EntityTimeframes: {"tomorrow"}}),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.LogInteraction(ctx, chat))

	require.NoError(t, repo.LogFeedback(ctx, chat.ID, "helpful"))

	var action string
	require.NoError(t, repo.db.GetContext(ctx, &action, `SELECT action FROM interactions WHERE id = ?`, chat.ID))
	assert.Equal(t, "helpful", action)

	var entities model.JSONMap
	require.NoError(t, repo.db.GetContext(ctx, &entities, `SELECT entities FROM interactions WHERE id = ?`, chat.ID))
	assert.Equal(t, []interface{}{"tomorrow"}, entities["timeframes"])

	err := repo.LogFeedback(ctx, uuid.NewString(), "helpful")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteSimilarDiagnoses(t *testing.T) {
	repo := newTestSQLite(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	records := []*model.Interaction{
		diagnosisRecord("Tomato", "Viral Leaf Curl (vector: whiteflies)", 0.74, []float32{0, 0, 0, 0, 1, 0, 0, 0}, base),
		diagnosisRecord("tomato", "Nitrogen Deficiency", 0.72, []float32{1, 0, 0, 0, 1, 0, 0, 0}, base.Add(time.Hour)),
		diagnosisRecord("Tomato", "Leaf Spot (Fungal)", 0.68, []float32{0, 1, 0, 0, 0, 0, 0, 0}, base.Add(2*time.Hour)),
		diagnosisRecord("Wheat", "Viral Leaf Curl (vector: whiteflies)", 0.64, []float32{0, 0, 0, 0, 1, 0, 0, 0}, base),
	}
	for _, r := range records {
		require.NoError(t, repo.LogInteraction(ctx, r))
	}
	// Chat rows have no vector and are never returned
	require.NoError(t, repo.LogInteraction(ctx, &model.Interaction{ID: uuid.NewString(), Kind: model.InteractionChat, Crop: ptr("Tomato"), CreatedAt: base}))

	query := pgvector.NewVector([]float32{0, 0, 0, 0, 1, 0, 0, 0})
	cases, err := repo.SimilarDiagnoses(ctx, "TOMATO", query, 2)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, records[0].ID, cases[0].InteractionID)
	assert.Equal(t, 0.0, cases[0].Distance)
	assert.Equal(t, base, cases[0].CreatedAt)
	assert.Equal(t, records[1].ID, cases[1].InteractionID)
	assert.InDelta(t, 1.0, cases[1].Distance, 1e-9)

	cases, err = repo.SimilarDiagnoses(ctx, "Rice", query, 5)
	require.NoError(t, err)
	assert.Empty(t, cases)

	cases, err = repo.SimilarDiagnoses(ctx, "Tomato", query, 0)
	require.NoError(t, err)
	assert.Nil(t, cases)
}

func TestOpen(t *testing.T) {
	repo, err := Open(&config.Config{Database: config.DatabaseConfig{Driver: config.DriverNone}})
	require.NoError(t, err)
	assert.IsType(t, NoopRepository{}, repo)
	assert.NoError(t, repo.LogInteraction(context.Background(), &model.Interaction{}))

	repo, err = Open(&config.Config{Database: config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "open.db"),
	}})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepository{}, repo)
	assert.NoError(t, repo.Close())

	_, err = Open(&config.Config{Database: config.DatabaseConfig{Driver: "oracle"}})
	assert.Error(t, err)
}

func TestL2Distance(t *testing.T) {
	assert.Equal(t, 0.0, l2Distance([]float32{1, 0}, []float32{1, 0}))
	assert.InDelta(t, 1.4142135, l2Distance([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.Equal(t, 1.0, l2Distance([]float32{1}, nil))
}
