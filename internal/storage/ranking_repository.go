package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"model_rankings/internal/models"
)

// RankingRepository persists aggregated ranking records to the
// model_rankings table. Used by the one-off import tooling; the serving
// path reads from the cache tiers, not from here.
type RankingRepository struct {
	db *DB
}

// NewRankingRepository creates a repository over an open database.
func NewRankingRepository(db *DB) *RankingRepository {
	return &RankingRepository{db: db}
}

// rankingRow is the flat table shape; benchmarks and source flags land in
// jsonb columns.
type rankingRow struct {
	RowID          uuid.UUID `db:"row_id"`
	Slug           string    `db:"slug"`
	Name           string    `db:"name"`
	Provider       string    `db:"provider"`
	CompositeScore float64   `db:"composite_score"`
	CompositeRank  int       `db:"composite_rank"`
	PromptCost     float64   `db:"prompt_cost"`
	CompletionCost float64   `db:"completion_cost"`
	Currency       string    `db:"currency"`
	ContextLength  int       `db:"context_length"`
	Modality       string    `db:"modality"`
	Availability   string    `db:"availability"`
	Featured       bool      `db:"featured"`
	Benchmarks     []byte    `db:"benchmarks"`
	Sources        []byte    `db:"sources"`
	LastUpdated    time.Time `db:"last_updated"`
	CreatedAt      time.Time `db:"created_at"`
}

// Upsert writes one ranking record, replacing any previous row with the
// same slug.
func (r *RankingRepository) Upsert(ctx context.Context, ranking *models.ModelRanking) error {
	return upsertRanking(ctx, r.db.Conn(), ranking)
}

func upsertRanking(ctx context.Context, ext sqlx.ExtContext, ranking *models.ModelRanking) error {
	benchmarks, err := json.Marshal(ranking.Benchmarks)
	if err != nil {
		return fmt.Errorf("failed to marshal benchmarks for %s: %w", ranking.ID, err)
	}
	sources, err := json.Marshal(ranking.Sources)
	if err != nil {
		return fmt.Errorf("failed to marshal sources for %s: %w", ranking.ID, err)
	}

	row := rankingRow{
		RowID:          uuid.New(),
		Slug:           ranking.ID,
		Name:           ranking.Name,
		Provider:       ranking.Provider,
		CompositeScore: ranking.CompositeScore,
		CompositeRank:  ranking.CompositeRank,
		PromptCost:     ranking.Pricing.PromptCost,
		CompletionCost: ranking.Pricing.CompletionCost,
		Currency:       ranking.Pricing.Currency,
		ContextLength:  ranking.Metadata.ContextLength,
		Modality:       string(ranking.Metadata.Modality),
		Availability:   string(ranking.Metadata.Availability),
		Featured:       ranking.Metadata.Featured,
		Benchmarks:     benchmarks,
		Sources:        sources,
		LastUpdated:    ranking.LastUpdated,
		CreatedAt:      ranking.CreatedAt,
	}

	query := `
		INSERT INTO model_rankings (
			row_id, slug, name, provider, composite_score, composite_rank,
			prompt_cost, completion_cost, currency, context_length,
			modality, availability, featured, benchmarks, sources,
			last_updated, created_at
		) VALUES (
			:row_id, :slug, :name, :provider, :composite_score, :composite_rank,
			:prompt_cost, :completion_cost, :currency, :context_length,
			:modality, :availability, :featured, :benchmarks, :sources,
			:last_updated, :created_at
		)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			provider = EXCLUDED.provider,
			composite_score = EXCLUDED.composite_score,
			composite_rank = EXCLUDED.composite_rank,
			prompt_cost = EXCLUDED.prompt_cost,
			completion_cost = EXCLUDED.completion_cost,
			currency = EXCLUDED.currency,
			context_length = EXCLUDED.context_length,
			modality = EXCLUDED.modality,
			availability = EXCLUDED.availability,
			featured = EXCLUDED.featured,
			benchmarks = EXCLUDED.benchmarks,
			sources = EXCLUDED.sources,
			last_updated = EXCLUDED.last_updated`

	if _, err := sqlx.NamedExecContext(ctx, ext, query, row); err != nil {
		return fmt.Errorf("failed to upsert ranking %s: %w", ranking.ID, err)
	}
	return nil
}

// UpsertAll writes a whole batch inside one transaction.
func (r *RankingRepository) UpsertAll(ctx context.Context, rankings []models.ModelRanking) error {
	tx, err := r.db.Conn().BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range rankings {
		if err := upsertRanking(ctx, tx, &rankings[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Count returns the number of persisted ranking rows.
func (r *RankingRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.Conn().GetContext(ctx, &count, "SELECT COUNT(*) FROM model_rankings"); err != nil {
		return 0, fmt.Errorf("failed to count rankings: %w", err)
	}
	return count, nil
}
