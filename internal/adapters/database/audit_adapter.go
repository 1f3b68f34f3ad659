package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
	"github.com/jaassure/proposal-intelligence/internal/domain/repositories"
	"github.com/jaassure/proposal-intelligence/internal/infrastructure/clients/postgres"
	apperrors "github.com/jaassure/proposal-intelligence/pkg/errors"
)

// AuditAdapter implements query audit persistence in Postgres.
type AuditAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAuditAdapter creates a new audit adapter.
func NewAuditAdapter(client *postgres.Client) repositories.AuditRepository {
	return &AuditAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts one audit record.
func (a *AuditAdapter) Create(ctx context.Context, audit *entities.QueryAudit) error {
	if audit == nil {
		return apperrors.NewInternalError("audit is nil", fmt.Errorf("audit is nil"))
	}

	record := goqu.Record{
		"id":                   audit.ID,
		"timestamp":            audit.Timestamp,
		"session_id":           audit.SessionID,
		"query":                audit.Query,
		"query_type":           audit.QueryType,
		"quote_id_extracted":   audit.QuoteIDExtracted,
		"num_chunks_retrieved": audit.NumChunksRetrieved,
		"top_similarity_score": audit.TopSimilarityScore,
		"answer_length":        audit.AnswerLength,
	}

	query, args, err := a.db.Insert("query_audit").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build audit insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create audit record", err)
	}

	return nil
}
