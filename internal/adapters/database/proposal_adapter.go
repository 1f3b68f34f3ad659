package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
	"github.com/jaassure/proposal-intelligence/internal/domain/repositories"
	"github.com/jaassure/proposal-intelligence/internal/infrastructure/clients/postgres"
	"github.com/jaassure/proposal-intelligence/internal/ingestion"
	apperrors "github.com/jaassure/proposal-intelligence/pkg/errors"
)

const proposalsTable = "proposal_records"

// ProposalAdapter reads raw proposal rows from Postgres for indexing.
type ProposalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProposalAdapter creates a new proposal source adapter.
func NewProposalAdapter(client *postgres.Client) repositories.ProposalSourceRepository {
	return &ProposalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// FetchAll returns every proposal row with its JSON section payloads.
// Section columns come back as text; parsing happens during extraction so a
// malformed payload skips one section instead of failing the whole run.
func (a *ProposalAdapter) FetchAll(ctx context.Context) ([]entities.ProposalRow, error) {
	columns := []any{"quote_id", "risk_location", "user_name", "shop_lifting"}
	for _, section := range ingestion.SectionColumns {
		columns = append(columns, section)
	}

	query, args, err := a.db.From(proposalsTable).
		Select(columns...).
		Order(goqu.I("quote_id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build proposal select query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch proposal rows", err)
	}
	defer rows.Close()

	var result []entities.ProposalRow
	for rows.Next() {
		row, err := scanProposalRow(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan proposal row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate proposal rows", err)
	}

	return result, nil
}

func scanProposalRow(rows *sql.Rows) (entities.ProposalRow, error) {
	var (
		quoteID      string
		riskLocation sql.NullString
		userName     sql.NullString
		shopLifting  sql.NullString
	)

	sections := make([]sql.NullString, len(ingestion.SectionColumns))
	dest := []any{&quoteID, &riskLocation, &userName, &shopLifting}
	for i := range sections {
		dest = append(dest, &sections[i])
	}

	if err := rows.Scan(dest...); err != nil {
		return entities.ProposalRow{}, err
	}

	row := entities.ProposalRow{
		QuoteID:      quoteID,
		RiskLocation: riskLocation.String,
		UserName:     userName.String,
		ShopLifting:  shopLifting.String,
		Sections:     make(map[string]string, len(ingestion.SectionColumns)),
	}
	for i, name := range ingestion.SectionColumns {
		if sections[i].Valid {
			row.Sections[name] = sections[i].String
		}
	}
	return row, nil
}
