package repositories

import (
	"context"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

// ProposalSourceRepository reads raw proposal rows from the source database
// during indexing.
type ProposalSourceRepository interface {
	// FetchAll returns every proposal row with its JSON section payloads.
	FetchAll(ctx context.Context) ([]entities.ProposalRow, error)
}
