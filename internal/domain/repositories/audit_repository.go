package repositories

import (
	"context"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

// AuditRepository persists query audit records.
type AuditRepository interface {
	Create(ctx context.Context, audit *entities.QueryAudit) error
}
