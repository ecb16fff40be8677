package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobvault/jobvault/internal/domain"
)

// JobRepository defines the storage operations the interchange engine needs
// for job records: the per-user snapshot used for duplicate detection and
// export, and the bulk insert that lands an accepted import.
type JobRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.JobRecord, error)
	BulkInsert(ctx context.Context, jobs []domain.JobRecord) (int, error)
}

// ContactRepository defines the storage operations for contact records.
type ContactRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ContactRecord, error)
	BulkInsert(ctx context.Context, contacts []domain.ContactRecord) (int, error)
}

// InteractionRepository defines the storage operations for interaction
// records.
type InteractionRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.InteractionRecord, error)
	BulkInsert(ctx context.Context, interactions []domain.InteractionRecord) (int, error)
}
