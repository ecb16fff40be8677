package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobvault/jobvault/internal/domain"
)

// interactionRepository implements InteractionRepository over pgx.
type interactionRepository struct {
	pool *pgxpool.Pool
}

// NewInteractionRepository creates a new interaction repository.
func NewInteractionRepository(pool *pgxpool.Pool) InteractionRepository {
	return &interactionRepository{pool: pool}
}

// ListByUser returns every interaction record owned by the user, oldest
// first.
func (r *interactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.InteractionRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, contact_id, type, date, summary, notes,
		       created_at, updated_at
		FROM interactions
		WHERE user_id = $1
		ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	var interactions []domain.InteractionRecord
	for rows.Next() {
		var interaction domain.InteractionRecord
		if err := rows.Scan(
			&interaction.ID, &interaction.UserID, &interaction.ContactID,
			&interaction.Type, &interaction.Date, &interaction.Summary,
			&interaction.Notes, &interaction.CreatedAt, &interaction.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interaction row: %w", err)
		}
		interactions = append(interactions, interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read interaction rows: %w", err)
	}
	return interactions, nil
}

// BulkInsert lands accepted interaction records in batched multi-row INSERTs
// inside a single transaction. Returns the number of inserted rows.
func (r *interactionRepository) BulkInsert(ctx context.Context, interactions []domain.InteractionRecord) (int, error) {
	if len(interactions) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	const columns = 9
	total := 0
	for start := 0; start < len(interactions); start += maxBulkBatchSize {
		end := start + maxBulkBatchSize
		if end > len(interactions) {
			end = len(interactions)
		}
		batch := interactions[start:end]

		valueParts := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*columns)
		for i, interaction := range batch {
			valueParts = append(valueParts, placeholders(i*columns+1, columns))
			args = append(args,
				interaction.ID, interaction.UserID, interaction.ContactID,
				interaction.Type, interaction.Date, interaction.Summary,
				interaction.Notes, interaction.CreatedAt, interaction.UpdatedAt,
			)
		}

		sql := `INSERT INTO interactions (id, user_id, contact_id, type, date,
			summary, notes, created_at, updated_at)
			VALUES ` + strings.Join(valueParts, ", ")
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to bulk insert interactions: %w", err)
		}
		total += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit bulk insert: %w", err)
	}
	return total, nil
}
