package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobvault/jobvault/internal/domain"
)

// contactRepository implements ContactRepository over pgx. The nested
// experience/education/mutual-connection collections are stored as JSONB.
type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

// ListByUser returns every contact record owned by the user, oldest first.
func (r *contactRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ContactRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, email, phone, current_location, company,
		       job_title, linkedin_url, notes, experience, education,
		       mutual_connections, created_at, updated_at
		FROM contacts
		WHERE user_id = $1
		ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.ContactRecord
	for rows.Next() {
		var contact domain.ContactRecord
		var experience, education, mutuals []byte
		if err := rows.Scan(
			&contact.ID, &contact.UserID, &contact.Name, &contact.Email,
			&contact.Phone, &contact.CurrentLocation, &contact.Company,
			&contact.JobTitle, &contact.LinkedInURL, &contact.Notes,
			&experience, &education, &mutuals,
			&contact.CreatedAt, &contact.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		if err := decodeJSONB(experience, &contact.Experience); err != nil {
			return nil, fmt.Errorf("failed to decode experience for contact %s: %w", contact.ID, err)
		}
		if err := decodeJSONB(education, &contact.Education); err != nil {
			return nil, fmt.Errorf("failed to decode education for contact %s: %w", contact.ID, err)
		}
		if err := decodeJSONB(mutuals, &contact.MutualConnections); err != nil {
			return nil, fmt.Errorf("failed to decode mutual connections for contact %s: %w", contact.ID, err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contact rows: %w", err)
	}
	return contacts, nil
}

// BulkInsert lands accepted contact records in batched multi-row INSERTs
// inside a single transaction. Returns the number of inserted rows.
func (r *contactRepository) BulkInsert(ctx context.Context, contacts []domain.ContactRecord) (int, error) {
	if len(contacts) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	const columns = 15
	total := 0
	for start := 0; start < len(contacts); start += maxBulkBatchSize {
		end := start + maxBulkBatchSize
		if end > len(contacts) {
			end = len(contacts)
		}
		batch := contacts[start:end]

		valueParts := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*columns)
		for i, contact := range batch {
			experience, err := encodeJSONB(contact.Experience)
			if err != nil {
				return 0, fmt.Errorf("failed to encode experience for contact %s: %w", contact.ID, err)
			}
			education, err := encodeJSONB(contact.Education)
			if err != nil {
				return 0, fmt.Errorf("failed to encode education for contact %s: %w", contact.ID, err)
			}
			mutuals, err := encodeJSONB(contact.MutualConnections)
			if err != nil {
				return 0, fmt.Errorf("failed to encode mutual connections for contact %s: %w", contact.ID, err)
			}

			valueParts = append(valueParts, placeholders(i*columns+1, columns))
			args = append(args,
				contact.ID, contact.UserID, contact.Name, contact.Email,
				contact.Phone, contact.CurrentLocation, contact.Company,
				contact.JobTitle, contact.LinkedInURL, contact.Notes,
				experience, education, mutuals,
				contact.CreatedAt, contact.UpdatedAt,
			)
		}

		sql := `INSERT INTO contacts (id, user_id, name, email, phone,
			current_location, company, job_title, linkedin_url, notes,
			experience, education, mutual_connections, created_at, updated_at)
			VALUES ` + strings.Join(valueParts, ", ")
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to bulk insert contacts: %w", err)
		}
		total += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit bulk insert: %w", err)
	}
	return total, nil
}

// encodeJSONB marshals a nested collection, normalizing nil to an empty JSON
// array so the column never stores SQL NULL.
func encodeJSONB(value any) ([]byte, error) {
	switch v := value.(type) {
	case []domain.ExperienceEntry:
		if v == nil {
			return []byte("[]"), nil
		}
	case []domain.EducationEntry:
		if v == nil {
			return []byte("[]"), nil
		}
	case []string:
		if v == nil {
			return []byte("[]"), nil
		}
	}
	return json.Marshal(value)
}

func decodeJSONB(raw []byte, target any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}
