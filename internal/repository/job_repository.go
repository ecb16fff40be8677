package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobvault/jobvault/internal/domain"
)

// maxBulkBatchSize caps rows per INSERT statement so the widest entity stays
// well under PostgreSQL's 65535 bind-parameter limit.
const maxBulkBatchSize = 500

// jobRepository implements JobRepository over pgx.
type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a new job repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

// ListByUser returns every job record owned by the user, oldest first.
func (r *jobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.JobRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, job_title, company, location, salary, job_url,
		       status, applied_date, date_added, job_description, notes,
		       created_at, updated_at
		FROM jobs
		WHERE user_id = $1
		ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.JobRecord
	for rows.Next() {
		var job domain.JobRecord
		if err := rows.Scan(
			&job.ID, &job.UserID, &job.JobTitle, &job.Company, &job.Location,
			&job.Salary, &job.JobURL, &job.Status, &job.AppliedDate,
			&job.DateAdded, &job.JobDescription, &job.Notes,
			&job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job rows: %w", err)
	}
	return jobs, nil
}

// BulkInsert lands accepted job records in batched multi-row INSERTs inside a
// single transaction. Returns the number of inserted rows.
func (r *jobRepository) BulkInsert(ctx context.Context, jobs []domain.JobRecord) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	const columns = 14
	total := 0
	for start := 0; start < len(jobs); start += maxBulkBatchSize {
		end := start + maxBulkBatchSize
		if end > len(jobs) {
			end = len(jobs)
		}
		batch := jobs[start:end]

		valueParts := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*columns)
		for i, job := range batch {
			valueParts = append(valueParts, placeholders(i*columns+1, columns))
			args = append(args,
				job.ID, job.UserID, job.JobTitle, job.Company, job.Location,
				job.Salary, job.JobURL, job.Status, job.AppliedDate,
				job.DateAdded, job.JobDescription, job.Notes,
				job.CreatedAt, job.UpdatedAt,
			)
		}

		sql := `INSERT INTO jobs (id, user_id, job_title, company, location,
			salary, job_url, status, applied_date, date_added,
			job_description, notes, created_at, updated_at)
			VALUES ` + strings.Join(valueParts, ", ")
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to bulk insert jobs: %w", err)
		}
		total += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit bulk insert: %w", err)
	}
	return total, nil
}

// placeholders renders "($n, $n+1, ...)" for one row of a multi-row INSERT.
func placeholders(first, count int) string {
	parts := make([]string, count)
	for i := 0; i < count; i++ {
		parts[i] = fmt.Sprintf("$%d", first+i)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
