package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/jobvault/jobvault/internal/csvio"
	"github.com/jobvault/jobvault/internal/domain"
	"github.com/jobvault/jobvault/internal/repository"
)

// ErrUnsupportedFormat is returned when an uploaded file is not supported.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Service runs CSV/XLSX imports: parse, classify, de-duplicate against the
// user's existing records, and bulk-insert what survives.
type Service struct {
	jobs         repository.JobRepository
	contacts     repository.ContactRepository
	interactions repository.InteractionRepository
	log          *logrus.Logger
}

// NewService creates a new import service.
func NewService(
	jobs repository.JobRepository,
	contacts repository.ContactRepository,
	interactions repository.InteractionRepository,
	log *logrus.Logger,
) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		jobs:         jobs,
		contacts:     contacts,
		interactions: interactions,
		log:          log,
	}
}

// Request describes one import run.
type Request struct {
	UserID   uuid.UUID
	Kind     domain.EntityKind
	FileName string
	Data     io.Reader
}

// Summary reports the best-effort partition of an import: every data row
// lands in exactly one of imported, skipped, or duplicates.
type Summary struct {
	TotalRows        int               `json:"totalRows"`
	Imported         int               `json:"imported"`
	Skipped          int               `json:"skipped"`
	Duplicates       int               `json:"duplicates"`
	DuplicateDetails []DuplicateDetail `json:"duplicateDetails"`
	Warnings         []string          `json:"warnings"`
}

// Import reads the uploaded file, classifies its rows, partitions them
// against the user's existing records, and persists the accepted remainder.
// Per-field and per-row problems degrade to warnings; only unreadable input
// and store failures are returned as errors.
func (s *Service) Import(ctx context.Context, req Request) (Summary, error) {
	if req.UserID == uuid.Nil {
		return Summary{}, errors.New("user id is required")
	}
	if req.Data == nil {
		return Summary{}, errors.New("data reader is required")
	}

	payload, err := io.ReadAll(req.Data)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(payload) == 0 {
		return Summary{}, errors.New("file is empty")
	}

	rows, err := parseRows(req.FileName, payload)
	if err != nil {
		return Summary{}, err
	}
	if len(rows) < 2 {
		return Summary{}, errors.New("file must contain a header row and at least one data row")
	}

	headers, usable := csvio.NormalizeHeaders(rows[0])
	if usable == 0 {
		return Summary{}, errors.New("no valid headers found")
	}
	dataRows := rows[1:]

	var summary Summary
	switch req.Kind {
	case domain.EntityKindJobs:
		summary, err = s.importJobs(ctx, req.UserID, headers, dataRows)
	case domain.EntityKindContacts:
		summary, err = s.importContacts(ctx, req.UserID, headers, dataRows)
	case domain.EntityKindInteractions:
		summary, err = s.importInteractions(ctx, req.UserID, headers, dataRows)
	default:
		return Summary{}, fmt.Errorf("unknown entity kind %q", req.Kind)
	}
	if err != nil {
		return Summary{}, err
	}

	summary.TotalRows = len(dataRows)
	for _, warning := range summary.Warnings {
		s.log.WithFields(logrus.Fields{
			"file": req.FileName,
			"kind": req.Kind,
		}).Warn(warning)
	}
	return summary, nil
}

func (s *Service) importJobs(ctx context.Context, userID uuid.UUID, headers []string, rows [][]string) (Summary, error) {
	records, skipped, warnings := classifyJobs(userID, headers, rows)

	existing, err := s.jobs.ListByUser(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load existing jobs: %w", err)
	}
	toInsert, duplicates := PartitionJobs(records, existing)

	inserted, err := s.jobs.BulkInsert(ctx, toInsert)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to insert jobs: %w", err)
	}

	return Summary{
		Imported:         inserted,
		Skipped:          skipped,
		Duplicates:       len(duplicates),
		DuplicateDetails: duplicates,
		Warnings:         warnings,
	}, nil
}

func (s *Service) importContacts(ctx context.Context, userID uuid.UUID, headers []string, rows [][]string) (Summary, error) {
	records, skipped, warnings := classifyContacts(userID, headers, rows)

	existing, err := s.contacts.ListByUser(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load existing contacts: %w", err)
	}
	toInsert, duplicates := PartitionContacts(records, existing)

	inserted, err := s.contacts.BulkInsert(ctx, toInsert)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to insert contacts: %w", err)
	}

	return Summary{
		Imported:         inserted,
		Skipped:          skipped,
		Duplicates:       len(duplicates),
		DuplicateDetails: duplicates,
		Warnings:         warnings,
	}, nil
}

func (s *Service) importInteractions(ctx context.Context, userID uuid.UUID, headers []string, rows [][]string) (Summary, error) {
	records, skipped, warnings := classifyInteractions(userID, headers, rows)

	existing, err := s.interactions.ListByUser(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load existing interactions: %w", err)
	}
	toInsert, duplicates := PartitionInteractions(records, existing)

	inserted, err := s.interactions.BulkInsert(ctx, toInsert)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to insert interactions: %w", err)
	}

	return Summary{
		Imported:         inserted,
		Skipped:          skipped,
		Duplicates:       len(duplicates),
		DuplicateDetails: duplicates,
		Warnings:         warnings,
	}, nil
}

func parseRows(fileName string, payload []byte) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv", "":
		return csvio.Parse(string(payload)), nil
	case ".xlsx":
		return parseExcel(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func parseExcel(payload []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return filterBlankRows(rows), nil
}

// filterBlankRows mirrors the tokenizer's all-blank-row policy for the xlsx
// path.
func filterBlankRows(rows [][]string) [][]string {
	var filtered [][]string
	for _, row := range rows {
		keep := false
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				keep = true
				break
			}
		}
		if keep {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
