package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jobvault/jobvault/internal/csvio"
	"github.com/jobvault/jobvault/internal/domain"
	"github.com/jobvault/jobvault/internal/repository"
)

// Export column order per entity. Contacts additionally carry the flattened
// experience/education/mutual-connection columns appended at export time.
var (
	jobExportFields = []string{
		"job_title", "company", "location", "salary", "job_url", "status",
		"applied_date", "date_added", "job_description", "notes",
	}
	contactExportFields = []string{
		"name", "email", "phone", "current_location", "company", "job_title",
		"linkedin_url", "notes",
	}
	interactionExportFields = []string{
		"contact_id", "type", "date", "summary", "notes",
	}
)

// Document is a rendered export: CSV text plus the filename handed to the
// download collaborator.
type Document struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Service renders a user's records as downloadable CSV documents.
type Service struct {
	jobs         repository.JobRepository
	contacts     repository.ContactRepository
	interactions repository.InteractionRepository
	log          *logrus.Logger
}

// NewService creates a new export service.
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

// Export renders every record of the requested kind owned by the user.
func (s *Service) Export(ctx context.Context, userID uuid.UUID, kind domain.EntityKind) (Document, error) {
	if userID == uuid.Nil {
		return Document{}, errors.New("user id is required")
	}

	var doc Document
	var err error
	switch kind {
	case domain.EntityKindJobs:
		doc, err = s.exportJobs(ctx, userID)
	case domain.EntityKindContacts:
		doc, err = s.exportContacts(ctx, userID)
	case domain.EntityKindInteractions:
		doc, err = s.exportInteractions(ctx, userID)
	default:
		return Document{}, fmt.Errorf("unknown entity kind %q", kind)
	}
	if err != nil {
		return Document{}, err
	}

	s.log.WithFields(logrus.Fields{
		"kind": kind,
		"file": doc.Filename,
	}).Info("export rendered")
	return doc, nil
}

func (s *Service) exportJobs(ctx context.Context, userID uuid.UUID) (Document, error) {
	jobs, err := s.jobs.ListByUser(ctx, userID)
	if err != nil {
		return Document{}, fmt.Errorf("failed to load jobs: %w", err)
	}

	rows := make([]map[string]string, len(jobs))
	for i, job := range jobs {
		rows[i] = map[string]string{
			"job_title":       job.JobTitle,
			"company":         job.Company,
			"location":        job.Location,
			"salary":          job.Salary,
			"job_url":         job.JobURL,
			"status":          string(job.Status),
			"applied_date":    job.AppliedDate,
			"date_added":      job.DateAdded,
			"job_description": job.JobDescription,
			"notes":           job.Notes,
		}
	}

	return Document{
		Filename: "jobs.csv",
		Content:  csvio.Serialize(jobExportFields, rows),
	}, nil
}

func (s *Service) exportContacts(ctx context.Context, userID uuid.UUID) (Document, error) {
	contacts, err := s.contacts.ListByUser(ctx, userID)
	if err != nil {
		return Document{}, fmt.Errorf("failed to load contacts: %w", err)
	}

	flatHeaders, flatRows := csvio.FlattenContacts(contacts)
	fields := append(append([]string{}, contactExportFields...), flatHeaders...)

	rows := make([]map[string]string, len(contacts))
	for i, contact := range contacts {
		row := map[string]string{
			"name":             contact.Name,
			"email":            contact.Email,
			"phone":            contact.Phone,
			"current_location": contact.CurrentLocation,
			"company":          contact.Company,
			"job_title":        contact.JobTitle,
			"linkedin_url":     contact.LinkedInURL,
			"notes":            contact.Notes,
		}
		for key, value := range flatRows[i] {
			row[key] = value
		}
		rows[i] = row
	}

	return Document{
		Filename: "contacts.csv",
		Content:  csvio.Serialize(fields, rows),
	}, nil
}

func (s *Service) exportInteractions(ctx context.Context, userID uuid.UUID) (Document, error) {
	interactions, err := s.interactions.ListByUser(ctx, userID)
	if err != nil {
		return Document{}, fmt.Errorf("failed to load interactions: %w", err)
	}

	rows := make([]map[string]string, len(interactions))
	for i, interaction := range interactions {
		rows[i] = map[string]string{
			"contact_id": interaction.ContactID.String(),
			"type":       string(interaction.Type),
			"date":       interaction.Date,
			"summary":    interaction.Summary,
			"notes":      interaction.Notes,
		}
	}

	return Document{
		Filename: "interactions.csv",
		Content:  csvio.Serialize(interactionExportFields, rows),
	}, nil
}
