package importer

import (
	"fmt"
	"strings"

	"github.com/jobvault/jobvault/internal/domain"
)

// DuplicateDetail describes one rejected record: its natural-key fields and a
// human-readable reason.
type DuplicateDetail struct {
	Fields map[string]string `json:"fields"`
	Reason string            `json:"reason"`
}

// foldKey normalizes one component of a composite natural key.
func foldKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// PartitionJobs splits newly parsed jobs into records to insert and
// duplicates. A job duplicates an existing one on case-insensitive trimmed
// (job_title, company, status); rows repeating an earlier row of the same
// import are also flagged. Pure partition — neither input is mutated.
func PartitionJobs(incoming, existing []domain.JobRecord) ([]domain.JobRecord, []DuplicateDetail) {
	seen := make(map[string]bool, len(existing))
	for _, job := range existing {
		seen[jobKey(job)] = true
	}

	toInsert := make([]domain.JobRecord, 0, len(incoming))
	var duplicates []DuplicateDetail
	batch := map[string]bool{}

	for _, job := range incoming {
		key := jobKey(job)
		fields := map[string]string{
			"job_title": job.JobTitle,
			"company":   job.Company,
			"status":    string(job.Status),
		}
		switch {
		case seen[key]:
			duplicates = append(duplicates, DuplicateDetail{
				Fields: fields,
				Reason: fmt.Sprintf("matches an existing %s job %q at %q", job.Status, job.JobTitle, job.Company),
			})
		case batch[key]:
			duplicates = append(duplicates, DuplicateDetail{
				Fields: fields,
				Reason: "repeats an earlier row in this import",
			})
		default:
			batch[key] = true
			toInsert = append(toInsert, job)
		}
	}

	return toInsert, duplicates
}

func jobKey(job domain.JobRecord) string {
	return foldKey(job.JobTitle) + "\x00" + foldKey(job.Company) + "\x00" + foldKey(string(job.Status))
}

// PartitionContacts splits newly parsed contacts into records to insert and
// duplicates. A contact duplicates an existing one on case-insensitive
// trimmed name plus the derived current-role string.
func PartitionContacts(incoming, existing []domain.ContactRecord) ([]domain.ContactRecord, []DuplicateDetail) {
	seen := make(map[string]bool, len(existing))
	for _, contact := range existing {
		seen[contactKey(contact)] = true
	}

	toInsert := make([]domain.ContactRecord, 0, len(incoming))
	var duplicates []DuplicateDetail
	batch := map[string]bool{}

	for _, contact := range incoming {
		key := contactKey(contact)
		fields := map[string]string{
			"name":         contact.Name,
			"current_role": contact.CurrentRole(),
		}
		switch {
		case seen[key]:
			duplicates = append(duplicates, DuplicateDetail{
				Fields: fields,
				Reason: fmt.Sprintf("matches an existing contact %q (%s)", contact.Name, contact.CurrentRole()),
			})
		case batch[key]:
			duplicates = append(duplicates, DuplicateDetail{
				Fields: fields,
				Reason: "repeats an earlier row in this import",
			})
		default:
			batch[key] = true
			toInsert = append(toInsert, contact)
		}
	}

	return toInsert, duplicates
}

func contactKey(contact domain.ContactRecord) string {
	return foldKey(contact.Name) + "\x00" + foldKey(contact.CurrentRole())
}

// PartitionInteractions splits newly parsed interactions into records to
// insert and duplicates. An interaction duplicates an existing one when
// contact_id and date match exactly and the type matches case-insensitively.
func PartitionInteractions(incoming, existing []domain.InteractionRecord) ([]domain.InteractionRecord, []DuplicateDetail) {
	seen := make(map[string]bool, len(existing))
	for _, interaction := range existing {
		seen[interactionKey(interaction)] = true
	}

	toInsert := make([]domain.InteractionRecord, 0, len(incoming))
	var duplicates []DuplicateDetail
	batch := map[string]bool{}

	for _, interaction := range incoming {
		key := interactionKey(interaction)
		fields := map[string]string{
			"contact_id": interaction.ContactID.String(),
			"date":       interaction.Date,
			"type":       string(interaction.Type),
		}
		switch {
		case seen[key]:
			duplicates = append(duplicates, DuplicateDetail{
				Fields: fields,
				Reason: fmt.Sprintf("matches an existing %s interaction with this contact on %s", interaction.Type, interaction.Date),
			})
		case batch[key]:
			duplicates = append(duplicates, DuplicateDetail{
				Fields: fields,
				Reason: "repeats an earlier row in this import",
			})
		default:
			batch[key] = true
			toInsert = append(toInsert, interaction)
		}
	}

	return toInsert, duplicates
}

func interactionKey(interaction domain.InteractionRecord) string {
	return interaction.ContactID.String() + "\x00" + interaction.Date + "\x00" + foldKey(string(interaction.Type))
}
