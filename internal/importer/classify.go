package importer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jobvault/jobvault/internal/csvio"
	"github.com/jobvault/jobvault/internal/domain"
)

// Values the engine treats as absent regardless of column.
var absentValues = map[string]struct{}{
	"":          {},
	`""`:        {},
	"null":      {},
	"NULL":      {},
	"undefined": {},
}

// Per-entity allow-lists. Accepted rows are intersected with these so stray
// or malformed headers never leak into records.
var (
	jobFields = map[string]struct{}{
		"job_title": {}, "company": {}, "location": {}, "salary": {},
		"job_url": {}, "status": {}, "applied_date": {}, "date_added": {},
		"job_description": {}, "notes": {},
	}
	contactFields = map[string]struct{}{
		"name": {}, "email": {}, "phone": {}, "current_location": {},
		"company": {}, "job_title": {}, "linkedin_url": {}, "notes": {},
	}
	interactionFields = map[string]struct{}{
		"contact_id": {}, "type": {}, "date": {}, "summary": {}, "notes": {},
	}

	jobDateFields         = map[string]struct{}{"applied_date": {}, "date_added": {}}
	interactionDateFields = map[string]struct{}{"date": {}}
)

func isAbsent(value string) bool {
	_, absent := absentValues[value]
	return absent
}

// classifyJobs turns parsed data rows into accepted job records. Bad dates
// and unrecognized statuses degrade to defaults with a warning; rows that
// fail the acceptance predicate are skipped and counted, never fatal.
func classifyJobs(userID uuid.UUID, headers []string, rows [][]string) ([]domain.JobRecord, int, []string) {
	var records []domain.JobRecord
	var warnings []string
	skipped := 0

	for idx, raw := range rows {
		rowNumber := idx + 2 // 1-based, after the header row
		padded := csvio.PadRow(raw, len(headers))
		row := map[string]any{}
		realValues := 0

		for i, header := range headers {
			if header == "" {
				continue
			}
			value := strings.TrimSpace(padded[i])
			if isAbsent(value) {
				continue
			}

			switch {
			case header == "status":
				status, recognized := domain.ParseJobStatus(value)
				if !recognized {
					warnings = append(warnings, fmt.Sprintf("row %d: unrecognized status %q, defaulting to %s", rowNumber, value, domain.DefaultJobStatus))
					row[header] = string(domain.DefaultJobStatus)
					continue
				}
				row[header] = string(status)
			case hasKey(jobDateFields, header):
				normalized, valid := csvio.NormalizeDate(value)
				if !valid {
					warnings = append(warnings, fmt.Sprintf("row %d: unparseable date %q in %s", rowNumber, value, header))
					continue
				}
				row[header] = normalized
			case strings.EqualFold(value, "true") || strings.EqualFold(value, "false"):
				row[header] = strings.EqualFold(value, "true")
			default:
				row[header] = value
			}
			realValues++
		}

		// Safety pass: the defaultable field must never end up null.
		if _, present := row["status"]; !present {
			row["status"] = string(domain.DefaultJobStatus)
		}

		if realValues == 0 {
			skipped++
			continue
		}
		if stringField(row, "job_title") == "" || stringField(row, "company") == "" {
			warnings = append(warnings, fmt.Sprintf("row %d skipped: job rows require both job_title and company", rowNumber))
			skipped++
			continue
		}

		sanitize(row, jobFields)

		record := domain.NewJobRecord(userID)
		record.JobTitle = stringField(row, "job_title")
		record.Company = stringField(row, "company")
		record.Location = stringField(row, "location")
		record.Salary = stringField(row, "salary")
		record.JobURL = stringField(row, "job_url")
		record.Status = domain.JobStatus(stringField(row, "status"))
		record.AppliedDate = stringField(row, "applied_date")
		record.DateAdded = stringField(row, "date_added")
		record.JobDescription = stringField(row, "job_description")
		record.Notes = stringField(row, "notes")
		records = append(records, record)
	}

	return records, skipped, warnings
}

// classifyContacts turns parsed data rows into accepted contact records,
// reconstructing flattened experience/education/mutual-connection columns
// before sanitization.
func classifyContacts(userID uuid.UUID, headers []string, rows [][]string) ([]domain.ContactRecord, int, []string) {
	var records []domain.ContactRecord
	var warnings []string
	skipped := 0

	for idx, raw := range rows {
		rowNumber := idx + 2
		padded := csvio.PadRow(raw, len(headers))
		row := map[string]any{}
		realValues := 0

		for i, header := range headers {
			if header == "" {
				continue
			}
			value := strings.TrimSpace(padded[i])
			if isAbsent(value) {
				continue
			}
			if strings.EqualFold(value, "true") || strings.EqualFold(value, "false") {
				row[header] = strings.EqualFold(value, "true")
			} else {
				row[header] = value
			}
			realValues++
		}

		if realValues == 0 {
			skipped++
			continue
		}

		experience, education, mutuals := csvio.ReconstructNested(row)

		if stringField(row, "name") == "" && stringField(row, "email") == "" {
			warnings = append(warnings, fmt.Sprintf("row %d skipped: contact rows require a name or an email", rowNumber))
			skipped++
			continue
		}

		sanitize(row, contactFields)

		record := domain.NewContactRecord(userID)
		record.Name = stringField(row, "name")
		record.Email = stringField(row, "email")
		record.Phone = stringField(row, "phone")
		record.CurrentLocation = stringField(row, "current_location")
		record.Company = stringField(row, "company")
		record.JobTitle = stringField(row, "job_title")
		record.LinkedInURL = stringField(row, "linkedin_url")
		record.Notes = stringField(row, "notes")
		record.Experience = experience
		record.Education = education
		record.MutualConnections = mutuals
		records = append(records, record)
	}

	return records, skipped, warnings
}

// classifyInteractions turns parsed data rows into accepted interaction
// records.
func classifyInteractions(userID uuid.UUID, headers []string, rows [][]string) ([]domain.InteractionRecord, int, []string) {
	var records []domain.InteractionRecord
	var warnings []string
	skipped := 0

	for idx, raw := range rows {
		rowNumber := idx + 2
		padded := csvio.PadRow(raw, len(headers))
		row := map[string]any{}
		realValues := 0
		typeProvided := false

		for i, header := range headers {
			if header == "" {
				continue
			}
			value := strings.TrimSpace(padded[i])
			if isAbsent(value) {
				continue
			}

			switch {
			case header == "type":
				typeProvided = true
				kind, recognized := domain.ParseInteractionType(value)
				if !recognized {
					warnings = append(warnings, fmt.Sprintf("row %d: unrecognized interaction type %q, defaulting to %s", rowNumber, value, domain.DefaultInteractionType))
					row[header] = string(domain.DefaultInteractionType)
					continue
				}
				row[header] = string(kind)
			case hasKey(interactionDateFields, header):
				normalized, valid := csvio.NormalizeDate(value)
				if !valid {
					warnings = append(warnings, fmt.Sprintf("row %d: unparseable date %q in %s", rowNumber, value, header))
					continue
				}
				row[header] = normalized
			case strings.EqualFold(value, "true") || strings.EqualFold(value, "false"):
				row[header] = strings.EqualFold(value, "true")
			default:
				row[header] = value
			}
			realValues++
		}

		if _, present := row["type"]; !present {
			row["type"] = string(domain.DefaultInteractionType)
		}

		if realValues == 0 {
			skipped++
			continue
		}
		contactRaw := stringField(row, "contact_id")
		if contactRaw == "" {
			warnings = append(warnings, fmt.Sprintf("row %d skipped: interaction rows require a contact_id", rowNumber))
			skipped++
			continue
		}
		if !typeProvided && stringField(row, "summary") == "" {
			warnings = append(warnings, fmt.Sprintf("row %d skipped: interaction rows require a type or a summary", rowNumber))
			skipped++
			continue
		}
		contactID, err := uuid.Parse(contactRaw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d skipped: invalid contact_id %q", rowNumber, contactRaw))
			skipped++
			continue
		}

		sanitize(row, interactionFields)

		record := domain.NewInteractionRecord(userID)
		record.ContactID = contactID
		record.Type = domain.InteractionType(stringField(row, "type"))
		record.Date = stringField(row, "date")
		record.Summary = stringField(row, "summary")
		record.Notes = stringField(row, "notes")
		records = append(records, record)
	}

	return records, skipped, warnings
}

// sanitize intersects a row with the entity's allow-list.
func sanitize(row map[string]any, allowed map[string]struct{}) {
	for key := range row {
		if _, keep := allowed[key]; !keep {
			delete(row, key)
		}
	}
}

func stringField(row map[string]any, key string) string {
	if value, ok := row[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func hasKey(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
