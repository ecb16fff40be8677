package importer

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jobvault/jobvault/internal/domain"
)

func TestClassifyJobsAcceptsValidRow(t *testing.T) {
	userID := uuid.New()
	headers := []string{"job_title", "company", "status", "applied_date"}
	rows := [][]string{
		{"Engineer", "Acme", "applied", "13/05/2024"},
	}

	records, skipped, warnings := classifyJobs(userID, headers, rows)
	if len(records) != 1 || skipped != 0 {
		t.Fatalf("expected 1 record and 0 skipped, got %d and %d", len(records), skipped)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}

	job := records[0]
	if job.UserID != userID {
		t.Errorf("expected record owned by user")
	}
	if job.Status != domain.JobStatusApplied {
		t.Errorf("expected canonical status Applied, got %q", job.Status)
	}
	if job.AppliedDate != "2024-05-13" {
		t.Errorf("expected normalized date, got %q", job.AppliedDate)
	}
	if job.ID == uuid.Nil {
		t.Errorf("expected generated record id")
	}
}

func TestClassifyJobsDefaultsUnrecognizedStatus(t *testing.T) {
	headers := []string{"job_title", "company", "status"}
	rows := [][]string{
		{"Engineer", "Acme", "daydreaming"},
	}

	records, _, warnings := classifyJobs(uuid.New(), headers, rows)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Status != domain.DefaultJobStatus {
		t.Errorf("expected default status, got %q", records[0].Status)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "unrecognized status") {
		t.Errorf("expected a status warning, got %v", warnings)
	}
}

func TestClassifyJobsDefaultsMissingStatus(t *testing.T) {
	headers := []string{"job_title", "company"}
	rows := [][]string{
		{"Engineer", "Acme"},
	}

	records, _, _ := classifyJobs(uuid.New(), headers, rows)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Status != domain.DefaultJobStatus {
		t.Errorf("expected default status for missing column, got %q", records[0].Status)
	}
}

func TestClassifyJobsSkipsIncompleteRows(t *testing.T) {
	headers := []string{"job_title", "company", "notes"}
	rows := [][]string{
		{"Engineer", "", "missing company"},
		{"", "Acme", "missing title"},
		{"null", "NULL", "undefined"},
	}

	records, skipped, warnings := classifyJobs(uuid.New(), headers, rows)
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if skipped != 3 {
		t.Errorf("expected 3 skipped, got %d", skipped)
	}
	if len(warnings) < 2 {
		t.Errorf("expected warnings for the predicate failures, got %v", warnings)
	}
}

func TestClassifyJobsDropsBadDatesWithWarning(t *testing.T) {
	headers := []string{"job_title", "company", "applied_date"}
	rows := [][]string{
		{"Engineer", "Acme", "not a date"},
	}

	records, _, warnings := classifyJobs(uuid.New(), headers, rows)
	if len(records) != 1 {
		t.Fatalf("expected record kept despite bad date, got %d", len(records))
	}
	if records[0].AppliedDate != "" {
		t.Errorf("expected bad date dropped, got %q", records[0].AppliedDate)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "unparseable date") {
		t.Errorf("expected date warning, got %v", warnings)
	}
}

func TestClassifyJobsIgnoresUnknownColumns(t *testing.T) {
	headers := []string{"job_title", "company", "favorite_color"}
	rows := [][]string{
		{"Engineer", "Acme", "blue"},
	}

	records, _, _ := classifyJobs(uuid.New(), headers, rows)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	// The stray column contributes to row acceptance but never a field.
	if records[0].Notes != "" {
		t.Errorf("expected unknown column discarded")
	}
}

func TestClassifyContactsReconstructsNestedColumns(t *testing.T) {
	headers := []string{"name", "email", "experience_1_company", "experience_1_title", "mutual_connection_1"}
	rows := [][]string{
		{"Alice", "alice@example.com", "Acme", "Engineer", "Carol"},
	}

	records, skipped, warnings := classifyContacts(uuid.New(), headers, rows)
	if len(records) != 1 || skipped != 0 || len(warnings) != 0 {
		t.Fatalf("expected clean acceptance, got records=%d skipped=%d warnings=%v", len(records), skipped, warnings)
	}

	contact := records[0]
	if len(contact.Experience) != 1 || contact.Experience[0].Company != "Acme" {
		t.Errorf("expected reconstructed experience, got %+v", contact.Experience)
	}
	if len(contact.MutualConnections) != 1 || contact.MutualConnections[0] != "Carol" {
		t.Errorf("expected reconstructed mutual connections, got %v", contact.MutualConnections)
	}
}

func TestClassifyContactsRequiresNameOrEmail(t *testing.T) {
	headers := []string{"name", "email", "phone"}
	rows := [][]string{
		{"", "", "555-0100"},
		{"", "bob@example.com", ""},
	}

	records, skipped, _ := classifyContacts(uuid.New(), headers, rows)
	if len(records) != 1 {
		t.Fatalf("expected 1 accepted contact, got %d", len(records))
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", skipped)
	}
	if records[0].Email != "bob@example.com" {
		t.Errorf("expected email-only contact accepted, got %+v", records[0])
	}
}

func TestClassifyInteractions(t *testing.T) {
	contactID := uuid.New()
	headers := []string{"contact_id", "type", "date", "summary"}
	rows := [][]string{
		{contactID.String(), "LinkedIn", "05/13/2024", "intro chat"},
		{"not-a-uuid", "email", "", "bad id"},
		{contactID.String(), "carrier pigeon", "", "odd type"},
		{contactID.String(), "", "", ""},
	}

	records, skipped, warnings := classifyInteractions(uuid.New(), headers, rows)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", skipped)
	}

	if records[0].ContactID != contactID {
		t.Errorf("expected contact id parsed")
	}
	if records[0].Type != domain.InteractionTypeLinkedIn {
		t.Errorf("expected canonical type linkedin, got %q", records[0].Type)
	}
	if records[0].Date != "2024-05-13" {
		t.Errorf("expected normalized date, got %q", records[0].Date)
	}

	if records[1].Type != domain.DefaultInteractionType {
		t.Errorf("expected unrecognized type defaulted, got %q", records[1].Type)
	}

	foundTypeWarning := false
	foundIDWarning := false
	for _, warning := range warnings {
		if strings.Contains(warning, "unrecognized interaction type") {
			foundTypeWarning = true
		}
		if strings.Contains(warning, "invalid contact_id") {
			foundIDWarning = true
		}
	}
	if !foundTypeWarning || !foundIDWarning {
		t.Errorf("expected type and contact_id warnings, got %v", warnings)
	}
}

func TestClassifyCoercesBooleans(t *testing.T) {
	headers := []string{"name", "experience_1_company", "experience_1_title", "experience_1_is_current"}
	rows := [][]string{
		{"Alice", "Acme", "Engineer", "TRUE"},
	}

	records, _, _ := classifyContacts(uuid.New(), headers, rows)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !records[0].Experience[0].IsCurrent {
		t.Errorf("expected TRUE coerced to a boolean")
	}
}
