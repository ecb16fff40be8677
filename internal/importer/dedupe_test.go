package importer

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jobvault/jobvault/internal/domain"
)

func TestPartitionJobsMatchesExisting(t *testing.T) {
	existing := []domain.JobRecord{
		{JobTitle: "Engineer", Company: "Acme", Status: domain.JobStatusApplied},
	}
	incoming := []domain.JobRecord{
		{JobTitle: "  engineer ", Company: "ACME", Status: domain.JobStatusApplied},
		{JobTitle: "Engineer", Company: "Acme", Status: domain.JobStatusRejected},
	}

	toInsert, duplicates := PartitionJobs(incoming, existing)
	if len(toInsert) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(toInsert))
	}
	if toInsert[0].Status != domain.JobStatusRejected {
		t.Errorf("expected the different-status row to survive, got %+v", toInsert[0])
	}
	if len(duplicates) != 1 {
		t.Fatalf("expected 1 duplicate, got %d", len(duplicates))
	}
	if duplicates[0].Fields["company"] != "ACME" {
		t.Errorf("expected original field values in the detail, got %v", duplicates[0].Fields)
	}
}

func TestPartitionJobsFlagsWithinBatchRepeats(t *testing.T) {
	incoming := []domain.JobRecord{
		{JobTitle: "Engineer", Company: "Acme", Status: domain.JobStatusApplied},
		{JobTitle: "Engineer", Company: "Acme", Status: domain.JobStatusApplied},
	}

	toInsert, duplicates := PartitionJobs(incoming, nil)
	if len(toInsert) != 1 || len(duplicates) != 1 {
		t.Fatalf("expected 1 insert and 1 duplicate, got %d and %d", len(toInsert), len(duplicates))
	}
	if !strings.Contains(duplicates[0].Reason, "earlier row") {
		t.Errorf("expected within-batch reason, got %q", duplicates[0].Reason)
	}
}

func TestPartitionContactsUsesCurrentRole(t *testing.T) {
	existing := []domain.ContactRecord{
		{Name: "Alice", JobTitle: "Engineer", Company: "Acme"},
	}
	incoming := []domain.ContactRecord{
		{Name: "alice", JobTitle: "engineer", Company: "acme"},
		{Name: "Alice", JobTitle: "Engineer", Company: "Globex"},
		{Name: "Bob"},
	}

	toInsert, duplicates := PartitionContacts(incoming, existing)
	if len(toInsert) != 2 {
		t.Fatalf("expected 2 inserts, got %d", len(toInsert))
	}
	if len(duplicates) != 1 {
		t.Fatalf("expected 1 duplicate, got %d", len(duplicates))
	}
	if duplicates[0].Fields["name"] != "alice" {
		t.Errorf("unexpected duplicate detail: %v", duplicates[0].Fields)
	}
}

func TestPartitionInteractionsCompositeKey(t *testing.T) {
	contactID := uuid.New()
	existing := []domain.InteractionRecord{
		{ContactID: contactID, Date: "2024-05-13", Type: domain.InteractionTypeEmail},
	}
	incoming := []domain.InteractionRecord{
		{ContactID: contactID, Date: "2024-05-13", Type: domain.InteractionTypeEmail},
		{ContactID: contactID, Date: "2024-05-14", Type: domain.InteractionTypeEmail},
		{ContactID: uuid.New(), Date: "2024-05-13", Type: domain.InteractionTypeEmail},
	}

	toInsert, duplicates := PartitionInteractions(incoming, existing)
	if len(toInsert) != 2 {
		t.Fatalf("expected 2 inserts, got %d", len(toInsert))
	}
	if len(duplicates) != 1 {
		t.Fatalf("expected 1 duplicate, got %d", len(duplicates))
	}
	if duplicates[0].Fields["date"] != "2024-05-13" {
		t.Errorf("unexpected duplicate detail: %v", duplicates[0].Fields)
	}
}

func TestPartitionPreservesInputs(t *testing.T) {
	incoming := []domain.JobRecord{
		{JobTitle: "Engineer", Company: "Acme", Status: domain.JobStatusApplied},
	}
	existing := []domain.JobRecord{
		{JobTitle: "Analyst", Company: "Globex", Status: domain.JobStatusApplied},
	}

	toInsert, _ := PartitionJobs(incoming, existing)
	if len(toInsert) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(toInsert))
	}
	if incoming[0].JobTitle != "Engineer" || existing[0].JobTitle != "Analyst" {
		t.Errorf("expected inputs untouched")
	}
}
