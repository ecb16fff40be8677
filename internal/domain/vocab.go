package domain

import "strings"

// EntityKind names the record families the interchange engine handles.
type EntityKind string

const (
	EntityKindJobs         EntityKind = "jobs"
	EntityKindContacts     EntityKind = "contacts"
	EntityKindInteractions EntityKind = "interactions"
)

// ParseEntityKind resolves a path/query segment to an entity kind.
func ParseEntityKind(raw string) (EntityKind, bool) {
	switch EntityKind(strings.ToLower(strings.TrimSpace(raw))) {
	case EntityKindJobs:
		return EntityKindJobs, true
	case EntityKindContacts:
		return EntityKindContacts, true
	case EntityKindInteractions:
		return EntityKindInteractions, true
	default:
		return "", false
	}
}

// JobStatus is the pipeline stage of a job application.
type JobStatus string

const (
	JobStatusBookmarked   JobStatus = "Bookmarked"
	JobStatusApplied      JobStatus = "Applied"
	JobStatusInterviewing JobStatus = "Interviewing"
	JobStatusOffer        JobStatus = "Offer"
	JobStatusRejected     JobStatus = "Rejected"
	JobStatusAccepted     JobStatus = "Accepted"
	JobStatusWithdrawn    JobStatus = "Withdrawn"
)

// DefaultJobStatus is substituted for missing or unrecognized status values.
const DefaultJobStatus = JobStatusBookmarked

// JobStatuses lists the canonical vocabulary in pipeline order.
var JobStatuses = []JobStatus{
	JobStatusBookmarked,
	JobStatusApplied,
	JobStatusInterviewing,
	JobStatusOffer,
	JobStatusRejected,
	JobStatusAccepted,
	JobStatusWithdrawn,
}

// ParseJobStatus matches raw input against the status vocabulary
// case-insensitively and returns the canonically cased value.
func ParseJobStatus(raw string) (JobStatus, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	for _, status := range JobStatuses {
		if cleaned == strings.ToLower(string(status)) {
			return status, true
		}
	}
	return "", false
}

// InteractionType categorizes a contact touchpoint.
type InteractionType string

const (
	InteractionTypeEmail     InteractionType = "email"
	InteractionTypePhone     InteractionType = "phone"
	InteractionTypeLinkedIn  InteractionType = "linkedin"
	InteractionTypeMeeting   InteractionType = "meeting"
	InteractionTypeInterview InteractionType = "interview"
	InteractionTypeOther     InteractionType = "other"
)

// DefaultInteractionType is substituted for missing or unrecognized types.
const DefaultInteractionType = InteractionTypeOther

// InteractionTypes lists the canonical vocabulary.
var InteractionTypes = []InteractionType{
	InteractionTypeEmail,
	InteractionTypePhone,
	InteractionTypeLinkedIn,
	InteractionTypeMeeting,
	InteractionTypeInterview,
	InteractionTypeOther,
}

// ParseInteractionType matches raw input against the type vocabulary
// case-insensitively.
func ParseInteractionType(raw string) (InteractionType, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	for _, kind := range InteractionTypes {
		if cleaned == string(kind) {
			return kind, true
		}
	}
	return "", false
}
