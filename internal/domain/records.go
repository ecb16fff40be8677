package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobRecord is a tracked job application owned by a single user.
// Date fields hold canonical YYYY-MM-DD strings produced by the CSV engine.
type JobRecord struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	JobTitle       string    `json:"job_title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Salary         string    `json:"salary"`
	JobURL         string    `json:"job_url"`
	Status         JobStatus `json:"status"`
	AppliedDate    string    `json:"applied_date"`
	DateAdded      string    `json:"date_added"`
	JobDescription string    `json:"job_description"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewJobRecord assigns identity and timestamps to a parsed job row.
func NewJobRecord(userID uuid.UUID) JobRecord {
	now := time.Now()
	return JobRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    DefaultJobStatus,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ExperienceEntry is one position in a contact's work history.
// StartDate and EndDate are YYYY-MM strings and may be partial.
type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsCurrent   bool   `json:"is_current"`
	Description string `json:"description"`
}

// Empty reports whether the entry carries no identifying field. Entries with
// only dates are considered empty and get dropped on reconstruction.
func (e ExperienceEntry) Empty() bool {
	return strings.TrimSpace(e.Company) == "" && strings.TrimSpace(e.Title) == ""
}

// EducationEntry is one school/degree entry on a contact. Year may be a
// YYYY-MM string, a bare year, or a range like "2018 - 2022".
type EducationEntry struct {
	ID             string `json:"id"`
	Institution    string `json:"institution"`
	DegreeAndField string `json:"degree_and_field"`
	Year           string `json:"year"`
	Notes          string `json:"notes"`
}

// Empty reports whether the entry carries no identifying field.
func (e EducationEntry) Empty() bool {
	return strings.TrimSpace(e.Institution) == "" && strings.TrimSpace(e.DegreeAndField) == ""
}

// ContactRecord is a professional contact with nested work history,
// education, and mutual connections.
type ContactRecord struct {
	ID                uuid.UUID         `json:"id"`
	UserID            uuid.UUID         `json:"user_id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	CurrentLocation   string            `json:"current_location"`
	Company           string            `json:"company"`
	JobTitle          string            `json:"job_title"`
	LinkedInURL       string            `json:"linkedin_url"`
	Notes             string            `json:"notes"`
	Experience        []ExperienceEntry `json:"experience"`
	Education         []EducationEntry  `json:"education"`
	MutualConnections []string          `json:"mutual_connections"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// NewContactRecord assigns identity and timestamps to a parsed contact row.
func NewContactRecord(userID uuid.UUID) ContactRecord {
	now := time.Now()
	return ContactRecord{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CurrentRole derives the "<job_title> at <company>" string used as half of
// the contact duplicate key. Either side may be missing.
func (c ContactRecord) CurrentRole() string {
	title := strings.TrimSpace(c.JobTitle)
	company := strings.TrimSpace(c.Company)
	switch {
	case title != "" && company != "":
		return title + " at " + company
	case title != "":
		return title
	case company != "":
		return company
	default:
		return ""
	}
}

// InteractionRecord is one logged touchpoint with a contact.
type InteractionRecord struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	ContactID uuid.UUID       `json:"contact_id"`
	Type      InteractionType `json:"type"`
	Date      string          `json:"date"`
	Summary   string          `json:"summary"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewInteractionRecord assigns identity and timestamps to a parsed
// interaction row.
func NewInteractionRecord(userID uuid.UUID) InteractionRecord {
	now := time.Now()
	return InteractionRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      DefaultInteractionType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
