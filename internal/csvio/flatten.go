package csvio

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jobvault/jobvault/internal/domain"
)

// Flattened column layout: <entity>_<index>_<field> with 1-based indices, so
// reconstruction can group columns by their shared index.
var (
	experienceFields = []string{"company", "title", "start_date", "end_date", "is_current", "description"}
	educationFields  = []string{"institution", "degree_and_field", "year", "notes"}

	indexedColumnPattern    = regexp.MustCompile(`^(experience|education)_(\d+)_(.+)$`)
	mutualConnectionPattern = regexp.MustCompile(`^mutual_connection_(\d+)$`)
)

// FlattenContacts renders the nested collections of a contact set as flat
// columns. Column counts are sized to the maximum collection length across
// all contacts; contacts with fewer entries leave the higher-index columns
// blank. The nested arrays on the records themselves are untouched — the
// flat columns are additive.
func FlattenContacts(contacts []domain.ContactRecord) ([]string, []map[string]string) {
	maxExperience, maxEducation, maxMutual := 0, 0, 0
	for _, contact := range contacts {
		if len(contact.Experience) > maxExperience {
			maxExperience = len(contact.Experience)
		}
		if len(contact.Education) > maxEducation {
			maxEducation = len(contact.Education)
		}
		if len(contact.MutualConnections) > maxMutual {
			maxMutual = len(contact.MutualConnections)
		}
	}

	var headers []string
	for n := 1; n <= maxExperience; n++ {
		for _, field := range experienceFields {
			headers = append(headers, fmt.Sprintf("experience_%d_%s", n, field))
		}
	}
	for n := 1; n <= maxEducation; n++ {
		for _, field := range educationFields {
			headers = append(headers, fmt.Sprintf("education_%d_%s", n, field))
		}
	}
	for n := 1; n <= maxMutual; n++ {
		headers = append(headers, fmt.Sprintf("mutual_connection_%d", n))
	}

	rows := make([]map[string]string, len(contacts))
	for i, contact := range contacts {
		row := make(map[string]string, len(headers))
		for n, entry := range contact.Experience {
			prefix := fmt.Sprintf("experience_%d_", n+1)
			row[prefix+"company"] = entry.Company
			row[prefix+"title"] = entry.Title
			row[prefix+"start_date"] = entry.StartDate
			row[prefix+"end_date"] = entry.EndDate
			row[prefix+"is_current"] = strconv.FormatBool(entry.IsCurrent)
			row[prefix+"description"] = entry.Description
		}
		for n, entry := range contact.Education {
			prefix := fmt.Sprintf("education_%d_", n+1)
			row[prefix+"institution"] = entry.Institution
			row[prefix+"degree_and_field"] = entry.DegreeAndField
			row[prefix+"year"] = entry.Year
			row[prefix+"notes"] = entry.Notes
		}
		for n, name := range contact.MutualConnections {
			row[fmt.Sprintf("mutual_connection_%d", n+1)] = name
		}
		rows[i] = row
	}

	return headers, rows
}

// ReconstructNested rebuilds the nested collections of a contact row from its
// flattened columns, deleting the flat keys from the row as it goes. Entries
// with no identifying field are dropped; blank mutual connections are
// filtered out. Rebuilt entries receive fresh synthetic identifiers.
func ReconstructNested(row map[string]any) ([]domain.ExperienceEntry, []domain.EducationEntry, []string) {
	experienceGroups := map[int]map[string]any{}
	educationGroups := map[int]map[string]any{}
	mutualByIndex := map[int]string{}

	for key, value := range row {
		if m := indexedColumnPattern.FindStringSubmatch(key); m != nil {
			index := atoi(m[2])
			groups := experienceGroups
			if m[1] == "education" {
				groups = educationGroups
			}
			if groups[index] == nil {
				groups[index] = map[string]any{}
			}
			groups[index][m[3]] = value
			delete(row, key)
			continue
		}
		if m := mutualConnectionPattern.FindStringSubmatch(key); m != nil {
			mutualByIndex[atoi(m[1])] = stringValue(value)
			delete(row, key)
		}
	}

	var experience []domain.ExperienceEntry
	for _, index := range sortedIndices(experienceGroups) {
		group := experienceGroups[index]
		entry := domain.ExperienceEntry{
			ID:          uuid.New().String(),
			Company:     stringValue(group["company"]),
			Title:       stringValue(group["title"]),
			StartDate:   stringValue(group["start_date"]),
			EndDate:     stringValue(group["end_date"]),
			IsCurrent:   boolValue(group["is_current"]),
			Description: stringValue(group["description"]),
		}
		if entry.Empty() {
			continue
		}
		experience = append(experience, entry)
	}

	var education []domain.EducationEntry
	for _, index := range sortedIndices(educationGroups) {
		group := educationGroups[index]
		entry := domain.EducationEntry{
			ID:             uuid.New().String(),
			Institution:    stringValue(group["institution"]),
			DegreeAndField: stringValue(group["degree_and_field"]),
			Year:           stringValue(group["year"]),
			Notes:          stringValue(group["notes"]),
		}
		if entry.Empty() {
			continue
		}
		education = append(education, entry)
	}

	var mutuals []string
	for _, index := range sortedIndices(mutualByIndex) {
		if name := strings.TrimSpace(mutualByIndex[index]); name != "" {
			mutuals = append(mutuals, name)
		}
	}

	return experience, education, mutuals
}

func sortedIndices[V any](groups map[int]V) []int {
	indices := make([]int, 0, len(groups))
	for index := range groups {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	return indices
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func boolValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}
