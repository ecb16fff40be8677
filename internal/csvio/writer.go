package csvio

import "strings"

// Serialize renders records as CSV text: a header row from the ordered field
// list, then one row per record. Every field is rendered inside double quotes
// with internal quotes doubled; absent fields render as an empty quoted
// string. Rows are joined by newline with no trailing terminator.
func Serialize(fields []string, rows []map[string]string) string {
	var b strings.Builder
	writeRow(&b, fields, func(field string) string { return field })
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(&b, fields, func(field string) string { return row[field] })
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string, value func(string) string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(value(field), `"`, `""`))
		b.WriteByte('"')
	}
}
