// Package csvio implements the CSV interchange layer: a tokenizer tolerant of
// quoted multi-line fields, header normalization, heterogeneous date
// normalization, nested-record flattening, and the serializer used for
// exports.
package csvio

import "strings"

const byteOrderMark = "\ufeff"

// Parse splits raw CSV text into rows of fields. A field is treated as quoted
// only when it begins with a double quote; doubled quotes inside a quoted
// field escape a literal quote, and newlines inside an open quote never split
// the row. An unterminated quote consumes the remainder of the text.
// Whitespace around unquoted fields is trimmed, and rows whose fields are all
// blank are dropped.
func Parse(text string) [][]string {
	text = strings.TrimPrefix(text, byteOrderMark)

	var rows [][]string
	var row []string
	var field strings.Builder
	quoted := false
	inQuotes := false

	flushField := func() {
		value := field.String()
		if !quoted {
			value = strings.TrimSpace(value)
		}
		row = append(row, value)
		field.Reset()
		quoted = false
	}

	flushRow := func() {
		flushField()
		if !rowIsBlank(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inQuotes {
			if ch == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteByte(ch)
			continue
		}

		switch ch {
		case '"':
			if !quoted && strings.TrimSpace(field.String()) == "" {
				// Opening quote; discard any whitespace buffered before it.
				field.Reset()
				quoted = true
				inQuotes = true
				continue
			}
			field.WriteByte(ch)
		case ',':
			flushField()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				flushRow()
				i++
				continue
			}
			field.WriteByte(ch)
		case '\n':
			flushRow()
		default:
			field.WriteByte(ch)
		}
	}

	if field.Len() > 0 || len(row) > 0 || quoted {
		flushRow()
	}

	return rows
}

// NormalizeHeaders cleans the first parsed row into the header list used to
// key data rows: surrounding quotes and whitespace stripped, lower-cased.
// Headers that clean to empty are blanked in place rather than removed so
// data columns stay aligned; the second return value is the count of usable
// headers.
func NormalizeHeaders(raw []string) ([]string, int) {
	headers := make([]string, len(raw))
	usable := 0
	for i, value := range raw {
		name := strings.TrimSpace(value)
		name = strings.Trim(name, `"`)
		name = strings.ToLower(strings.TrimSpace(name))
		headers[i] = name
		if name != "" {
			usable++
		}
	}
	return headers, usable
}

// PadRow pads or truncates a data row to the header length.
func PadRow(row []string, length int) []string {
	if len(row) >= length {
		return row[:length]
	}
	padded := make([]string, length)
	copy(padded, row)
	return padded
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
