// Package export produces the plain-text and HTML backup formats and
// parses the structured import payload. File pickup and writing belong to
// the UI collaborators; this package only shapes bytes.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/marcus/scribble/internal/note"
)

// ErrMalformedImport is returned when an import payload fails to parse.
// Nothing is merged from a malformed payload.
var ErrMalformedImport = errors.New("malformed import payload")

const separator = "--------------------"

// dateFormat is the human-readable timestamp used in text exports.
const dateFormat = "Jan 2, 2006 3:04 PM"

// Text renders the whole collection as the plain-text backup format: one
// block per note, optional fields only when set, blocks terminated by a
// dashed separator line.
func Text(notes []note.Note) string {
	var b strings.Builder
	for _, n := range notes {
		fmt.Fprintf(&b, "Title: %s\n", n.Title)
		fmt.Fprintf(&b, "Created: %s\n", n.CreatedAt.Format(dateFormat))
		fmt.Fprintf(&b, "Content:\n%s\n\n", n.Content)
		if len(n.Tags) > 0 {
			fmt.Fprintf(&b, "Tags: %s\n", strings.Join(n.Tags, ", "))
		}
		if n.Category != "" {
			fmt.Fprintf(&b, "Category: %s\n", n.Category)
		}
		if n.Priority != "" {
			fmt.Fprintf(&b, "Priority: %s\n", n.Priority)
		}
		if n.DueDate != nil {
			fmt.Fprintf(&b, "Due Date: %s\n", n.DueDate.Format(dateFormat))
		}
		b.WriteString(separator + "\n")
	}
	return b.String()
}

// HTML renders the collection as a single standalone HTML document with
// each note's markdown converted through goldmark.
func HTML(notes []note.Note) (string, error) {
	md := goldmark.New()

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Notes</title>\n</head>\n<body>\n")

	for _, n := range notes {
		b.WriteString("<article>\n")
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(n.Title))
		fmt.Fprintf(&b, "<p><small>Created %s</small></p>\n",
			html.EscapeString(n.CreatedAt.Format(dateFormat)))

		var body bytes.Buffer
		if err := md.Convert([]byte(n.Content), &body); err != nil {
			return "", fmt.Errorf("render note %d: %w", n.ID, err)
		}
		b.Write(body.Bytes())

		if len(n.Tags) > 0 {
			fmt.Fprintf(&b, "<p>Tags: %s</p>\n",
				html.EscapeString(strings.Join(n.Tags, ", ")))
		}
		b.WriteString("</article>\n<hr>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// ParseImport decodes a JSON array of notes. Any parse failure rejects the
// whole payload; there is no partial merge.
func ParseImport(data []byte) ([]note.Note, error) {
	var notes []note.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	return notes, nil
}

// ExportFilename builds a timestamped backup filename.
func ExportFilename(ext string, now time.Time) string {
	return fmt.Sprintf("notes_backup_%s.%s", now.Format("2006-01-02"), ext)
}
