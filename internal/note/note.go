package note

import (
	"strings"
	"time"
)

// Priority is the user-assigned importance of a note.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Note is the single persisted entity. JSON field names are the persisted
// contract and must not change: imported payloads and the store blob both
// use this shape.
type Note struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	Category  string     `json:"category"`
	Priority  Priority   `json:"priority"`
	DueDate   *time.Time `json:"dueDate"`
	Color     string     `json:"color"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Pinned    bool       `json:"pinned"`
	IsArchived bool      `json:"isArchived"`
}

// Clone returns a deep copy. Tags share no backing array with the original,
// and an empty non-nil slice stays non-nil so the persisted shape survives.
func (n Note) Clone() Note {
	c := n
	if n.Tags != nil {
		c.Tags = make([]string, len(n.Tags))
		copy(c.Tags, n.Tags)
	}
	if n.DueDate != nil {
		d := *n.DueDate
		c.DueDate = &d
	}
	if n.UpdatedAt != nil {
		u := *n.UpdatedAt
		c.UpdatedAt = &u
	}
	return c
}

// HasTag reports whether the note carries the exact tag.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PriorityRank maps a priority to its sort rank. Unknown or empty
// priorities rank below Low.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ParseTags splits a comma-separated tag string into trimmed, non-empty
// tags. Duplicates are kept; insertion order is preserved.
func ParseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// WordCount counts whitespace-separated words in the content.
func WordCount(content string) int {
	return len(strings.Fields(content))
}
