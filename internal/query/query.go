// Package query turns a snapshot of the note collection into the ordered,
// filtered sequence the UI displays. It never mutates its input and never
// fails: malformed criteria degrade to documented defaults.
package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/marcus/scribble/internal/note"
)

// SortKey selects the final ordering applied after pin and priority
// precedence. An unrecognized key leaves the prior stable order untouched.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortTitleAsc  SortKey = "title-asc"
	SortTitleDesc SortKey = "title-desc"
	SortDueSoon   SortKey = "due-soon"
)

// Criteria describes one view request. The zero value shows all active
// notes, newest-stable order untouched.
type Criteria struct {
	Search       string
	Tags         []string // note must carry every tag listed
	Category     string   // exact match; empty = no constraint
	DueBucket    note.DueBucket
	SortKey      SortKey
	ShowArchived bool
}

// titleCollator compares titles case-insensitively with locale-aware
// ordering. Collators are not safe for concurrent use, but View runs on the
// single update goroutine.
var titleCollator = collate.New(language.Und, collate.IgnoreCase)

// View applies the filter pipeline and sort to a snapshot of notes.
// Stages run in order: archive partition, combined filters, sort. The input
// slice is never modified.
func View(notes []note.Note, c Criteria, now time.Time) []note.Note {
	out := make([]note.Note, 0, len(notes))
	for _, n := range notes {
		if n.IsArchived != c.ShowArchived {
			continue
		}
		if !matchesSearch(n, c.Search) {
			continue
		}
		if !hasAllTags(n, c.Tags) {
			continue
		}
		if c.Category != "" && n.Category != c.Category {
			continue
		}
		if !note.MatchesDueBucket(n, now, c.DueBucket) {
			continue
		}
		out = append(out, n)
	}

	sortNotes(out, c.SortKey)
	return out
}

// matchesSearch reports a case-insensitive substring match against the
// title, content, or any tag. An empty term matches everything.
func matchesSearch(n note.Note, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(n.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), term) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// hasAllTags reports whether the note's tag set is a superset of required.
func hasAllTags(n note.Note, required []string) bool {
	for _, tag := range required {
		if !n.HasTag(tag) {
			return false
		}
	}
	return true
}

// sortNotes orders notes in place. Precedence: pinned before unpinned, then
// priority rank when both notes have one, then the sort key.
func sortNotes(notes []note.Note, key SortKey) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]

		if a.Pinned != b.Pinned {
			return a.Pinned
		}

		// Priority only breaks ties when both notes define one.
		if a.Priority != "" && b.Priority != "" {
			ra, rb := note.PriorityRank(a.Priority), note.PriorityRank(b.Priority)
			if ra != rb {
				return ra > rb
			}
		}

		switch key {
		case SortNewest:
			return a.CreatedAt.After(b.CreatedAt)
		case SortOldest:
			return a.CreatedAt.Before(b.CreatedAt)
		case SortTitleAsc:
			return titleCollator.CompareString(a.Title, b.Title) < 0
		case SortTitleDesc:
			return titleCollator.CompareString(a.Title, b.Title) > 0
		case SortDueSoon:
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return false
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			default:
				return a.DueDate.Before(*b.DueDate)
			}
		default:
			return false
		}
	})
}

// UniqueTags collects every distinct tag across the collection in
// first-seen order, for the tag filter picker.
func UniqueTags(notes []note.Note) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, n := range notes {
		for _, t := range n.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// UniqueCategories collects every distinct non-empty category in first-seen
// order.
func UniqueCategories(notes []note.Note) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, n := range notes {
		if n.Category != "" && !seen[n.Category] {
			seen[n.Category] = true
			cats = append(cats, n.Category)
		}
	}
	return cats
}
