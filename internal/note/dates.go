package note

import "time"

// DueBucket selects notes by the relation between their due date and now.
type DueBucket string

const (
	BucketAll      DueBucket = ""
	BucketThisWeek DueBucket = "this-week"
	BucketOverdue  DueBucket = "overdue"
	BucketNoDate   DueBucket = "no-date"
)

const (
	dueSoonWindow  = 24 * time.Hour
	thisWeekWindow = 7 * 24 * time.Hour
)

// IsDueSoon reports whether the note is due within the next 24 hours.
// Notes without a due date, and notes already overdue, are not due soon.
func IsDueSoon(n Note, now time.Time) bool {
	if n.DueDate == nil {
		return false
	}
	d := n.DueDate.Sub(now)
	return d >= 0 && d < dueSoonWindow
}

// IsOverdue reports whether the note's due date has passed.
func IsOverdue(n Note, now time.Time) bool {
	return n.DueDate != nil && n.DueDate.Before(now)
}

// MatchesDueBucket reports whether the note falls into the given bucket.
// "this-week" is the half-open window [now, now+7d): a note due exactly now
// is this-week but not overdue. Notes without a due date match only
// "no-date" and "all".
func MatchesDueBucket(n Note, now time.Time, bucket DueBucket) bool {
	switch bucket {
	case BucketAll:
		return true
	case BucketNoDate:
		return n.DueDate == nil
	case BucketThisWeek:
		if n.DueDate == nil {
			return false
		}
		d := n.DueDate.Sub(now)
		return d >= 0 && d < thisWeekWindow
	case BucketOverdue:
		return n.DueDate != nil && n.DueDate.Before(now)
	default:
		return true
	}
}
