// Package domain provides pure validation predicates for catalog records.
package domain

import (
	"regexp"
	"strconv"
)

// datePattern accepts MM/DD/YYYY or MM-DD-YYYY with zero-padded month and
// day and a four-digit year. Mixed separators are rejected.
var datePattern = regexp.MustCompile(`^\d{2}(/\d{2}/|-\d{2}-)\d{4}$`)

// IsValidDateFormat reports whether s is a date in MM/DD/YYYY or MM-DD-YYYY
// form. It is a pure format check; calendar validity is not enforced.
func IsValidDateFormat(s string) bool {
	return datePattern.MatchString(s)
}

// dateInRange reports whether a format-valid date names a month 01-12 and a
// day 01-31. s must already match datePattern.
func dateInRange(s string) bool {
	month, _ := strconv.Atoi(s[0:2])
	day, _ := strconv.Atoi(s[3:5])
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// ValidateSongForSave checks that a song is fit to write. It fails with
// ReasonMissingRequiredField when title, category, or recordedDate is empty,
// and with ReasonInvalidDateFormat when the date does not match the accepted
// layouts or names a month or day outside its range. A nil return means the
// song may be written.
//
// Validation is fully local: callers must run it before any remote call.
func ValidateSongForSave(song Song) *ValidationError {
	switch {
	case song.Title == "":
		return NewValidationError("title", ReasonMissingRequiredField, "title is required")
	case song.Category == "":
		return NewValidationError("category", ReasonMissingRequiredField, "category is required")
	case song.RecordedDate == "":
		return NewValidationError("recordedDate", ReasonMissingRequiredField, "recorded date is required")
	case !IsValidDateFormat(song.RecordedDate):
		return NewValidationError("recordedDate", ReasonInvalidDateFormat, "recorded date must be MM/DD/YYYY or MM-DD-YYYY")
	case !dateInRange(song.RecordedDate):
		return NewValidationError("recordedDate", ReasonInvalidDateFormat, "recorded date month or day is out of range")
	}
	return nil
}
