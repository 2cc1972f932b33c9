package validator

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors collects field failures for one request body. The zero value
// is ready to use.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Field+": "+e.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap keeps the first message reported for each field.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, e := range v {
		if _, seen := result[e.Field]; !seen {
			result[e.Field] = e.Message
		}
	}
	return result
}

func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Check records message against field when ok is false.
func (v *ValidationErrors) Check(ok bool, field, message string) {
	if !ok {
		v.Add(field, message)
	}
}

// Date parses a YYYY-MM-DD value, recording a failure for field when it does not parse.
func (v *ValidationErrors) Date(field, value string) (time.Time, bool) {
	d, ok := IsValidDate(value)
	v.Check(ok, field, "must be a date in YYYY-MM-DD format")
	return d, ok
}

// Err returns nil when nothing was recorded so callers can return it directly.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsValidUUID accepts the canonical 36 character form of any UUID version.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func IsValidDate(s string) (time.Time, bool) {
	d, err := time.Parse(DateLayout, s)
	return d, err == nil
}

// IsValidYear parses a four digit calendar year.
func IsValidYear(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 1900 {
		return 0, false
	}
	return year, true
}

func IsInSlice(value string, slice []string) bool {
	return slices.Contains(slice, value)
}
