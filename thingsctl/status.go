package thingsctl

import "strings"

// Status is the lifecycle state of a task or project.
type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

// ParseStatus normalizes a user-supplied status word to its canonical
// form. The British spelling of canceled is accepted here, and only
// here; filter matching compares against canonical text.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusOpen, true
	case "completed", "done":
		return StatusCompleted, true
	case "canceled", "cancelled":
		return StatusCanceled, true
	default:
		return "", false
	}
}
