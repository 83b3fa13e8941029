// Package quickadd parses natural language task entry strings like
// "buy milk tomorrow 3pm #errands for Shopping !high // check fridge"
// into structured task data.
package quickadd

import (
	"regexp"
	"strings"
	"time"

	"github.com/thingsctl/thingsctl/thingsctl/dates"
)

// Priority is the urgency marker extracted from a quick-add string.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "none"
	}
}

// ParsePriority parses a priority name, accepting the same words the
// quick-add markers use.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(s) {
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	case "none", "":
		return PriorityNone, true
	}
	return PriorityNone, false
}

// Task is the structured result of parsing a quick-add string.
type Task struct {
	Title     string
	Notes     string
	When      *dates.Result
	Deadline  *dates.Result
	Tags      []string
	Project   string
	Area      string
	Priority  Priority
	Checklist []string
}

// HasSchedule reports whether a when date or a deadline was found.
func (t Task) HasSchedule() bool {
	return t.When != nil || t.Deadline != nil
}

var (
	tagRe      = regexp.MustCompile(`#([\w-]+)`)
	projectRe  = regexp.MustCompile(`\bfor\s+(\w+(?:\s+\w+)*)`)
	areaRe     = regexp.MustCompile(`\bin\s+([A-Z]\w*(?:\s+\w+)*)`)
	priorityRe = regexp.MustCompile(`!(?:high|medium|low|!!|!)?`)
	deadlineRe = regexp.MustCompile(`\bby\s+([\w-]+(?:\s+\d+)?)`)
	notesRe    = regexp.MustCompile(`\s*//\s*(.+)$`)
	checkRe    = regexp.MustCompile(`\s+-\s+`)
)

// escapedHash stands in for "\#" while the tag pattern runs, so a
// literal hash can survive into the title.
const escapedHash = "\x00#\x00"

// Parse parses a quick-add string relative to the current day.
func Parse(input string) Task {
	return ParseAt(input, time.Now())
}

// ParseAt parses a quick-add string with an explicit anchor day for
// relative dates. Extraction is best-effort: anything not recognized
// as a marker stays in the title.
func ParseAt(input string, anchor time.Time) Task {
	var task Task
	remaining := strings.ReplaceAll(strings.TrimSpace(input), `\#`, escapedHash)

	// Notes come off the end first so markers inside them survive.
	if m := notesRe.FindStringSubmatch(remaining); m != nil {
		task.Notes = strings.TrimSpace(m[1])
		remaining = notesRe.ReplaceAllString(remaining, "")
	}

	// Checklist: "title - item1 - item2".
	if checkRe.MatchString(remaining) {
		parts := strings.Split(remaining, " - ")
		if len(parts) > 1 {
			remaining = parts[0]
			for _, item := range parts[1:] {
				if item = strings.TrimSpace(item); item != "" {
					task.Checklist = append(task.Checklist, item)
				}
			}
		}
	}

	for _, m := range tagRe.FindAllStringSubmatch(remaining, -1) {
		task.Tags = append(task.Tags, m[1])
	}
	remaining = tagRe.ReplaceAllString(remaining, "")

	if m := priorityRe.FindString(remaining); m != "" {
		switch m {
		case "!high", "!!!":
			task.Priority = PriorityHigh
		case "!medium", "!!":
			task.Priority = PriorityMedium
		case "!low", "!":
			task.Priority = PriorityLow
		}
	}
	remaining = priorityRe.ReplaceAllString(remaining, "")

	if m := projectRe.FindStringSubmatch(remaining); m != nil {
		task.Project = strings.TrimSpace(m[1])
		remaining = projectRe.ReplaceAllString(remaining, "")
	}

	if m := areaRe.FindStringSubmatch(remaining); m != nil {
		task.Area = strings.TrimSpace(m[1])
		remaining = areaRe.ReplaceAllString(remaining, "")
	}

	if m := deadlineRe.FindStringSubmatch(remaining); m != nil {
		if parsed, ok := dates.ParseAt(m[1], anchor); ok {
			parsed.Deadline = true
			task.Deadline = &parsed
			remaining = deadlineRe.ReplaceAllString(remaining, "")
		}
	}

	remaining = extractWhen(&task, remaining, anchor)

	task.Title = strings.ReplaceAll(collapseSpaces(remaining), escapedHash, "#")
	return task
}

// extractWhen scans the leftover words for a date expression, longest
// window first, and returns the text with the matched words removed.
func extractWhen(task *Task, text string, anchor time.Time) string {
	words := strings.Fields(text)
	var kept []string

	for i := 0; i < len(words); {
		matched := false
		for window := 3; window >= 1; window-- {
			if i+window > len(words) {
				continue
			}
			phrase := strings.Join(words[i:i+window], " ")
			if parsed, ok := dates.ParseAt(phrase, anchor); ok {
				task.When = &parsed
				i += window
				matched = true
				break
			}
		}
		if !matched {
			kept = append(kept, words[i])
			i++
		}
	}

	return strings.Join(kept, " ")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
