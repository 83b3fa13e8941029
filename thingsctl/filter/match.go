package filter

import (
	"strings"
	"time"

	"github.com/thingsctl/thingsctl/thingsctl"
)

// Record is anything a filter expression can be evaluated against.
// Optional fields report presence through their second return value.
type Record interface {
	Title() string
	NotesText() string
	StatusText() string
	TagNames() []string
	ProjectName() (string, bool)
	AreaName() (string, bool)
	DueDate() (time.Time, bool)
}

// Matches reports whether the record satisfies the expression.
// Evaluation is pure and never fails: Parse has already rejected
// every operator/field combination that could not be evaluated.
func Matches(expr Expr, r Record) bool {
	switch e := expr.(type) {
	case And:
		return Matches(e.Left, r) && Matches(e.Right, r)
	case Or:
		return Matches(e.Left, r) || Matches(e.Right, r)
	case Not:
		return !Matches(e.Inner, r)
	case Compare:
		return matchCompare(e, r)
	default:
		return false
	}
}

func matchCompare(c Compare, r Record) bool {
	switch c.Field {
	case FieldName:
		return matchText(r.Title(), c)
	case FieldNotes:
		return matchText(r.NotesText(), c)
	case FieldStatus:
		return matchStatus(r.StatusText(), c)
	case FieldTags:
		return matchTags(r.TagNames(), c)
	case FieldProject:
		name, ok := r.ProjectName()
		return matchOptionalText(name, ok, c)
	case FieldArea:
		name, ok := r.AreaName()
		return matchOptionalText(name, ok, c)
	case FieldDue:
		_, ok := r.DueDate()
		return matchPresence(ok, c)
	default:
		return false
	}
}

func matchText(value string, c Compare) bool {
	switch c.Op {
	case OpEq:
		return value == c.Value
	case OpNeq:
		return value != c.Value
	case OpLike:
		return likeMatch(value, c.Value)
	case OpIn:
		for _, v := range c.Values {
			if value == v {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// matchStatus compares case-insensitively and accepts the synonyms
// ParseStatus knows about, so `status = done` matches completed tasks.
func matchStatus(value string, c Compare) bool {
	switch c.Op {
	case OpEq:
		return statusEqual(value, c.Value)
	case OpNeq:
		return !statusEqual(value, c.Value)
	case OpLike:
		return likeMatch(value, c.Value)
	case OpIn:
		for _, v := range c.Values {
			if statusEqual(value, v) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func statusEqual(value, query string) bool {
	if s, ok := thingsctl.ParseStatus(query); ok {
		return strings.EqualFold(value, string(s))
	}
	return strings.EqualFold(value, query)
}

func matchTags(tags []string, c Compare) bool {
	switch c.Op {
	case OpContains:
		for _, tag := range tags {
			if strings.EqualFold(tag, c.Value) {
				return true
			}
		}
		return false
	case OpIn:
		for _, tag := range tags {
			for _, v := range c.Values {
				if strings.EqualFold(tag, v) {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}

// matchOptionalText evaluates fields that can be unset. An absent
// value fails every positive comparison, satisfies != and IS NULL.
func matchOptionalText(value string, present bool, c Compare) bool {
	switch c.Op {
	case OpIsNull:
		return !present
	case OpIsNotNull:
		return present
	case OpNeq:
		if !present {
			return true
		}
		return value != c.Value
	}
	if !present {
		return false
	}
	return matchText(value, c)
}

func matchPresence(present bool, c Compare) bool {
	switch c.Op {
	case OpIsNull:
		return !present
	case OpIsNotNull:
		return present
	default:
		return false
	}
}

// likeMatch implements SQL LIKE with % wildcards, case-insensitive.
// Without a wildcard the pattern must match the whole value.
func likeMatch(value, pattern string) bool {
	v := strings.ToLower(value)
	p := strings.ToLower(pattern)

	if !strings.Contains(p, "%") {
		return v == p
	}

	segments := strings.Split(p, "%")
	first, last := segments[0], segments[len(segments)-1]

	if !strings.HasPrefix(v, first) {
		return false
	}
	v = v[len(first):]

	if !strings.HasSuffix(v, last) {
		return false
	}
	v = v[:len(v)-len(last)]

	for _, seg := range segments[1 : len(segments)-1] {
		if seg == "" {
			continue
		}
		i := strings.Index(v, seg)
		if i < 0 {
			return false
		}
		v = v[i+len(seg):]
	}
	return true
}
