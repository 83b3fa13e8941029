package filter

import "strings"

// Field identifies one of the queryable record fields. The set is
// closed: resolving and operator checking are total switches, so an
// unsupported field/operator pair can never silently evaluate to
// false.
type Field int

const (
	FieldName Field = iota
	FieldNotes
	FieldStatus
	FieldTags
	FieldProject
	FieldArea
	FieldDue
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldNotes:
		return "notes"
	case FieldStatus:
		return "status"
	case FieldTags:
		return "tags"
	case FieldProject:
		return "project"
	case FieldArea:
		return "area"
	case FieldDue:
		return "due"
	default:
		return "?"
	}
}

// Kind classifies a field and determines which operators it accepts.
type Kind int

const (
	KindText Kind = iota
	KindEnumText
	KindTextList
	KindOptionalText
	KindOptionalDate
)

func (f Field) Kind() Kind {
	switch f {
	case FieldName, FieldNotes:
		return KindText
	case FieldStatus:
		return KindEnumText
	case FieldTags:
		return KindTextList
	case FieldProject, FieldArea:
		return KindOptionalText
	case FieldDue:
		return KindOptionalDate
	default:
		return KindText
	}
}

// Allows reports whether op is legal on a field of this kind.
func (k Kind) Allows(op Op) bool {
	switch k {
	case KindText:
		return op == OpEq || op == OpNeq || op == OpLike || op == OpIn
	case KindEnumText:
		return op == OpEq || op == OpNeq || op == OpLike || op == OpIn
	case KindTextList:
		return op == OpContains || op == OpIn
	case KindOptionalText:
		return op == OpEq || op == OpNeq || op == OpLike || op == OpIn ||
			op == OpIsNull || op == OpIsNotNull
	case KindOptionalDate:
		return op == OpIsNull || op == OpIsNotNull
	default:
		return false
	}
}

// ParseField resolves a field identifier, case-insensitively. "title"
// is an alias for name, "deadline" for due.
func ParseField(name string) (Field, bool) {
	switch strings.ToLower(name) {
	case "name", "title":
		return FieldName, true
	case "notes":
		return FieldNotes, true
	case "status":
		return FieldStatus, true
	case "tags":
		return FieldTags, true
	case "project":
		return FieldProject, true
	case "area":
		return FieldArea, true
	case "due", "deadline":
		return FieldDue, true
	default:
		return 0, false
	}
}
