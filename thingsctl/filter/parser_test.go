package filter

import (
	"testing"

	"github.com/thingsctl/thingsctl/thingsctl"
)

func TestParseSimpleComparison(t *testing.T) {
	expr, err := Parse("status = open")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmp, ok := expr.(Compare)
	if !ok {
		t.Fatalf("expected Compare, got %T", expr)
	}
	if cmp.Field != FieldStatus || cmp.Op != OpEq || cmp.Value != "open" {
		t.Errorf("expected status = open, got %v %v %q", cmp.Field, cmp.Op, cmp.Value)
	}
}

func TestParseQuotedValue(t *testing.T) {
	expr, err := Parse("name = 'Buy milk'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmp, ok := expr.(Compare)
	if !ok {
		t.Fatalf("expected Compare, got %T", expr)
	}
	if cmp.Value != "Buy milk" {
		t.Errorf("expected value 'Buy milk', got %q", cmp.Value)
	}
}

func TestParseAndExpression(t *testing.T) {
	expr, err := Parse("tags CONTAINS 'jira' AND tags CONTAINS 'review'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	andExpr, ok := expr.(And)
	if !ok {
		t.Fatalf("expected And, got %T", expr)
	}
	left, ok := andExpr.Left.(Compare)
	if !ok || left.Op != OpContains || left.Value != "jira" {
		t.Errorf("expected left CONTAINS 'jira', got %v", andExpr.Left)
	}
	right, ok := andExpr.Right.(Compare)
	if !ok || right.Op != OpContains || right.Value != "review" {
		t.Errorf("expected right CONTAINS 'review', got %v", andExpr.Right)
	}
}

func TestParseOrExpression(t *testing.T) {
	expr, err := Parse("status = open OR status = completed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := expr.(Or); !ok {
		t.Fatalf("expected Or, got %T", expr)
	}
}

// a OR b AND c parses as a OR (b AND c).
func TestParseAndBindsTighterThanOr(t *testing.T) {
	expr, err := Parse("status = open OR status = completed AND tags CONTAINS 'x'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orExpr, ok := expr.(Or)
	if !ok {
		t.Fatalf("expected Or at the root, got %T", expr)
	}
	if _, ok := orExpr.Left.(Compare); !ok {
		t.Errorf("expected Compare on the left, got %T", orExpr.Left)
	}
	if _, ok := orExpr.Right.(And); !ok {
		t.Errorf("expected And on the right, got %T", orExpr.Right)
	}
}

func TestParseNotExpression(t *testing.T) {
	expr, err := Parse("NOT status = completed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notExpr, ok := expr.(Not)
	if !ok {
		t.Fatalf("expected Not, got %T", expr)
	}
	if _, ok := notExpr.Inner.(Compare); !ok {
		t.Errorf("expected Compare inside Not, got %T", notExpr.Inner)
	}
}

func TestParseNotGroup(t *testing.T) {
	expr, err := Parse("NOT (status = open OR status = completed)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notExpr, ok := expr.(Not)
	if !ok {
		t.Fatalf("expected Not, got %T", expr)
	}
	if _, ok := notExpr.Inner.(Or); !ok {
		t.Errorf("expected Or inside Not, got %T", notExpr.Inner)
	}
}

func TestParseParensOverridePrecedence(t *testing.T) {
	expr, err := Parse("(status = open OR status = completed) AND tags CONTAINS 'x'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	andExpr, ok := expr.(And)
	if !ok {
		t.Fatalf("expected And at the root, got %T", expr)
	}
	if _, ok := andExpr.Left.(Or); !ok {
		t.Errorf("expected Or on the left, got %T", andExpr.Left)
	}
}

func TestParseInList(t *testing.T) {
	expr, err := Parse("status IN ('open', 'canceled')")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmp, ok := expr.(Compare)
	if !ok {
		t.Fatalf("expected Compare, got %T", expr)
	}
	if cmp.Op != OpIn {
		t.Fatalf("expected In, got %v", cmp.Op)
	}
	if len(cmp.Values) != 2 || cmp.Values[0] != "open" || cmp.Values[1] != "canceled" {
		t.Errorf("expected [open canceled], got %v", cmp.Values)
	}
}

func TestParseIsNull(t *testing.T) {
	expr, err := Parse("project IS NULL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmp := expr.(Compare)
	if cmp.Field != FieldProject || cmp.Op != OpIsNull {
		t.Errorf("expected project IS NULL, got %v %v", cmp.Field, cmp.Op)
	}
}

func TestParseIsNotNull(t *testing.T) {
	expr, err := Parse("due IS NOT NULL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmp := expr.(Compare)
	if cmp.Field != FieldDue || cmp.Op != OpIsNotNull {
		t.Errorf("expected due IS NOT NULL, got %v %v", cmp.Field, cmp.Op)
	}
}

func TestParseFieldAliases(t *testing.T) {
	expr, err := Parse("deadline IS NULL AND title = 'x'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	andExpr := expr.(And)
	if andExpr.Left.(Compare).Field != FieldDue {
		t.Errorf("expected deadline to resolve to due")
	}
	if andExpr.Right.(Compare).Field != FieldName {
		t.Errorf("expected title to resolve to name")
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := Parse(input)
		if err == nil {
			t.Fatalf("expected error for input %q", input)
		}
		if !thingsctl.IsKind(err, thingsctl.ErrEmptyQuery) {
			t.Errorf("input %q: expected empty-query error, got %v", input, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		input string
		kind  thingsctl.ErrorKind
	}{
		{"bogus = open", thingsctl.ErrParse},          // unknown field
		{"status =", thingsctl.ErrParse},              // missing value
		{"status", thingsctl.ErrParse},                // missing operator
		{"(status = open", thingsctl.ErrParse},        // missing ')'
		{"status = open)", thingsctl.ErrParse},        // trailing token
		{"status = open extra", thingsctl.ErrParse},   // trailing token
		{"status IN 'open'", thingsctl.ErrParse},      // IN without parens
		{"status IN ()", thingsctl.ErrParse},          // empty IN list
		{"status IS open", thingsctl.ErrParse},        // IS without NULL
		{"AND status = open", thingsctl.ErrParse},     // leading AND
		{"= open", thingsctl.ErrParse},                // missing field
		{"name CONTAINS 'x'", thingsctl.ErrSemantic},  // CONTAINS on scalar
		{"tags = 'x'", thingsctl.ErrSemantic},         // = on list
		{"tags LIKE '%x%'", thingsctl.ErrSemantic},    // LIKE on list
		{"name IS NULL", thingsctl.ErrSemantic},       // IS NULL on required
		{"status IS NOT NULL", thingsctl.ErrSemantic}, // IS NOT NULL on required
		{"due = '2026-01-01'", thingsctl.ErrSemantic}, // = on date
		{"due LIKE '%01%'", thingsctl.ErrSemantic},    // LIKE on date
	}
	for _, tc := range cases {
		_, err := Parse(tc.input)
		if err == nil {
			t.Errorf("input %q: expected error", tc.input)
			continue
		}
		if !thingsctl.IsKind(err, tc.kind) {
			t.Errorf("input %q: expected kind %v, got %v", tc.input, tc.kind, err)
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	const input = "status = open AND (tags CONTAINS 'jira' OR project IS NULL)"
	a, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := testTask{status: "open", tags: []string{"jira"}}
	if Matches(a, r) != Matches(b, r) {
		t.Error("repeated parses of the same input evaluated differently")
	}
}
