package store

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jobstack-io/apiserver/types"
)

func TestListJobsQueryNoFilterMatchesAll(t *testing.T) {
	sql, args, err := listJobsQuery(types.JobFilter{}, 0, 50).ToSql()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if strings.Contains(sql, "WHERE") {
		t.Fatalf("expected no WHERE clause, got %q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
	if !strings.Contains(sql, "ORDER BY id") {
		t.Fatalf("expected deterministic ordering, got %q", sql)
	}
	if !strings.Contains(sql, "LIMIT 50") || !strings.Contains(sql, "OFFSET 0") {
		t.Fatalf("expected pagination window in %q", sql)
	}
}

func TestListJobsQuerySalaryIsExactMatch(t *testing.T) {
	sql, args, err := listJobsQuery(types.JobFilter{Salary: 200000}, 0, 50).ToSql()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !strings.Contains(sql, "salary = $1") {
		t.Fatalf("expected exact salary match, got %q", sql)
	}
	if strings.Contains(sql, ">=") || strings.Contains(sql, "<=") {
		t.Fatalf("salary must not be a range, got %q", sql)
	}
	if !reflect.DeepEqual(args, []any{int64(200000)}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestListJobsQueryCompanyNameSubstring(t *testing.T) {
	sql, args, err := listJobsQuery(types.JobFilter{CompanyName: "acme"}, 0, 50).ToSql()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !strings.Contains(sql, "company_name ILIKE $1") {
		t.Fatalf("expected case-insensitive substring match, got %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"%acme%"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestListJobsQuerySkillsAnyOf(t *testing.T) {
	filter := types.JobFilter{Skills: []string{"Go", "SQL"}}
	sql, args, err := listJobsQuery(filter, 0, 50).ToSql()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// Each requested skill is one EXISTS predicate; they compose with OR.
	if got := strings.Count(sql, "EXISTS (SELECT 1 FROM unnest(skills_required)"); got != 2 {
		t.Fatalf("expected 2 skill predicates, got %d in %q", got, sql)
	}
	if !strings.Contains(sql, " OR ") {
		t.Fatalf("expected skills to compose with OR, got %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"%Go%", "%SQL%"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestListJobsQueryFiltersComposeWithAnd(t *testing.T) {
	filter := types.JobFilter{
		Salary:      100000,
		CompanyName: "acme",
		Skills:      []string{"go"},
	}
	sql, args, err := listJobsQuery(filter, 10, 5).ToSql()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if got := strings.Count(sql, " AND "); got != 2 {
		t.Fatalf("expected 2 AND joins, got %d in %q", got, sql)
	}
	if !strings.Contains(sql, "LIMIT 5") || !strings.Contains(sql, "OFFSET 10") {
		t.Fatalf("expected window in %q", sql)
	}
	if !reflect.DeepEqual(args, []any{int64(100000), "%acme%", "%go%"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestCountJobsQuerySharesFilterWithoutWindow(t *testing.T) {
	filter := types.JobFilter{CompanyName: "acme", Skills: []string{"go"}}

	countSQL, countArgs, err := countJobsQuery(filter).ToSql()
	if err != nil {
		t.Fatalf("build count: %v", err)
	}
	_, listArgs, err := listJobsQuery(filter, 100, 10).ToSql()
	if err != nil {
		t.Fatalf("build list: %v", err)
	}

	if !strings.HasPrefix(countSQL, "SELECT COUNT(1) FROM jobs") {
		t.Fatalf("unexpected count query %q", countSQL)
	}
	if strings.Contains(countSQL, "LIMIT") || strings.Contains(countSQL, "OFFSET") {
		t.Fatalf("count must ignore the pagination window, got %q", countSQL)
	}
	if !reflect.DeepEqual(countArgs, listArgs) {
		t.Fatalf("count args %v differ from list args %v", countArgs, listArgs)
	}
}

func TestQueryBuilderIsIdempotent(t *testing.T) {
	filter := types.JobFilter{
		Salary:      95000,
		CompanyName: "initech",
		Skills:      []string{"go", "postgres"},
	}

	firstSQL, firstArgs, err := listJobsQuery(filter, 0, 50).ToSql()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	secondSQL, secondArgs, err := listJobsQuery(filter, 0, 50).ToSql()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if firstSQL != secondSQL {
		t.Fatalf("query text differs:\n%q\n%q", firstSQL, secondSQL)
	}
	if !reflect.DeepEqual(firstArgs, secondArgs) {
		t.Fatalf("query args differ: %v vs %v", firstArgs, secondArgs)
	}
}
