package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/jobstack-io/apiserver/types"
)

// psql builds queries with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var jobColumns = []string{
	"id",
	"company_name",
	"logo_url",
	"job_position",
	"salary",
	"job_type",
	"remote_or_office",
	"location",
	"job_description",
	"about_company",
	"skills_required",
	"additional_info",
	"user_id",
	"created_at",
	"updated_at",
}

// applyJobFilter translates the optional filter set into WHERE clauses.
// Filters compose conjunctively; the skills list is an any-of match.
// With no filters set the query matches all postings.
func applyJobFilter(query sq.SelectBuilder, filter types.JobFilter) sq.SelectBuilder {
	if filter.Salary > 0 {
		// Exact match, not a range.
		query = query.Where(sq.Eq{"salary": filter.Salary})
	}
	if filter.CompanyName != "" {
		query = query.Where(sq.ILike{"company_name": "%" + filter.CompanyName + "%"})
	}
	if len(filter.Skills) > 0 {
		anyOf := make(sq.Or, 0, len(filter.Skills))
		for _, skill := range filter.Skills {
			anyOf = append(anyOf, sq.Expr(
				"EXISTS (SELECT 1 FROM unnest(skills_required) AS skill WHERE skill ILIKE ?)",
				"%"+skill+"%",
			))
		}
		query = query.Where(anyOf)
	}
	return query
}

// listJobsQuery builds the page query for the given filter and window.
// Results are ordered by id so identical inputs yield identical pages.
func listJobsQuery(filter types.JobFilter, offset, limit int) sq.SelectBuilder {
	query := psql.Select(jobColumns...).From("jobs").OrderBy("id")
	query = applyJobFilter(query, filter)
	return query.Offset(uint64(offset)).Limit(uint64(limit))
}

// countJobsQuery builds the total-count query for the same filter,
// independent of the pagination window.
func countJobsQuery(filter types.JobFilter) sq.SelectBuilder {
	return applyJobFilter(psql.Select("COUNT(1)").From("jobs"), filter)
}
