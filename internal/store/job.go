package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jobstack-io/apiserver/types"
	"github.com/lib/pq"
)

const (
	defaultListLimit = 50
)

// JobRepository handles persistence for job postings.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// List returns a page of postings matching the filter plus the total
// number of matches. The count uses the same filter as the page so it is
// unaffected by the pagination window; an offset beyond the total yields
// an empty page with the true total.
func (r *JobRepository) List(ctx context.Context, filter types.JobFilter, offset, limit int) ([]types.Job, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = defaultListLimit
	}

	countSQL, countArgs, err := countJobsQuery(filter).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL, listArgs, err := listJobsQuery(filter, offset, limit).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := make([]types.Job, 0, limit)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *JobRepository) Get(ctx context.Context, id int) (types.Job, error) {
	const query = `
		SELECT id, company_name, logo_url, job_position, salary, job_type,
		       remote_or_office, location, job_description, about_company,
		       skills_required, additional_info, user_id, created_at, updated_at
		FROM jobs
		WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Job{}, ErrNotFound
		}
		return types.Job{}, err
	}
	return job, nil
}

func (r *JobRepository) Create(ctx context.Context, job types.Job) (types.Job, error) {
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	const query = `
		INSERT INTO jobs (
			company_name, logo_url, job_position, salary, job_type,
			remote_or_office, location, job_description, about_company,
			skills_required, additional_info, user_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		job.CompanyName,
		job.LogoURL,
		job.JobPosition,
		job.Salary,
		job.JobType,
		job.RemoteOrOffice,
		job.Location,
		job.JobDescription,
		job.AboutCompany,
		pq.Array(job.SkillsRequired),
		job.AdditionalInfo,
		job.UserID,
		job.CreatedAt,
		job.UpdatedAt,
	).Scan(&job.ID); err != nil {
		return types.Job{}, err
	}

	return job, nil
}

// Update replaces every posting field except the owner reference, which
// is immutable once set.
func (r *JobRepository) Update(ctx context.Context, job types.Job) (types.Job, error) {
	job.UpdatedAt = time.Now()

	const query = `
		UPDATE jobs
		SET company_name = $1,
			logo_url = $2,
			job_position = $3,
			salary = $4,
			job_type = $5,
			remote_or_office = $6,
			location = $7,
			job_description = $8,
			about_company = $9,
			skills_required = $10,
			additional_info = $11,
			updated_at = $12
		WHERE id = $13`
	result, err := r.db.ExecContext(
		ctx,
		query,
		job.CompanyName,
		job.LogoURL,
		job.JobPosition,
		job.Salary,
		job.JobType,
		job.RemoteOrOffice,
		job.Location,
		job.JobDescription,
		job.AboutCompany,
		pq.Array(job.SkillsRequired),
		job.AdditionalInfo,
		job.UpdatedAt,
		job.ID,
	)
	if err != nil {
		return types.Job{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Job{}, err
	}
	if affected == 0 {
		return types.Job{}, ErrNotFound
	}

	return job, nil
}

func (r *JobRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM jobs WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (types.Job, error) {
	var job types.Job
	err := row.Scan(
		&job.ID,
		&job.CompanyName,
		&job.LogoURL,
		&job.JobPosition,
		&job.Salary,
		&job.JobType,
		&job.RemoteOrOffice,
		&job.Location,
		&job.JobDescription,
		&job.AboutCompany,
		pq.Array(&job.SkillsRequired),
		&job.AdditionalInfo,
		&job.UserID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return types.Job{}, err
	}
	return job, nil
}
