package services

import (
	"context"

	"github.com/jobstack-io/apiserver/types"
)

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	List(ctx context.Context, filter types.JobFilter, offset, limit int) ([]types.Job, int, error)
	Get(ctx context.Context, id int) (types.Job, error)
	Create(ctx context.Context, job types.Job) (types.Job, error)
	Update(ctx context.Context, job types.Job) (types.Job, error)
	Delete(ctx context.Context, id int) error
}

// EventPublisher emits job lifecycle events. Implementations must be
// best-effort: a broker failure never propagates to the caller.
type EventPublisher interface {
	JobCreated(ctx context.Context, job types.Job)
	JobUpdated(ctx context.Context, job types.Job)
	JobDeleted(ctx context.Context, job types.Job)
}

// JobService encapsulates job posting use-cases, including the
// ownership check for mutations. events may be nil when no broker is
// configured.
type JobService struct {
	repo   JobRepository
	events EventPublisher
}

func NewJobService(repo JobRepository, events EventPublisher) *JobService {
	return &JobService{repo: repo, events: events}
}

// List returns a page of postings matching the filter plus the total
// match count.
func (s *JobService) List(ctx context.Context, filter types.JobFilter, offset, limit int) ([]types.Job, int, error) {
	return s.repo.List(ctx, filter, offset, limit)
}

func (s *JobService) Get(ctx context.Context, id int) (types.Job, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new posting owned by ownerID.
func (s *JobService) Create(ctx context.Context, job types.Job, ownerID int) (types.Job, error) {
	if err := validateJob(job); err != nil {
		return types.Job{}, err
	}
	job.UserID = ownerID

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		return types.Job{}, err
	}
	if s.events != nil {
		s.events.JobCreated(ctx, created)
	}
	return created, nil
}

// Update replaces the posting's fields. Only the owner may update; the
// owner reference itself never changes.
func (s *JobService) Update(ctx context.Context, id int, job types.Job, actorID int) (types.Job, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Job{}, err
	}
	if existing.UserID != actorID {
		return types.Job{}, ErrNotOwner
	}
	if err := validateJob(job); err != nil {
		return types.Job{}, err
	}

	job.ID = existing.ID
	job.UserID = existing.UserID
	job.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, job)
	if err != nil {
		return types.Job{}, err
	}
	if s.events != nil {
		s.events.JobUpdated(ctx, updated)
	}
	return updated, nil
}

// Delete removes the posting. Only the owner may delete.
func (s *JobService) Delete(ctx context.Context, id, actorID int) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != actorID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.events != nil {
		s.events.JobDeleted(ctx, existing)
	}
	return nil
}

// validateJob enforces the mandatory-field invariant: every listed
// field of a posting is required, for updates as well as creates.
func validateJob(job types.Job) error {
	if job.CompanyName == "" ||
		job.LogoURL == "" ||
		job.JobPosition == "" ||
		job.Salary <= 0 ||
		job.JobType == "" ||
		job.RemoteOrOffice == "" ||
		job.Location == "" ||
		job.JobDescription == "" ||
		job.AboutCompany == "" ||
		len(job.SkillsRequired) == 0 ||
		job.AdditionalInfo == "" {
		return ErrValidation
	}
	return nil
}
