package repository

import (
	"fmt"
	"time"

	"talent-track/core/models"

	"github.com/google/uuid"
)

// JobRepository handles persistence for job postings
type JobRepository struct {
	store *Store
}

// NewJobRepository creates a new job repository
func NewJobRepository(store *Store) *JobRepository {
	return &JobRepository{store: store}
}

// List returns every job posting
func (r *JobRepository) List() ([]models.Job, error) {
	var jobs []models.Job
	if err := r.store.Read(JobsFile, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Save rewrites the whole job collection
func (r *JobRepository) Save(jobs []models.Job) error {
	return r.store.Write(JobsFile, jobs)
}

// Get retrieves a job by its job_id
func (r *JobRepository) Get(jobID string) (*models.Job, error) {
	jobs, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].JobID == jobID {
			return &jobs[i], nil
		}
	}
	return nil, fmt.Errorf("job %s not found", jobID)
}

// Create assigns identity and posting time, appends the job and persists the
// collection. posted_at is immutable once set here.
func (r *JobRepository) Create(job *models.Job) error {
	unlock := r.store.Lock(JobsFile)
	defer unlock()

	jobs, err := r.List()
	if err != nil {
		return err
	}

	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}
	if job.PostedAt == "" {
		job.PostedAt = time.Now().Format(models.PostedAtLayout)
	}
	if job.Status == "" {
		job.Status = models.JobStatusOpen
	}
	if !job.JobLeadTime.Valid {
		job.JobLeadTime = models.NewFlexInt(30)
	}

	jobs = append(jobs, *job)
	return r.Save(jobs)
}
