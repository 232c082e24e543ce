package fetch

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yumyai/ggideo/pkg/model"
)

// LoadJobStatus represents the lifecycle of an asynchronous annotation load.
type LoadJobStatus string

const (
	LoadJobQueued    LoadJobStatus = "queued"
	LoadJobRunning   LoadJobStatus = "running"
	LoadJobCompleted LoadJobStatus = "completed"
	LoadJobFailed    LoadJobStatus = "failed"
)

// LoadJob keeps track of one remote annotation load while it runs.
type LoadJob struct {
	ID        string
	URL       string
	TaxID     int
	Status    LoadJobStatus
	Result    []model.ChromosomeAnnots
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LoadJobManager stores load job states indexed by job ID.
type LoadJobManager struct {
	mu   sync.RWMutex
	jobs map[string]*LoadJob
}

// NewLoadJobManager constructs a job manager with no jobs.
func NewLoadJobManager() *LoadJobManager {
	return &LoadJobManager{
		jobs: make(map[string]*LoadJob),
	}
}

// NewJob registers a queued load for the provided resource.
func (m *LoadJobManager) NewJob(url string, taxID int) *LoadJob {
	job := &LoadJob{
		ID:        uuid.New().String(),
		URL:       url,
		TaxID:     taxID,
		Status:    LoadJobQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()
	return job
}

// SetRunning marks the job as running.
func (m *LoadJobManager) SetRunning(jobID string) {
	m.updateJob(jobID, func(job *LoadJob) {
		job.Status = LoadJobRunning
	})
}

// CompleteJob stores the reconciled annotations and marks the job complete.
func (m *LoadJobManager) CompleteJob(jobID string, result []model.ChromosomeAnnots) {
	m.updateJob(jobID, func(job *LoadJob) {
		job.Status = LoadJobCompleted
		job.Result = result
	})
}

// FailJob records a failure and attaches a user-facing error message.
func (m *LoadJobManager) FailJob(jobID string, err error) {
	m.updateJob(jobID, func(job *LoadJob) {
		job.Status = LoadJobFailed
		job.Error = err.Error()
	})
}

// GetJob fetches a job by ID.
func (m *LoadJobManager) GetJob(jobID string) (*LoadJob, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[jobID]
	return job, ok
}

func (m *LoadJobManager) updateJob(jobID string, update func(job *LoadJob)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return
	}

	update(job)
	job.UpdatedAt = time.Now()
}
