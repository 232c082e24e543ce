package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yumyai/ggideo/logger"
	"github.com/yumyai/ggideo/pkg/fetch"
	"github.com/yumyai/ggideo/pkg/handler/request"
	"github.com/yumyai/ggideo/pkg/model"
)

// Response struct for job creation and polling
type LoadJobResponse struct {
	JobID  string                   `json:"job_id"`
	Status fetch.LoadJobStatus      `json:"status"`
	Error  string                   `json:"error,omitempty"`
	Annots []model.ChromosomeAnnots `json:"annots,omitempty"`
}

// CreateLoadJobHandler queues an asynchronous remote annotation load and
// returns its job ID immediately.
//
// POST /api/v1/annots/jobs
func (dbctx *DBContext) CreateLoadJobHandler(w http.ResponseWriter, r *http.Request) {

	var req request.LoadJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "request body need to be a JSON job request", http.StatusBadRequest)
		return
	}
	if req.URL == "" || req.TaxID == 0 {
		http.Error(w, "url and taxid are required", http.StatusBadRequest)
		return
	}

	job := dbctx.LoadJobs.NewJob(req.URL, req.TaxID)
	go dbctx.RunLoadJob(job)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(LoadJobResponse{JobID: job.ID, Status: job.Status})
}

// GetLoadJobHandler polls a load job by ID.
//
// GET /api/v1/annots/jobs/{job_id}
func (dbctx *DBContext) GetLoadJobHandler(w http.ResponseWriter, r *http.Request) {

	job, ok := dbctx.LoadJobs.GetJob(r.PathValue("job_id"))
	if !ok {
		http.Error(w, "no such job", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoadJobResponse{
		JobID:  job.ID,
		Status: job.Status,
		Error:  job.Error,
		Annots: job.Result,
	})
}

// RunLoadJob drives one queued job to completion or failure. The job detaches
// from the originating request, so it runs under a background context; once
// issued it is never cancelled. Sources without an http(s) scheme are read
// from disk.
func (dbctx *DBContext) RunLoadJob(job *fetch.LoadJob) {

	dbctx.LoadJobs.SetRunning(job.ID)

	loader := &fetch.Loader{Heatmap: dbctx.Heatmap}

	var set *model.RawAnnotSet
	var err error
	if strings.HasPrefix(job.URL, "http://") || strings.HasPrefix(job.URL, "https://") {
		set, err = loader.LoadURL(context.Background(), job.URL)
	} else {
		set, err = loader.LoadFile(job.URL)
	}
	if err != nil {
		logger.Warn("Annotation load job failed",
			zap.String("job_id", job.ID),
			zap.String("url", job.URL),
			zap.Error(err))
		dbctx.LoadJobs.FailJob(job.ID, err)
		return
	}

	annots, err := dbctx.layoutAnnots(job.TaxID, set)
	if err != nil {
		dbctx.LoadJobs.FailJob(job.ID, err)
		return
	}

	dbctx.LoadJobs.CompleteJob(job.ID, annots)
}
