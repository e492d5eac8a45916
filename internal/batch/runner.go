package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/pipeline"
	"github.com/joseph-ayodele/label-verifier/internal/repository"
)

// ItemResult is the per-label outcome of a batch run, in entry order.
type ItemResult struct {
	LabelID string
	Path    string
	JobID   uuid.UUID
	Verdict constants.Verdict
	Err     string
}

// Stats summarizes a batch run.
type Stats struct {
	Entries     uint32
	Missing     uint32
	Verified    uint32
	Failed      uint32
	Ready       uint32
	NeedsReview uint32
	Critical    uint32
}

// Runner verifies a directory of label images against application entries and
// records every run as a job.
type Runner struct {
	processor *pipeline.Processor
	jobs      repository.VerificationJobRepository
	reviews   repository.ReviewEntryRepository
	logger    *slog.Logger
	workers   int
	timeout   time.Duration
}

type Option func(*Runner)

func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithItemTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func NewRunner(proc *pipeline.Processor, jobs repository.VerificationJobRepository, reviews repository.ReviewEntryRepository, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		processor: proc,
		jobs:      jobs,
		reviews:   reviews,
		logger:    logger,
		workers:   4,
		timeout:   2 * time.Minute,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run pairs each entry with an image under root by filename stem and verifies
// them on the worker pool. Results come back in entry order.
func (r *Runner) Run(ctx context.Context, root string, entries []Entry) ([]ItemResult, Stats, error) {
	if len(entries) == 0 {
		return nil, Stats{}, fmt.Errorf("applications file has no entries")
	}
	index, err := indexImages(root)
	if err != nil {
		return nil, Stats{}, err
	}

	type workItem struct {
		idx   int
		entry Entry
	}
	items := make([]ItemResult, len(entries))
	work := make(chan workItem)

	workers := r.workers
	if workers > len(entries) {
		workers = len(entries)
	}
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			r.logger.Debug("worker started", "worker_id", workerID)
			for it := range work {
				items[it.idx] = r.verifyOne(ctx, it.entry, index)
				if items[it.idx].Err != "" {
					r.logger.Error("batch item failed", "worker_id", workerID, "label_id", it.entry.LabelID, "error", items[it.idx].Err)
				} else {
					r.logger.Info("batch item verified", "worker_id", workerID, "label_id", it.entry.LabelID, "verdict", items[it.idx].Verdict)
				}
			}
		}(i + 1)
	}

	for i, e := range entries {
		work <- workItem{idx: i, entry: e}
	}
	close(work)
	wg.Wait()

	var stats Stats
	stats.Entries = uint32(len(entries))
	for _, it := range items {
		switch {
		case it.Path == "":
			stats.Missing++
		case it.Err != "":
			stats.Failed++
		default:
			stats.Verified++
			switch it.Verdict {
			case constants.VerdictReady:
				stats.Ready++
			case constants.VerdictReview:
				stats.NeedsReview++
			case constants.VerdictCritical:
				stats.Critical++
			}
		}
	}
	return items, stats, nil
}

func (r *Runner) verifyOne(ctx context.Context, entry Entry, index *imageIndex) ItemResult {
	return r.VerifyFile(ctx, entry, index.find(entry.LabelID))
}

// VerifyFile verifies a single image against an application entry and records
// the run as a job. An empty path records a failed job for the missing image.
func (r *Runner) VerifyFile(ctx context.Context, entry Entry, path string) ItemResult {
	out := ItemResult{LabelID: entry.LabelID}
	app := entry.Application

	job, err := r.jobs.Create(ctx, &repository.CreateJobRequest{
		Filename:     entry.LabelID,
		SourcePath:   path,
		BeverageType: app.BeverageType,
		Application:  &app,
	})
	if err != nil {
		out.Err = err.Error()
		return out
	}
	out.JobID = job.ID

	if path == "" {
		out.Err = fmt.Sprintf("no image found for label_id %q", entry.LabelID)
		_ = r.jobs.FinishFailure(ctx, job.ID, out.Err)
		return out
	}
	out.Path = path

	if err := r.jobs.MarkRunning(ctx, job.ID); err != nil {
		r.logger.Warn("mark running failed", "job_id", job.ID, "error", err)
	}

	pctx, cancel := context.WithTimeout(ctx, r.timeout)
	result, err := r.processor.ProcessImage(pctx, path, &app)
	cancel()
	if err != nil {
		out.Err = err.Error()
		_ = r.jobs.FinishFailure(ctx, job.ID, out.Err)
		return out
	}

	outcome := &repository.JobOutcome{
		Verdict:       result.Summary.Verdict,
		Passed:        result.Summary.Passed,
		NeedsReview:   result.Summary.NeedsReview,
		Failed:        result.Summary.Failed,
		OCRConfidence: result.OCRConfidence,
		Extracted:     &result.Label,
		Results:       result.Results,
	}
	if err := r.jobs.FinishSuccess(ctx, job.ID, outcome); err != nil {
		out.Err = err.Error()
		return out
	}
	if _, err := r.reviews.Enqueue(ctx, job.ID); err != nil {
		r.logger.Warn("enqueue for review failed", "job_id", job.ID, "error", err)
	}

	out.Verdict = result.Summary.Verdict
	return out
}

// imageIndex maps filename stems to paths. Exact stems win over
// case-insensitive matches.
type imageIndex struct {
	exact map[string]string
	lower map[string]string
}

func (ix *imageIndex) find(labelID string) string {
	id := strings.TrimSpace(labelID)
	if p, ok := ix.exact[id]; ok {
		return p
	}
	return ix.lower[strings.ToLower(id)]
}

func indexImages(root string) (*imageIndex, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("image directory is required")
	}
	ix := &imageIndex{
		exact: make(map[string]string),
		lower: make(map[string]string),
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path != root && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			return nil
		}
		stem := strings.TrimSpace(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		if _, exists := ix.exact[stem]; !exists {
			ix.exact[stem] = path
		}
		key := strings.ToLower(stem)
		if _, exists := ix.lower[key]; !exists {
			ix.lower[key] = path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return ix, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
