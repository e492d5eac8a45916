package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/gen/ent"
	"github.com/joseph-ayodele/label-verifier/gen/ent/rulefinding"
	"github.com/joseph-ayodele/label-verifier/gen/ent/verificationjob"
	"github.com/joseph-ayodele/label-verifier/internal/label"
)

// CreateJobRequest wraps parameters for recording a new verification job.
type CreateJobRequest struct {
	Filename     string
	SourcePath   string
	BeverageType constants.BeverageType
	Application  *label.ApplicationData
}

// JobOutcome carries everything a finished verification writes back to the job
// row: the verdict, the per-status counts, and the snapshots shown on review.
type JobOutcome struct {
	Verdict       constants.Verdict
	Passed        int
	NeedsReview   int
	Failed        int
	OCRConfidence float64
	Extracted     *label.ExtractedLabel
	Results       []label.RuleResult
}

// ListJobsFilter narrows ListJobs. Zero values mean no filter.
type ListJobsFilter struct {
	Status  constants.JobStatus
	Verdict constants.Verdict
	Limit   int
}

type VerificationJobRepository interface {
	Create(ctx context.Context, req *CreateJobRequest) (*ent.VerificationJob, error)
	MarkRunning(ctx context.Context, jobID uuid.UUID) error
	FinishSuccess(ctx context.Context, jobID uuid.UUID, outcome *JobOutcome) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*ent.VerificationJob, error)
	ListJobs(ctx context.Context, filter ListJobsFilter) ([]*ent.VerificationJob, error)
}

type verificationJobRepo struct {
	ent *ent.Client
	log *slog.Logger
}

func NewVerificationJobRepository(entc *ent.Client, log *slog.Logger) VerificationJobRepository {
	return &verificationJobRepo{ent: entc, log: log}
}

func (r *verificationJobRepo) Create(ctx context.Context, req *CreateJobRequest) (*ent.VerificationJob, error) {
	var appJSON []byte
	if req.Application != nil {
		if b, err := json.Marshal(req.Application); err == nil {
			appJSON = b
		}
	}

	builder := r.ent.VerificationJob.
		Create().
		SetFilename(req.Filename).
		SetBeverageType(string(req.BeverageType)).
		SetStatus(string(constants.JobStatusQueued)).
		SetApplicationJSON(appJSON)
	if req.SourcePath != "" {
		builder = builder.SetSourcePath(req.SourcePath)
	}

	job, err := builder.Save(ctx)
	if err != nil {
		r.log.Error("verification_job create failed", "filename", req.Filename, "err", err)
		return nil, err
	}
	r.log.Info("verification_job created", "job_id", job.ID, "filename", req.Filename, "beverage_type", req.BeverageType)
	return job, nil
}

func (r *verificationJobRepo) MarkRunning(ctx context.Context, jobID uuid.UUID) error {
	_, err := r.ent.VerificationJob.
		UpdateOneID(jobID).
		SetStatus(string(constants.JobStatusRunning)).
		SetStartedAt(time.Now()).
		Save(ctx)
	if err != nil {
		r.log.Error("verification_job mark running failed", "job_id", jobID, "err", err)
		return err
	}
	return nil
}

func (r *verificationJobRepo) FinishSuccess(ctx context.Context, jobID uuid.UUID, outcome *JobOutcome) error {
	var extractedJSON []byte
	if outcome.Extracted != nil {
		if b, err := json.Marshal(outcome.Extracted); err == nil {
			extractedJSON = b
		}
	}

	_, err := r.ent.VerificationJob.
		UpdateOneID(jobID).
		SetStatus(string(constants.JobStatusDone)).
		SetVerdict(string(outcome.Verdict)).
		SetPassed(outcome.Passed).
		SetNeedsReview(outcome.NeedsReview).
		SetFailed(outcome.Failed).
		SetOcrConfidence(outcome.OCRConfidence).
		SetExtractedJSON(extractedJSON).
		SetFinishedAt(time.Now()).
		Save(ctx)
	if err != nil {
		r.log.Error("verification_job finish(DONE) failed", "job_id", jobID, "err", err)
		return err
	}

	if len(outcome.Results) > 0 {
		builders := make([]*ent.RuleFindingCreate, len(outcome.Results))
		for i, res := range outcome.Results {
			b := r.ent.RuleFinding.
				Create().
				SetJobID(jobID).
				SetSeq(i).
				SetRuleID(res.RuleID).
				SetCategory(string(res.Category)).
				SetStatus(string(res.Status)).
				SetMessage(res.Message).
				SetExtractedValue(res.ExtractedValue).
				SetAppValue(res.AppValue)
			if res.BBoxRef != nil {
				if bb, err := json.Marshal(res.BBoxRef); err == nil {
					b = b.SetBboxJSON(bb)
				}
			}
			builders[i] = b
		}
		if err := r.ent.RuleFinding.CreateBulk(builders...).Exec(ctx); err != nil {
			r.log.Error("rule findings insert failed", "job_id", jobID, "err", err)
			return err
		}
	}

	r.log.Info("verification_job finished (DONE)", "job_id", jobID, "verdict", outcome.Verdict, "checks", len(outcome.Results))
	return nil
}

func (r *verificationJobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	_, err := r.ent.VerificationJob.
		UpdateOneID(jobID).
		SetStatus(string(constants.JobStatusFailed)).
		SetErrorMessage(message).
		SetFinishedAt(time.Now()).
		Save(ctx)
	if err != nil {
		r.log.Error("verification_job finish(FAILED) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Warn("verification_job finished (FAILED)", "job_id", jobID, "error", message)
	return nil
}

// GetByID loads a job together with its findings in engine order.
func (r *verificationJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*ent.VerificationJob, error) {
	job, err := r.ent.VerificationJob.
		Query().
		Where(verificationjob.ID(jobID)).
		WithFindings(func(q *ent.RuleFindingQuery) {
			q.Order(rulefinding.BySeq())
		}).
		Only(ctx)
	if err != nil {
		r.log.Error("verification_job get failed", "job_id", jobID, "err", err)
		return nil, err
	}
	return job, nil
}

func (r *verificationJobRepo) ListJobs(ctx context.Context, filter ListJobsFilter) ([]*ent.VerificationJob, error) {
	q := r.ent.VerificationJob.Query()
	if filter.Status != "" {
		q = q.Where(verificationjob.Status(string(filter.Status)))
	}
	if filter.Verdict != "" {
		q = q.Where(verificationjob.Verdict(string(filter.Verdict)))
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	jobs, err := q.Order(verificationjob.ByStartedAt(entsql.OrderDesc())).All(ctx)
	if err != nil {
		r.log.Error("failed to list verification jobs", "err", err)
		return nil, err
	}
	return jobs, nil
}
