package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/gen/ent"
	"github.com/joseph-ayodele/label-verifier/gen/ent/reviewentry"
)

// ReviewEntryRepository tracks finished jobs through the human review queue.
// Every verified label lands in the queue; approve and reject move it out.
type ReviewEntryRepository interface {
	Enqueue(ctx context.Context, jobID uuid.UUID) (*ent.ReviewEntry, error)
	ListQueue(ctx context.Context, state constants.ReviewState) ([]*ent.ReviewEntry, error)
	Approve(ctx context.Context, jobID uuid.UUID, reviewer, note string) (*ent.ReviewEntry, error)
	Reject(ctx context.Context, jobID uuid.UUID, reviewer, note string) (*ent.ReviewEntry, error)
}

type reviewEntryRepo struct {
	ent *ent.Client
	log *slog.Logger
}

func NewReviewEntryRepository(entc *ent.Client, log *slog.Logger) ReviewEntryRepository {
	return &reviewEntryRepo{ent: entc, log: log}
}

// Enqueue puts a job under review. Calling it again for the same job returns
// the existing entry unchanged.
func (r *reviewEntryRepo) Enqueue(ctx context.Context, jobID uuid.UUID) (*ent.ReviewEntry, error) {
	existing, err := r.ent.ReviewEntry.
		Query().
		Where(reviewentry.JobID(jobID)).
		Only(ctx)
	if err == nil {
		return existing, nil
	}
	if !ent.IsNotFound(err) {
		r.log.Error("review_entry lookup failed", "job_id", jobID, "err", err)
		return nil, err
	}

	entry, err := r.ent.ReviewEntry.
		Create().
		SetJobID(jobID).
		SetState(string(constants.ReviewUnderReview)).
		Save(ctx)
	if err != nil {
		r.log.Error("review_entry enqueue failed", "job_id", jobID, "err", err)
		return nil, err
	}
	r.log.Info("review_entry enqueued", "job_id", jobID)
	return entry, nil
}

// ListQueue returns entries in the given state, oldest first, with the job
// eager-loaded for display.
func (r *reviewEntryRepo) ListQueue(ctx context.Context, state constants.ReviewState) ([]*ent.ReviewEntry, error) {
	q := r.ent.ReviewEntry.Query()
	if state != "" {
		q = q.Where(reviewentry.State(string(state)))
	}
	entries, err := q.
		WithJob().
		Order(reviewentry.ByCreatedAt()).
		All(ctx)
	if err != nil {
		r.log.Error("failed to list review queue", "state", state, "err", err)
		return nil, err
	}
	return entries, nil
}

func (r *reviewEntryRepo) Approve(ctx context.Context, jobID uuid.UUID, reviewer, note string) (*ent.ReviewEntry, error) {
	return r.decide(ctx, jobID, constants.ReviewApproved, reviewer, note)
}

func (r *reviewEntryRepo) Reject(ctx context.Context, jobID uuid.UUID, reviewer, note string) (*ent.ReviewEntry, error) {
	return r.decide(ctx, jobID, constants.ReviewRejected, reviewer, note)
}

func (r *reviewEntryRepo) decide(ctx context.Context, jobID uuid.UUID, state constants.ReviewState, reviewer, note string) (*ent.ReviewEntry, error) {
	entry, err := r.ent.ReviewEntry.
		Query().
		Where(reviewentry.JobID(jobID)).
		Only(ctx)
	if err != nil {
		r.log.Error("review_entry lookup failed", "job_id", jobID, "err", err)
		return nil, err
	}

	upd := r.ent.ReviewEntry.
		UpdateOne(entry).
		SetState(string(state)).
		SetDecidedAt(time.Now())
	if reviewer != "" {
		upd = upd.SetReviewer(reviewer)
	}
	if note != "" {
		upd = upd.SetNote(note)
	}

	updated, err := upd.Save(ctx)
	if err != nil {
		r.log.Error("review_entry decide failed", "job_id", jobID, "state", state, "err", err)
		return nil, err
	}
	r.log.Info("review_entry decided", "job_id", jobID, "state", state, "reviewer", reviewer)
	return updated, nil
}
