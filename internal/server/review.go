package server

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/gen/ent"
	labelverifypb "github.com/joseph-ayodele/label-verifier/gen/proto/labelverify/v1"
	"github.com/joseph-ayodele/label-verifier/internal/common"
	"github.com/joseph-ayodele/label-verifier/internal/repository"
	"github.com/joseph-ayodele/label-verifier/internal/utils"
)

// ReviewService exposes the human review queue: list what is waiting and
// record approve or reject decisions.
type ReviewService struct {
	labelverifypb.UnimplementedReviewServiceServer
	reviews repository.ReviewEntryRepository
	logger  *zap.Logger
}

func NewReviewService(reviews repository.ReviewEntryRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, logger: logger}
}

func (s *ReviewService) ListReviewQueue(ctx context.Context, req *labelverifypb.ListReviewQueueRequest) (*labelverifypb.ListReviewQueueResponse, error) {
	var state constants.ReviewState
	if st := strings.TrimSpace(req.GetState()); st != "" {
		if !containsString(constants.ReviewStateStrings(), st) {
			return nil, status.Errorf(codes.InvalidArgument, "unknown state %q", st)
		}
		state = constants.ReviewState(st)
	}

	entries, err := s.reviews.ListQueue(ctx, state)
	if err != nil {
		s.logger.Error("list review queue failed", zap.Error(err))
		return nil, status.Error(codes.Internal, "list review queue failed")
	}

	out := make([]*labelverifypb.ReviewEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, utils.ToPBReviewEntry(e))
	}
	return &labelverifypb.ListReviewQueueResponse{Entries: out}, nil
}

func (s *ReviewService) SubmitReview(ctx context.Context, req *labelverifypb.SubmitReviewRequest) (*labelverifypb.SubmitReviewResponse, error) {
	jobID, err := parseJobID(req.GetJobId())
	if err != nil {
		return nil, err
	}

	decision := strings.TrimSpace(req.GetDecision())
	var entry *ent.ReviewEntry
	switch decision {
	case string(constants.ReviewApproved):
		entry, err = s.reviews.Approve(ctx, jobID, req.GetReviewer(), req.GetNote())
	case string(constants.ReviewRejected):
		entry, err = s.reviews.Reject(ctx, jobID, req.GetReviewer(), req.GetNote())
	default:
		return nil, status.Errorf(codes.InvalidArgument, "decision must be %q or %q", constants.ReviewApproved, constants.ReviewRejected)
	}
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, status.Error(codes.NotFound, "job is not in the review queue")
		}
		s.logger.Error("submit review failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return nil, status.Error(codes.Internal, "submit review failed")
	}

	s.logger.Info("review recorded",
		zap.String("request_id", common.RequestIDFromContext(ctx)),
		zap.String("job_id", jobID.String()),
		zap.String("decision", decision),
		zap.String("reviewer", req.GetReviewer()),
	)
	return &labelverifypb.SubmitReviewResponse{Entry: utils.ToPBReviewEntry(entry)}, nil
}
