package server

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/gen/ent"
	labelverifypb "github.com/joseph-ayodele/label-verifier/gen/proto/labelverify/v1"
	"github.com/joseph-ayodele/label-verifier/internal/common"
	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/pipeline"
	"github.com/joseph-ayodele/label-verifier/internal/repository"
	"github.com/joseph-ayodele/label-verifier/internal/utils"
)

// VerificationService runs the pipeline on request and records every run as a
// job, so review and export can find it later.
type VerificationService struct {
	labelverifypb.UnimplementedVerificationServiceServer
	processor *pipeline.Processor
	jobs      repository.VerificationJobRepository
	reviews   repository.ReviewEntryRepository
	logger    *zap.Logger
}

func NewVerificationService(proc *pipeline.Processor, jobs repository.VerificationJobRepository, reviews repository.ReviewEntryRepository, logger *zap.Logger) *VerificationService {
	return &VerificationService{
		processor: proc,
		jobs:      jobs,
		reviews:   reviews,
		logger:    logger,
	}
}

func (s *VerificationService) VerifyLabel(ctx context.Context, req *labelverifypb.VerifyLabelRequest) (*labelverifypb.VerifyLabelResponse, error) {
	imagePath := strings.TrimSpace(req.GetImagePath())
	hasBlocks := len(req.GetBlocks()) > 0
	if imagePath == "" && !hasBlocks {
		return nil, status.Error(codes.InvalidArgument, "image_path or blocks is required")
	}
	if imagePath != "" && hasBlocks {
		return nil, status.Error(codes.InvalidArgument, "image_path and blocks are mutually exclusive")
	}

	app := utils.FromPBApplication(req.GetApplication())
	if app == nil {
		return nil, status.Error(codes.InvalidArgument, "application is required")
	}
	if err := validateApplication(app); err != nil {
		return nil, err
	}
	bt, _ := constants.CanonicalizeBeverageType(string(app.BeverageType))
	app.BeverageType = bt

	filename := strings.TrimSpace(req.GetFilename())
	if filename == "" {
		if imagePath != "" {
			filename = filepath.Base(imagePath)
		} else {
			filename = "inline"
		}
	}

	job, err := s.jobs.Create(ctx, &repository.CreateJobRequest{
		Filename:     filename,
		SourcePath:   imagePath,
		BeverageType: app.BeverageType,
		Application:  app,
	})
	if err != nil {
		s.logger.Error("create job failed", zap.String("filename", filename), zap.Error(err))
		return nil, status.Error(codes.Internal, "create job failed")
	}
	if err := s.jobs.MarkRunning(ctx, job.ID); err != nil {
		s.logger.Warn("mark running failed", zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	var result *pipeline.Result
	if imagePath != "" {
		result, err = s.processor.ProcessImage(ctx, imagePath, app)
		if err != nil {
			s.logger.Error("verification failed", zap.String("job_id", job.ID.String()), zap.Error(err))
			if ferr := s.jobs.FinishFailure(ctx, job.ID, err.Error()); ferr != nil {
				s.logger.Warn("record failure failed", zap.String("job_id", job.ID.String()), zap.Error(ferr))
			}
			return nil, common.ToGRPCStatus(err)
		}
	} else {
		result = s.processor.ProcessBlocks(utils.FromPBBlocks(req.GetBlocks()), app)
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
	if err := s.jobs.FinishSuccess(ctx, job.ID, outcome); err != nil {
		s.logger.Error("record verdict failed", zap.String("job_id", job.ID.String()), zap.Error(err))
		return nil, status.Error(codes.Internal, "record verdict failed")
	}
	if _, err := s.reviews.Enqueue(ctx, job.ID); err != nil {
		s.logger.Warn("enqueue for review failed", zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	s.logger.Info("label verified",
		zap.String("request_id", common.RequestIDFromContext(ctx)),
		zap.String("job_id", job.ID.String()),
		zap.String("verdict", string(result.Summary.Verdict)),
		zap.Int("checks", result.Summary.Total),
	)

	return &labelverifypb.VerifyLabelResponse{
		JobId:         job.ID.String(),
		Label:         utils.ToPBExtracted(&result.Label),
		Results:       utils.ToPBResults(result.Results),
		Summary:       utils.ToPBSummary(result.Summary),
		OcrConfidence: result.OCRConfidence,
	}, nil
}

func (s *VerificationService) GetJob(ctx context.Context, req *labelverifypb.GetJobRequest) (*labelverifypb.GetJobResponse, error) {
	jobID, err := parseJobID(req.GetJobId())
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, status.Error(codes.NotFound, "job not found")
		}
		s.logger.Error("get job failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return nil, status.Error(codes.Internal, "get job failed")
	}
	return &labelverifypb.GetJobResponse{Job: utils.ToPBJob(job)}, nil
}

func (s *VerificationService) ListJobs(ctx context.Context, req *labelverifypb.ListJobsRequest) (*labelverifypb.ListJobsResponse, error) {
	filter, err := jobsFilter(req.GetStatus(), req.GetVerdict(), req.GetLimit())
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListJobs(ctx, filter)
	if err != nil {
		s.logger.Error("list jobs failed", zap.Error(err))
		return nil, status.Error(codes.Internal, "list jobs failed")
	}

	out := make([]*labelverifypb.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, utils.ToPBJob(j))
	}
	return &labelverifypb.ListJobsResponse{Jobs: out}, nil
}

// validateApplication rejects records the rule engine cannot compare against.
func validateApplication(app *label.ApplicationData) error {
	v := common.NewValidator()
	v.Field("brand_name", app.BrandName, common.Required)
	v.Field("bottler_state", app.BottlerState, common.StateCode)
	return common.ValidateAndReturnError(v)
}

func parseJobID(raw string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return uuid.Nil, status.Error(codes.InvalidArgument, "job_id is required")
	}
	jobID, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, status.Error(codes.InvalidArgument, "job_id must be a UUID")
	}
	return jobID, nil
}

// jobsFilter validates the optional status and verdict filters shared by
// ListJobs and ExportJobs.
func jobsFilter(statusStr, verdictStr string, limit int32) (repository.ListJobsFilter, error) {
	filter := repository.ListJobsFilter{Limit: int(limit)}

	if st := strings.TrimSpace(statusStr); st != "" {
		if !containsString(constants.JobStatusStrings(), st) {
			return filter, status.Errorf(codes.InvalidArgument, "unknown status %q", st)
		}
		filter.Status = constants.JobStatus(st)
	}
	if vd := strings.TrimSpace(verdictStr); vd != "" {
		if !containsString(constants.VerdictStrings(), vd) {
			return filter, status.Errorf(codes.InvalidArgument, "unknown verdict %q", vd)
		}
		filter.Verdict = constants.Verdict(vd)
	}
	return filter, nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
