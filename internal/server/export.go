package server

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	labelverifypb "github.com/joseph-ayodele/label-verifier/gen/proto/labelverify/v1"
	"github.com/joseph-ayodele/label-verifier/internal/export"
)

type ExportServer struct {
	labelverifypb.UnimplementedExportServiceServer
	svc    *export.Service
	logger *zap.Logger
}

func NewExportServer(svc *export.Service, logger *zap.Logger) *ExportServer {
	return &ExportServer{svc: svc, logger: logger}
}

func (s *ExportServer) ExportJobs(ctx context.Context, req *labelverifypb.ExportJobsRequest) (*labelverifypb.ExportJobsResponse, error) {
	filter, err := jobsFilter(req.GetStatus(), req.GetVerdict(), req.GetLimit())
	if err != nil {
		return nil, err
	}

	xlsx, err := s.svc.ExportJobsXLSX(ctx, filter)
	if err != nil {
		s.logger.Error("export.xlsx.failed", zap.Error(err))
		return nil, status.Error(codes.Internal, "export failed")
	}

	return &labelverifypb.ExportJobsResponse{Xlsx: xlsx}, nil
}
