package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	labelverifypb "github.com/joseph-ayodele/label-verifier/gen/proto/labelverify/v1"
	"github.com/joseph-ayodele/label-verifier/internal/common"
	"github.com/joseph-ayodele/label-verifier/internal/export"
	"github.com/joseph-ayodele/label-verifier/internal/ocr"
	"github.com/joseph-ayodele/label-verifier/internal/pipeline"
	repo "github.com/joseph-ayodele/label-verifier/internal/repository"
	"github.com/joseph-ayodele/label-verifier/internal/ruleset"
	svc "github.com/joseph-ayodele/label-verifier/internal/server"
)

func main() {
	// Setup structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// .env is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	addr := cfg.Server.GRPCAddr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entc, pool, err := svc.ConnectDB(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer svc.CloseDB(entc, pool, logger)

	if pool == nil {
		// Local SQLite file; keep its schema current on startup.
		if err := entc.Schema.Create(ctx); err != nil {
			logger.Error("failed to create schema", "error", err)
			os.Exit(1)
		}
	}
	if err := svc.PingDB(ctx, pool, logger, 5*time.Second); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	rules, err := loadRules(cfg.Rules.ConfigPath)
	if err != nil {
		logger.Error("failed to load rule set", "path", cfg.Rules.ConfigPath, "error", err)
		os.Exit(1)
	}

	recognizer := ocr.NewRecognizer(ocr.Config{
		Tesseract:   cfg.OCR.TesseractBin,
		TessdataDir: cfg.OCR.TessdataDir,
		Languages:   cfg.OCR.Languages,
		PSMModes:    cfg.OCR.PSMModes,
		Timeout:     cfg.OCR.Timeout,
	}, logger)
	processor := pipeline.NewProcessor(rules, recognizer, logger)

	jobsRepo := repo.NewVerificationJobRepository(entc, logger)
	reviewsRepo := repo.NewReviewEntryRepository(entc, logger)

	// gRPC server
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", addr, "error", err)
		os.Exit(1)
	}
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(svc.UnaryRequestID()))

	zl, err := zap.NewProduction()
	if err != nil {
		logger.Error("failed to build service logger", "error", err)
		os.Exit(1)
	}
	defer zl.Sync()

	verification := svc.NewVerificationService(processor, jobsRepo, reviewsRepo, zl)
	labelverifypb.RegisterVerificationServiceServer(grpcServer, verification)
	review := svc.NewReviewService(reviewsRepo, zl)
	labelverifypb.RegisterReviewServiceServer(grpcServer, review)
	exporter := svc.NewExportServer(export.NewService(jobsRepo, logger), zl)
	labelverifypb.RegisterExportServiceServer(grpcServer, exporter)

	// Register gRPC health service
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	// Set the service as serving (empty string means overall server health)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	// Reflection for grpcurl
	reflection.Register(grpcServer)

	logger.Info("labeld listening", "addr", addr)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("gRPC serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	grpcServer.GracefulStop()
}

func loadRules(path string) (*ruleset.Config, error) {
	if path == "" {
		return ruleset.Default(), nil
	}
	return ruleset.LoadFile(path)
}
