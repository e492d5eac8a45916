package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joseph-ayodele/label-verifier/internal/batch"
	"github.com/joseph-ayodele/label-verifier/internal/common"
	"github.com/joseph-ayodele/label-verifier/internal/export"
	"github.com/joseph-ayodele/label-verifier/internal/ocr"
	"github.com/joseph-ayodele/label-verifier/internal/pipeline"
	repo "github.com/joseph-ayodele/label-verifier/internal/repository"
	"github.com/joseph-ayodele/label-verifier/internal/ruleset"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		inmem   = flag.Bool("inmem", false, "use in-memory SQLite database")
		dir     = flag.String("dir", "", "directory of label images to verify (required)")
		apps    = flag.String("apps", "", "applications JSON path (defaults to <dir>/applications.json)")
		out     = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		workers = flag.Int("workers", 4, "number of verification workers")
		timeout = flag.Duration("timeout", 2*time.Minute, "per-label verification timeout")
		watch   = flag.Bool("watch", false, "keep watching the directory for new label images")
	)
	flag.Parse()

	// Validate required flags
	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *apps == "" {
		*apps = filepath.Join(*dir, "applications.json")
	}

	// If output file not specified, use parent directory with default filename
	if *out == "" {
		parentDir := filepath.Dir(*dir)
		*out = filepath.Join(parentDir, "verification.xlsx")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := common.LoadConfig()

	// Initialize database using common utility
	dbResult, err := common.InitDatabase(ctx, cfg, *inmem, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbResult.Cleanup()

	entc := dbResult.Client

	// Wire repositories
	jobsRepo := repo.NewVerificationJobRepository(entc, logger)
	reviewsRepo := repo.NewReviewEntryRepository(entc, logger)

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

	// Load applications
	entries, err := batch.LoadApplications(*apps)
	if err != nil {
		logger.Error("failed to load applications", "apps", *apps, "error", err)
		os.Exit(1)
	}
	logger.Info("applications loaded", "apps", *apps, "entries", len(entries))

	runner := batch.NewRunner(processor, jobsRepo, reviewsRepo, logger,
		batch.WithWorkers(*workers),
		batch.WithItemTimeout(*timeout),
	)

	logger.Info("starting verification", "dir", *dir, "workers", *workers)
	_, stats, err := runner.Run(ctx, *dir, entries)
	if err != nil {
		logger.Error("batch run failed", "error", err)
		os.Exit(1)
	}

	// Export to XLSX
	logger.Info("exporting to XLSX", "output", *out)
	exportService := export.NewService(jobsRepo, logger)

	xlsxBytes, err := exportService.ExportJobsXLSX(ctx, repo.ListJobsFilter{})
	if err != nil {
		logger.Error("failed to export jobs", "error", err)
		os.Exit(1)
	}

	// Write to file
	err = os.WriteFile(*out, xlsxBytes, 0644)
	if err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	// Log summary
	logger.Info("batch verification complete",
		"entries", stats.Entries,
		"verified", stats.Verified,
		"ready", stats.Ready,
		"needs_review", stats.NeedsReview,
		"critical", stats.Critical,
		"missing_images", stats.Missing,
		"failures", stats.Failed,
		"output_file", *out)

	fmt.Printf("Label verification complete!\n")
	fmt.Printf("- Application entries: %d\n", stats.Entries)
	fmt.Printf("- Verified: %d\n", stats.Verified)
	fmt.Printf("- Ready to approve: %d\n", stats.Ready)
	fmt.Printf("- Needs review: %d\n", stats.NeedsReview)
	fmt.Printf("- Critical issues: %d\n", stats.Critical)
	fmt.Printf("- Missing images: %d\n", stats.Missing)
	fmt.Printf("- Failures: %d\n", stats.Failed)
	fmt.Printf("- Output: %s\n", *out)

	if *watch {
		if err := watchLoop(ctx, runner, batch.IndexEntries(entries), *dir, logger); err != nil {
			logger.Error("watch loop failed", "error", err)
			os.Exit(1)
		}
	}
}

// watchLoop verifies label images as they land in the drop directory. Entries
// already verified by the initial run are verified again when their file
// reappears, which re-records the job.
func watchLoop(ctx context.Context, runner *batch.Runner, ix *batch.EntryIndex, dir string, logger *slog.Logger) error {
	evCh, errCh, err := batch.StartWatcher(ctx, batch.WatchConfig{
		Root:     dir,
		Debounce: 500 * time.Millisecond,
	}, logger)
	if err != nil {
		return err
	}
	logger.Info("watching for new label images", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errCh:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		case path, ok := <-evCh:
			if !ok {
				return nil
			}
			stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			entry, found := ix.Find(stem)
			if !found {
				logger.Warn("no application entry for file", "path", path)
				continue
			}
			res := runner.VerifyFile(ctx, entry, path)
			if res.Err != "" {
				logger.Error("verification failed", "label_id", res.LabelID, "error", res.Err)
				continue
			}
			fmt.Printf("%s: %s\n", res.LabelID, res.Verdict)
		}
	}
}

func loadRules(path string) (*ruleset.Config, error) {
	if path == "" {
		return ruleset.Default(), nil
	}
	return ruleset.LoadFile(path)
}
