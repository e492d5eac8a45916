package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/common"
	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/ocr"
	"github.com/joseph-ayodele/label-verifier/internal/pipeline"
	"github.com/joseph-ayodele/label-verifier/internal/ruleset"
)

// labelverify checks one label image against one application record and
// prints the checklist. Exit status: 0 ready to approve, 1 findings to look
// at, 2 the run itself failed.
func main() {
	var (
		imagePath = flag.String("image", "", "label image to verify (required)")
		appPath   = flag.String("app", "", "application record JSON (required)")
		rulesPath = flag.String("rules", "", "rule-set JSON (defaults to RULESET_PATH, then compiled rules)")
		asJSON    = flag.Bool("json", false, "emit the full result as JSON instead of a checklist")
		verbose   = flag.Bool("v", false, "verbose pipeline logging")
	)
	flag.Parse()

	if *imagePath == "" || *appPath == "" {
		fmt.Fprintln(os.Stderr, "usage: labelverify -image <label.jpg> -app <application.json> [-rules rules.json] [-json]")
		os.Exit(2)
	}

	// Checklist goes to stdout, so logs go to stderr.
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *rulesPath == "" {
		*rulesPath = cfg.Rules.ConfigPath
	}

	app, err := loadApplication(*appPath)
	if err != nil {
		logger.Error("failed to load application record", "path", *appPath, "error", err)
		os.Exit(2)
	}

	rules, err := loadRules(*rulesPath)
	if err != nil {
		logger.Error("failed to load rule set", "path", *rulesPath, "error", err)
		os.Exit(2)
	}

	recognizer := ocr.NewRecognizer(ocr.Config{
		Tesseract:   cfg.OCR.TesseractBin,
		TessdataDir: cfg.OCR.TessdataDir,
		Languages:   cfg.OCR.Languages,
		PSMModes:    cfg.OCR.PSMModes,
		Timeout:     cfg.OCR.Timeout,
	}, logger)
	processor := pipeline.NewProcessor(rules, recognizer, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := processor.ProcessImage(ctx, *imagePath, app)
	if err != nil {
		logger.Error("verification failed", "image", *imagePath, "error", err)
		os.Exit(2)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Error("failed to encode result", "error", err)
			os.Exit(2)
		}
	} else {
		printChecklist(result)
	}

	if result.Summary.Verdict != constants.VerdictReady {
		os.Exit(1)
	}
}

func loadApplication(path string) (*label.ApplicationData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var app label.ApplicationData
	if err := json.Unmarshal(data, &app); err != nil {
		return nil, fmt.Errorf("parse application JSON: %w", err)
	}
	// Accept synonyms like "beer" or "spirits" in the record.
	bt, _ := constants.CanonicalizeBeverageType(string(app.BeverageType))
	app.BeverageType = bt
	return &app, nil
}

func loadRules(path string) (*ruleset.Config, error) {
	if path == "" {
		return ruleset.Default(), nil
	}
	return ruleset.LoadFile(path)
}

func printChecklist(res *pipeline.Result) {
	for _, r := range res.Results {
		fmt.Printf("%-9s %-22s %s\n", marker(r.Status), r.RuleID, r.Message)
	}
	s := res.Summary
	fmt.Printf("\n%s: %d passed, %d needs review, %d failed (OCR confidence %.1f)\n",
		s.Verdict, s.Passed, s.NeedsReview, s.Failed, res.OCRConfidence)
}

func marker(st constants.CheckStatus) string {
	switch st {
	case constants.CheckPass:
		return "[PASS]"
	case constants.CheckNeedsReview:
		return "[REVIEW]"
	default:
		return "[FAIL]"
	}
}
