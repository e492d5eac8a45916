// Package ocr invokes a local Tesseract binary and turns its TSV output into
// word tokens for line consolidation.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/joseph-ayodele/label-verifier/internal/common"
	"github.com/joseph-ayodele/label-verifier/internal/label"
)

type Config struct {
	Tesseract   string        // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string
	Languages   string        // default "eng"
	PSMModes    []int         // page segmentation modes; each mode is one recognition pass
	OEM         int           // 1 = LSTM; leave 0 to use the engine default
	Timeout     time.Duration // per-pass bound on the engine; 0 means none
}

// Recognizer runs Tesseract over a label image and returns word tokens from
// every configured segmentation pass.
type Recognizer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRecognizer(cfg Config, logger *slog.Logger) *Recognizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Languages == "" {
		cfg.Languages = "eng"
	}
	if len(cfg.PSMModes) == 0 {
		cfg.PSMModes = []int{3, 6}
	}
	return &Recognizer{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Available probes the engine binary. A failed probe wraps
// common.ErrOCRUnavailable.
func (r *Recognizer) Available(ctx context.Context) error {
	if _, _, err := r.runner.Run(ctx, r.cfg.Tesseract, "--version"); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrOCRUnavailable, r.cfg.Tesseract, err)
	}
	return nil
}

// Recognize runs one pass per configured segmentation mode. Tokens carry the
// pass index so consolidation can deduplicate across passes. It fails only
// when every pass fails; an empty token list on a blank image is not an error.
func (r *Recognizer) Recognize(ctx context.Context, path string) ([]label.Word, error) {
	var words []label.Word
	var firstErr error
	passes := 0
	for i, psm := range r.cfg.PSMModes {
		pctx := ctx
		var cancel context.CancelFunc
		if r.cfg.Timeout > 0 {
			pctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		}
		out, errb, err := r.runner.Run(pctx, r.cfg.Tesseract, r.args(path, psm)...)
		if cancel != nil {
			cancel()
		}
		if err != nil {
			r.logger.Warn("recognition pass failed",
				"path", path,
				"psm", psm,
				"error", err,
				"stderr", truncate(string(errb), 2<<10),
			)
			if firstErr == nil {
				firstErr = fmt.Errorf("tesseract --psm %d: %w", psm, err)
			}
			continue
		}
		passes++
		words = append(words, parseTSV(out, i)...)
	}
	if passes == 0 {
		if firstErr == nil {
			firstErr = fmt.Errorf("no recognition passes configured")
		}
		return nil, firstErr
	}

	r.logger.Debug("recognition complete", "path", path, "passes", passes, "words", len(words))
	return words, nil
}

func (r *Recognizer) args(path string, psm int) []string {
	args := []string{path, "stdout", "-l", r.cfg.Languages, "--psm", strconv.Itoa(psm)}
	if r.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(r.cfg.OEM))
	}
	if r.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", r.cfg.TessdataDir)
	}
	return append(args, "tsv")
}
