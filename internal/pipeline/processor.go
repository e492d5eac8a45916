// Package pipeline runs the full verification sequence for one label:
// recognition, line consolidation, field extraction, rule evaluation and
// verdict aggregation.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/label-verifier/internal/consolidate"
	"github.com/joseph-ayodele/label-verifier/internal/extract"
	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/match"
	"github.com/joseph-ayodele/label-verifier/internal/ocr"
	"github.com/joseph-ayodele/label-verifier/internal/rules"
	"github.com/joseph-ayodele/label-verifier/internal/ruleset"
	"github.com/joseph-ayodele/label-verifier/internal/scoring"
)

// Recognizer is the engine surface the pipeline needs; *ocr.Recognizer
// implements it.
type Recognizer interface {
	Available(ctx context.Context) error
	Recognize(ctx context.Context, path string) ([]label.Word, error)
}

// Result is everything one verification run produces.
type Result struct {
	Label         label.ExtractedLabel `json:"label"`
	Results       []label.RuleResult   `json:"results"`
	Summary       scoring.Summary      `json:"summary"`
	OCRConfidence float64              `json:"ocr_confidence"`
}

// Processor is safe for concurrent use; it holds only read-only
// configuration and stateless collaborators.
type Processor struct {
	cfg        *ruleset.Config
	recognizer Recognizer
	extractor  *extract.Extractor
	engine     *rules.Engine
	logger     *slog.Logger
}

func NewProcessor(cfg *ruleset.Config, rec Recognizer, logger *slog.Logger) *Processor {
	if cfg == nil {
		cfg = ruleset.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	scorer := match.NewScorer()
	scorer.TokenThreshold = cfg.Thresholds.TokenFuzzy
	return &Processor{
		cfg:        cfg,
		recognizer: rec,
		extractor:  extract.NewExtractor(scorer, logger),
		engine:     rules.NewEngine(cfg, logger),
		logger:     logger,
	}
}

// ProcessImage recognizes the label image and evaluates it against the
// application. When the engine is unavailable or recognition fails outright,
// the returned result still carries the critical-verdict summary with no
// check results, alongside the error.
func (p *Processor) ProcessImage(ctx context.Context, path string, app *label.ApplicationData) (*Result, error) {
	if err := p.recognizer.Available(ctx); err != nil {
		p.logger.Error("recognition engine unavailable", "error", err)
		return &Result{Summary: scoring.Unprocessable()}, err
	}

	words, err := p.recognizer.Recognize(ctx, path)
	if err != nil {
		p.logger.Error("recognition failed", "path", path, "error", err)
		return &Result{Summary: scoring.Unprocessable()}, err
	}

	blocks := consolidate.Consolidate(words)
	p.logger.Debug("pipeline.recognized", "path", path, "words", len(words), "blocks", len(blocks))
	return p.ProcessBlocks(blocks, app), nil
}

// ProcessBlocks evaluates pre-recognized text blocks against the
// application. It never fails; an empty block list simply fails the
// presence checks.
func (p *Processor) ProcessBlocks(blocks []label.TextBlock, app *label.ApplicationData) *Result {
	lbl := p.extractor.Extract(blocks, extract.Options{
		App:              app,
		WarningReference: p.cfg.CanonicalWarning,
	})
	results := p.engine.Evaluate(&lbl, app)
	summary := scoring.Summarize(results)

	p.logger.Info("label verified",
		"verdict", string(summary.Verdict),
		"passed", summary.Passed,
		"needs_review", summary.NeedsReview,
		"failed", summary.Failed,
	)
	return &Result{
		Label:         lbl,
		Results:       results,
		Summary:       summary,
		OCRConfidence: ocr.MeanConfidence(blocks),
	}
}
