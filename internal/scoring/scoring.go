// Package scoring aggregates per-rule outcomes into the final verdict for a
// label verification run.
package scoring

import (
	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/label"
)

// Summary is the aggregate outcome of one verification run.
type Summary struct {
	Verdict     constants.Verdict `json:"verdict"`
	Passed      int               `json:"passed"`
	NeedsReview int               `json:"needs_review"`
	Failed      int               `json:"failed"`
	Total       int               `json:"total"`
}

// Summarize counts check statuses and derives the verdict. Any failed check
// makes the run critical; otherwise any check that asked for review sends the
// label to the review queue; a run with no flags at all is ready to approve.
func Summarize(results []label.RuleResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case constants.CheckFail:
			s.Failed++
		case constants.CheckNeedsReview:
			s.NeedsReview++
		case constants.CheckPass:
			s.Passed++
		}
	}
	switch {
	case s.Failed > 0:
		s.Verdict = constants.VerdictCritical
	case s.NeedsReview > 0:
		s.Verdict = constants.VerdictReview
	default:
		s.Verdict = constants.VerdictReady
	}
	return s
}

// Unprocessable is the summary recorded when no checks could run at all,
// for example when the recognition engine is not installed.
func Unprocessable() Summary {
	return Summary{Verdict: constants.VerdictCritical}
}
