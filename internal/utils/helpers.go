package utils

import (
	"encoding/json"
	"time"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/gen/ent"
	labelverifypb "github.com/joseph-ayodele/label-verifier/gen/proto/labelverify/v1"
	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/scoring"
)

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// FromPBApplication converts the wire application record into the domain type
// the rule engine reads.
func FromPBApplication(a *labelverifypb.ApplicationData) *label.ApplicationData {
	if a == nil {
		return nil
	}
	app := &label.ApplicationData{
		BrandName:       a.GetBrandName(),
		ClassType:       a.GetClassType(),
		AlcoholPct:      a.GetAlcoholPct(),
		Proof:           a.GetProof(),
		NetContents:     a.GetNetContents(),
		BottlerName:     a.GetBottlerName(),
		BottlerCity:     a.GetBottlerCity(),
		BottlerState:    a.GetBottlerState(),
		Imported:        a.GetImported(),
		CountryOfOrigin: a.GetCountryOfOrigin(),
		BeverageType:    constants.BeverageType(a.GetBeverageType()),
		Statements: label.StatementFlags{
			Sulfites:      a.GetStatements().GetSulfites(),
			Colorants:     a.GetStatements().GetColorants(),
			WoodTreatment: a.GetStatements().GetWoodTreatment(),
			Aspartame:     a.GetStatements().GetAspartame(),
			Appellation:   a.GetStatements().GetAppellation(),
			Varietal:      a.GetStatements().GetVarietal(),
			AgeStatement:  a.GetStatements().GetAgeStatement(),
		},
	}
	if a.AgeYears != nil {
		v := a.GetAgeYears()
		app.AgeYears = &v
	}
	return app
}

// FromPBBlocks converts caller-supplied text blocks for pipeline input.
func FromPBBlocks(blocks []*labelverifypb.TextBlock) []label.TextBlock {
	out := make([]label.TextBlock, 0, len(blocks))
	for _, b := range blocks {
		if b == nil {
			continue
		}
		blk := label.TextBlock{Text: b.GetText(), Confidence: b.GetConfidence()}
		if bb := b.GetBbox(); bb != nil {
			blk.BBox = label.NewBoundingBox(bb.GetX1(), bb.GetY1(), bb.GetX2(), bb.GetY2())
		}
		out = append(out, blk)
	}
	return out
}

func ToPBBox(b *label.BoundingBox) *labelverifypb.BoundingBox {
	if b == nil {
		return nil
	}
	return &labelverifypb.BoundingBox{X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2}
}

func ToPBExtracted(e *label.ExtractedLabel) *labelverifypb.ExtractedLabel {
	if e == nil {
		return nil
	}
	field := func(f label.ExtractedField) *labelverifypb.ExtractedField {
		return &labelverifypb.ExtractedField{Value: f.Value, Bbox: ToPBBox(f.BBox)}
	}
	out := &labelverifypb.ExtractedLabel{
		BrandName:         field(e.BrandName),
		ClassType:         field(e.ClassType),
		AlcoholPct:        field(e.AlcoholPct),
		Proof:             field(e.Proof),
		NetContents:       field(e.NetContents),
		GovernmentWarning: field(e.GovernmentWarning),
		Bottler:           field(e.Bottler),
		CountryOfOrigin:   field(e.CountryOfOrigin),
		Blocks:            make([]*labelverifypb.TextBlock, 0, len(e.Blocks)),
	}
	for _, b := range e.Blocks {
		bb := b.BBox
		out.Blocks = append(out.Blocks, &labelverifypb.TextBlock{
			Text:       b.Text,
			Bbox:       &labelverifypb.BoundingBox{X1: bb.X1, Y1: bb.Y1, X2: bb.X2, Y2: bb.Y2},
			Confidence: b.Confidence,
		})
	}
	return out
}

func ToPBResults(results []label.RuleResult) []*labelverifypb.RuleResult {
	out := make([]*labelverifypb.RuleResult, 0, len(results))
	for _, r := range results {
		out = append(out, &labelverifypb.RuleResult{
			RuleId:         r.RuleID,
			Category:       string(r.Category),
			Status:         string(r.Status),
			Message:        r.Message,
			ExtractedValue: r.ExtractedValue,
			AppValue:       r.AppValue,
			BboxRef:        ToPBBox(r.BBoxRef),
		})
	}
	return out
}

func ToPBSummary(s scoring.Summary) *labelverifypb.VerifySummary {
	return &labelverifypb.VerifySummary{
		Verdict:     string(s.Verdict),
		Passed:      int32(s.Passed),
		NeedsReview: int32(s.NeedsReview),
		Failed:      int32(s.Failed),
		Total:       int32(s.Total),
	}
}

// ToPBJob converts a job row, including findings when they are loaded.
func ToPBJob(j *ent.VerificationJob) *labelverifypb.Job {
	if j == nil {
		return nil
	}
	out := &labelverifypb.Job{
		Id:            j.ID.String(),
		Filename:      j.Filename,
		SourcePath:    j.SourcePath,
		BeverageType:  j.BeverageType,
		Status:        j.Status,
		Verdict:       strOrEmpty(j.Verdict),
		Passed:        int32(j.Passed),
		NeedsReview:   int32(j.NeedsReview),
		Failed:        int32(j.Failed),
		OcrConfidence: j.OcrConfidence,
		ErrorMessage:  strOrEmpty(j.ErrorMessage),
		StartedAt:     j.StartedAt.UTC().Format(time.RFC3339),
	}
	if j.FinishedAt != nil {
		out.FinishedAt = j.FinishedAt.UTC().Format(time.RFC3339)
	}
	for _, f := range j.Edges.Findings {
		out.Results = append(out.Results, ToPBFinding(f))
	}
	return out
}

func ToPBFinding(f *ent.RuleFinding) *labelverifypb.RuleResult {
	out := &labelverifypb.RuleResult{
		RuleId:         f.RuleID,
		Category:       f.Category,
		Status:         f.Status,
		Message:        f.Message,
		ExtractedValue: f.ExtractedValue,
		AppValue:       f.AppValue,
	}
	if len(f.BboxJSON) > 0 {
		var bb label.BoundingBox
		if err := json.Unmarshal(f.BboxJSON, &bb); err == nil {
			out.BboxRef = &labelverifypb.BoundingBox{X1: bb.X1, Y1: bb.Y1, X2: bb.X2, Y2: bb.Y2}
		}
	}
	return out
}

func ToPBReviewEntry(e *ent.ReviewEntry) *labelverifypb.ReviewEntry {
	if e == nil {
		return nil
	}
	out := &labelverifypb.ReviewEntry{
		JobId:     e.JobID.String(),
		State:     e.State,
		Reviewer:  e.Reviewer,
		Note:      e.Note,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.DecidedAt != nil {
		out.DecidedAt = e.DecidedAt.UTC().Format(time.RFC3339)
	}
	if e.Edges.Job != nil {
		out.Job = ToPBJob(e.Edges.Job)
	}
	return out
}
