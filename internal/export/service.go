package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/label-verifier/gen/ent"
	"github.com/joseph-ayodele/label-verifier/internal/repository"
)

// Service is a tiny façade over the job repository that produces XLSX bytes
// for exports: one sheet of job verdicts, one sheet of per-check findings.
type Service struct {
	jobs   repository.VerificationJobRepository
	logger *slog.Logger
}

func NewService(jobs repository.VerificationJobRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{jobs: jobs, logger: logger}
}

// ExportJobsXLSX returns an XLSX workbook (as bytes) for the jobs matching the
// filter. An empty filter exports every recorded job.
func (s *Service) ExportJobsXLSX(ctx context.Context, filter repository.ListJobsFilter) ([]byte, error) {
	start := time.Now()

	jobs, err := s.jobs.ListJobs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}

	f := excelize.NewFile()
	const jobsSheet = "Jobs"
	const findingsSheet = "Findings"

	if err := f.SetSheetName("Sheet1", jobsSheet); err != nil {
		return nil, err
	}
	if index, _ := f.GetSheetIndex(findingsSheet); index == -1 {
		if _, err := f.NewSheet(findingsSheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(jobsSheet)
	f.SetActiveSheet(activeIndex)

	jobHeaders := []string{
		"Filename",
		"Beverage Type",
		"Status",
		"Verdict",
		"Passed",
		"Needs Review",
		"Failed",
		"OCR Confidence",
		"Started At",
		"Finished At",
		"Error",
	}
	for i, h := range jobHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(jobsSheet, cell, h)
	}

	findingHeaders := []string{
		"Filename",
		"Rule",
		"Category",
		"Status",
		"Message",
		"Extracted Value",
		"Application Value",
	}
	for i, h := range findingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(findingsSheet, cell, h)
	}

	jobRow := 2
	findingRow := 2
	findings := 0
	for _, j := range jobs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, jobRow)
			_ = f.SetCellValue(jobsSheet, cell, v)
		}

		write(1, j.Filename)
		write(2, j.BeverageType)
		write(3, j.Status)
		write(4, deref(j.Verdict))
		write(5, j.Passed)
		write(6, j.NeedsReview)
		write(7, j.Failed)
		write(8, fmt.Sprintf("%.1f", j.OcrConfidence))
		write(9, j.StartedAt.UTC().Format(time.RFC3339))
		if j.FinishedAt != nil {
			write(10, j.FinishedAt.UTC().Format(time.RFC3339))
		} else {
			write(10, "")
		}
		write(11, deref(j.ErrorMessage))
		jobRow++

		// Findings are not loaded by the list query, so fetch per job.
		full, err := s.jobs.GetByID(ctx, j.ID)
		if err != nil {
			continue
		}
		for _, finding := range full.Edges.Findings {
			writeFinding(f, findingsSheet, findingRow, j.Filename, finding)
			findingRow++
			findings++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(jobsSheet, "A", "A", 32)  // filename
	_ = f.SetColWidth(jobsSheet, "B", "D", 18)  // type, status, verdict
	_ = f.SetColWidth(jobsSheet, "I", "J", 22)  // timestamps
	_ = f.SetColWidth(jobsSheet, "K", "K", 48)  // error
	_ = f.SetColWidth(findingsSheet, "A", "A", 32)
	_ = f.SetColWidth(findingsSheet, "B", "B", 26) // rule id
	_ = f.SetColWidth(findingsSheet, "E", "E", 64) // message
	_ = f.SetColWidth(findingsSheet, "F", "G", 28) // values

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"jobs", len(jobs),
		"findings", findings,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeFinding(f *excelize.File, sheet string, row int, filename string, finding *ent.RuleFinding) {
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
	write(1, filename)
	write(2, finding.RuleID)
	write(3, finding.Category)
	write(4, finding.Status)
	write(5, truncate(finding.Message, 140))
	write(6, finding.ExtractedValue)
	write(7, finding.AppValue)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
