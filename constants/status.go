package constants

// CheckStatus is the outcome of a single compliance check.
type CheckStatus string

// Stable values (store these exact strings in DB).
const (
	CheckPass        CheckStatus = "pass"
	CheckNeedsReview CheckStatus = "needs_review"
	CheckFail        CheckStatus = "fail"
)

// Verdict is the aggregate outcome for one label verification.
type Verdict string

const (
	VerdictReady    Verdict = "Ready to approve"
	VerdictReview   Verdict = "Needs review"
	VerdictCritical Verdict = "Critical issues"
)

// CheckStatusStrings returns the stable check-status values for schema
// validation.
func CheckStatusStrings() []string {
	return []string{string(CheckPass), string(CheckNeedsReview), string(CheckFail)}
}

// JobStatus is the canonical status for rows in verification_job.
type JobStatus string

const (
	JobStatusQueued  JobStatus = "QUEUED"  // queued for processing
	JobStatusRunning JobStatus = "RUNNING" // in progress
	JobStatusDone    JobStatus = "DONE"    // pipeline completed, verdict recorded
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure (e.g. OCR unavailable)
)

func JobStatusStrings() []string {
	return []string{
		string(JobStatusQueued),
		string(JobStatusRunning),
		string(JobStatusDone),
		string(JobStatusFailed),
	}
}

// ReviewState is the queue a reviewed label sits in.
type ReviewState string

const (
	ReviewUnderReview ReviewState = "under_review"
	ReviewApproved    ReviewState = "approved"
	ReviewRejected    ReviewState = "rejected"
)

func ReviewStateStrings() []string {
	return []string{
		string(ReviewUnderReview),
		string(ReviewApproved),
		string(ReviewRejected),
	}
}

// VerdictStrings returns the aggregate verdict values for schema validation.
func VerdictStrings() []string {
	return []string{string(VerdictReady), string(VerdictReview), string(VerdictCritical)}
}
