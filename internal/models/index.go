package models

import "time"

// UploadState is where a single document's upload operation ended up.
type UploadState string

const (
	UploadSubmitted UploadState = "submitted"
	UploadPolling   UploadState = "polling"
	UploadDone      UploadState = "done"
	UploadTimedOut  UploadState = "timed_out"
	UploadPollError UploadState = "poll_error"
)

// Terminal reports whether the remote side confirmed the upload.
func (s UploadState) Terminal() bool {
	return s == UploadDone
}

type UploadOutcome struct {
	Document  CandidateDocument
	Operation string
	State     UploadState
	Attempts  int
}

func (o UploadOutcome) Terminal() bool {
	return o.State.Terminal()
}

// IndexResult is returned once per indexing run.
//
// FilesIndexed counts submitted uploads, confirmed or not.
type IndexResult struct {
	StoreName    string          `json:"storeName"`
	FilesIndexed int             `json:"filesIndexed"`
	Outcomes     []UploadOutcome `json:"-"`
}

// Confirmed counts outcomes the remote side reported as done.
func (r *IndexResult) Confirmed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Terminal() {
			n++
		}
	}
	return n
}

// IndexRun is the audit record of one indexing run.
type IndexRun struct {
	ID           string
	Username     string
	StoreName    string
	Repositories []RepositoryRef
	Outcomes     []UploadOutcome
	StartedAt    time.Time
	FinishedAt   time.Time
}
