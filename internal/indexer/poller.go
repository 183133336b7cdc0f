package indexer

import (
	"context"
	"log"
	"time"

	"github.com/dpolishuk/repoprofile/backend/internal/models"
)

const (
	DefaultPollInterval    = 2 * time.Second
	DefaultMaxPollAttempts = 15
)

// poller drives one upload operation through
// Submitted -> Polling -> {Done | TimedOut | PollError}.
type poller struct {
	store       Store
	interval    time.Duration
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error
}

func (p *poller) await(ctx context.Context, doc models.CandidateDocument, op *Operation) models.UploadOutcome {
	out := models.UploadOutcome{
		Document:  doc,
		Operation: op.Name,
		State:     models.UploadSubmitted,
	}
	if op.Done {
		out.State = models.UploadDone
		logOperationError(doc, op)
		return out
	}

	out.State = models.UploadPolling
	for out.Attempts < p.maxAttempts {
		if err := p.sleep(ctx, p.interval); err != nil {
			log.Printf("Stopped waiting for upload of %s: %v", doc.LogicalName, err)
			out.State = models.UploadTimedOut
			return out
		}

		next, err := p.store.GetOperation(ctx, op)
		if err != nil {
			log.Printf("Error checking operation status for %s: %v", doc.LogicalName, err)
			out.State = models.UploadPollError
			return out
		}
		out.Attempts++
		if next != nil {
			op = next
		}

		if op.Done {
			out.State = models.UploadDone
			logOperationError(doc, op)
			return out
		}
	}

	log.Printf("Upload of %s not done after %d checks; counting it anyway", doc.LogicalName, out.Attempts)
	out.State = models.UploadTimedOut
	return out
}

func logOperationError(doc models.CandidateDocument, op *Operation) {
	if op.Error != "" {
		log.Printf("Upload of %s finished with error: %s", doc.LogicalName, op.Error)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
