package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// RFQExpiryTaskQueue is the task queue the worker process polls.
const RFQExpiryTaskQueue = "rfq-expiry"

// RFQExpiryInput drives one expiry workflow run.
type RFQExpiryInput struct {
	RFQID     uuid.UUID `json:"rfq_id"`
	RFQNumber string    `json:"rfq_number"`
	Deadline  time.Time `json:"deadline"`
}

// RFQExpirer expires an RFQ that is still awaiting review at its deadline.
// Implemented by the RFQ application service; the activity below only checks
// current status through it so the workflow stays deterministic.
type RFQExpirer interface {
	ExpireIfUnattended(ctx context.Context, id uuid.UUID) error
}

// RFQExpiryWorkflow sleeps until the expiry deadline, then runs the expire
// activity. RFQs answered before the deadline are left alone by the activity.
func RFQExpiryWorkflow(ctx workflow.Context, in RFQExpiryInput) error {
	if d := in.Deadline.Sub(workflow.Now(ctx)); d > 0 {
		if err := workflow.Sleep(ctx, d); err != nil {
			return err
		}
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: 5 * time.Second,
			MaximumAttempts: 5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	return workflow.ExecuteActivity(ctx, "ExpireRFQ", in).Get(ctx, nil)
}

// ExpiryActivities holds the activity implementations for the expiry queue.
type ExpiryActivities struct {
	Expirer RFQExpirer
}

// ExpireRFQ expires the RFQ when it is still in a pre-quote state.
func (a *ExpiryActivities) ExpireRFQ(ctx context.Context, in RFQExpiryInput) error {
	return a.Expirer.ExpireIfUnattended(ctx, in.RFQID)
}

// ExpiryScheduler starts expiry workflows from the API process.
type ExpiryScheduler struct {
	tc *TemporalClient
}

// NewExpiryScheduler returns a scheduler backed by the given Temporal client.
func NewExpiryScheduler(tc *TemporalClient) *ExpiryScheduler {
	return &ExpiryScheduler{tc: tc}
}

// ScheduleExpiry starts (or no-ops on an already running) expiry workflow for
// the RFQ. The workflow ID is derived from the RFQ id so duplicate submissions
// of the same schedule are rejected by Temporal rather than duplicated.
func (s *ExpiryScheduler) ScheduleExpiry(ctx context.Context, id uuid.UUID, number string, deadline time.Time) error {
	opts := client.StartWorkflowOptions{
		ID:                       "rfq-expiry-" + id.String(),
		TaskQueue:                RFQExpiryTaskQueue,
		WorkflowExecutionTimeout: time.Until(deadline) + 24*time.Hour,
	}
	_, err := s.tc.Client.ExecuteWorkflow(ctx, opts, RFQExpiryWorkflow, RFQExpiryInput{
		RFQID:     id,
		RFQNumber: number,
		Deadline:  deadline,
	})
	if err != nil {
		return fmt.Errorf("start expiry workflow for %s: %w", number, err)
	}
	return nil
}
