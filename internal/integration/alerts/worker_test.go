package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

type memoryQueue struct {
	alerts map[uuid.UUID]*entity.BudgetAlert
	order  []uuid.UUID
}

func newMemoryQueue(alerts ...*entity.BudgetAlert) *memoryQueue {
	q := &memoryQueue{alerts: make(map[uuid.UUID]*entity.BudgetAlert)}
	for _, a := range alerts {
		q.alerts[a.ID] = a
		q.order = append(q.order, a.ID)
	}
	return q
}

func (q *memoryQueue) Enqueue(_ context.Context, alert *entity.BudgetAlert) error {
	q.alerts[alert.ID] = alert
	q.order = append(q.order, alert.ID)
	return nil
}

func (q *memoryQueue) PendingAlerts(_ context.Context, limit int) ([]*entity.BudgetAlert, error) {
	var out []*entity.BudgetAlert
	for _, id := range q.order {
		if a := q.alerts[id]; a.Status == entity.AlertStatusPending {
			out = append(out, a)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (q *memoryQueue) MarkSent(_ context.Context, id uuid.UUID) error {
	a, ok := q.alerts[id]
	if !ok {
		return domainerror.ErrAlertNotFound
	}
	now := time.Now().UTC()
	a.Status = entity.AlertStatusSent
	a.SentAt = &now
	return nil
}

func (q *memoryQueue) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	a, ok := q.alerts[id]
	if !ok {
		return domainerror.ErrAlertNotFound
	}
	a.Attempts++
	a.LastError = reason
	if a.Attempts >= entity.MaxAlertAttempts {
		a.Status = entity.AlertStatusFailed
	}
	return nil
}

type stubSender struct {
	sent []*entity.BudgetAlert
	err  error
}

func (s *stubSender) Send(_ context.Context, alert *entity.BudgetAlert) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, alert)
	return nil
}

func pendingAlert() *entity.BudgetAlert {
	return entity.NewBudgetAlert(10, "Groceries", decimal.NewFromInt(105), decimal.NewFromInt(100))
}

func TestWorker_DeliversAndMarksSent(t *testing.T) {
	alert := pendingAlert()
	queue := newMemoryQueue(alert)
	sender := &stubSender{}
	worker := NewWorker(queue, sender, DefaultWorkerConfig())

	worker.ProcessBatch(context.Background())

	if len(sender.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(sender.sent))
	}
	if queue.alerts[alert.ID].Status != entity.AlertStatusSent {
		t.Errorf("status = %s, want sent", queue.alerts[alert.ID].Status)
	}
	if queue.alerts[alert.ID].SentAt == nil {
		t.Error("SentAt not stamped")
	}
}

func TestWorker_TemporaryFailureLeavesAlertPending(t *testing.T) {
	alert := pendingAlert()
	queue := newMemoryQueue(alert)
	sender := &stubSender{err: domainerror.NewAlertError(
		domainerror.ErrCodeTemporaryAlertFailure, "rate limited", errors.New("429"),
	)}
	worker := NewWorker(queue, sender, DefaultWorkerConfig())

	worker.ProcessBatch(context.Background())

	got := queue.alerts[alert.ID]
	if got.Status != entity.AlertStatusPending || got.Attempts != 1 {
		t.Errorf("alert = %+v, want 1 attempt still pending", got)
	}
}

func TestWorker_PermanentFailureExhaustsAttempts(t *testing.T) {
	alert := pendingAlert()
	queue := newMemoryQueue(alert)
	sender := &stubSender{err: domainerror.NewAlertError(
		domainerror.ErrCodePermanentAlertFailure, "bad recipient", errors.New("422"),
	)}
	worker := NewWorker(queue, sender, DefaultWorkerConfig())

	worker.ProcessBatch(context.Background())

	got := queue.alerts[alert.ID]
	if got.Status != entity.AlertStatusFailed {
		t.Errorf("status = %s, want failed after a permanent error", got.Status)
	}
}

func TestWorker_RetriesUntilExhausted(t *testing.T) {
	alert := pendingAlert()
	queue := newMemoryQueue(alert)
	sender := &stubSender{err: domainerror.NewAlertError(
		domainerror.ErrCodeTemporaryAlertFailure, "smtp down", errors.New("503"),
	)}
	worker := NewWorker(queue, sender, DefaultWorkerConfig())

	for i := 0; i < entity.MaxAlertAttempts; i++ {
		worker.ProcessBatch(context.Background())
	}

	got := queue.alerts[alert.ID]
	if got.Status != entity.AlertStatusFailed || got.Attempts != entity.MaxAlertAttempts {
		t.Errorf("alert = %+v, want failed after %d attempts", got, entity.MaxAlertAttempts)
	}

	// A further batch finds nothing to do.
	worker.ProcessBatch(context.Background())
	if got.Attempts != entity.MaxAlertAttempts {
		t.Errorf("attempts grew past the cap: %d", got.Attempts)
	}
}

func TestWorker_StartStopsOnCancel(t *testing.T) {
	queue := newMemoryQueue()
	worker := NewWorker(queue, &stubSender{}, WorkerConfig{PollInterval: time.Millisecond, BatchSize: 10})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
