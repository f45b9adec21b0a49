package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simonkvalheim/reducer-bank/internal/model"
	"github.com/simonkvalheim/reducer-bank/internal/processor"
)

// Dispatcher applies an action to the account state
type Dispatcher interface {
	Dispatch(ctx context.Context, action model.Action) (*processor.DispatchResult, error)
}

// Worker consumes queued actions and dispatches them one at a time
type Worker struct {
	client     *redis.Client
	dispatcher Dispatcher
	stopCh     chan struct{}
	stopOnce   sync.Once

	applied  atomic.Int64
	refused  atomic.Int64
	rejected atomic.Int64
	dropped  atomic.Int64
}

// WorkerStats counts the outcomes of consumed messages.
// Callers of the async API only get 202, so rejections surface here.
type WorkerStats struct {
	Applied  int64 `json:"applied"`  // reducer accepted the action
	Refused  int64 `json:"refused"`  // reducer opened the error dialog
	Rejected int64 `json:"rejected"` // dispatch failed, e.g. the control was disabled
	Dropped  int64 `json:"dropped"`  // message could not be decoded or validated
}

// Stats returns the outcome counters since the worker was created
func (w *Worker) Stats() WorkerStats {
	return WorkerStats{
		Applied:  w.applied.Load(),
		Refused:  w.refused.Load(),
		Rejected: w.rejected.Load(),
		Dropped:  w.dropped.Load(),
	}
}

// NewWorker creates a new Worker
func NewWorker(client *redis.Client, dispatcher Dispatcher) *Worker {
	return &Worker{
		client:     client,
		dispatcher: dispatcher,
		stopCh:     make(chan struct{}),
	}
}

// Start begins consuming messages from the queue
// This runs in a loop until Stop() is called or ctx is cancelled
func (w *Worker) Start(ctx context.Context) {
	log.Println("Worker started, listening for actions...")

	for {
		select {
		case <-ctx.Done():
			log.Println("Worker stopping due to context cancellation")
			return
		case <-w.stopCh:
			log.Println("Worker stopping due to stop signal")
			return
		default:
			// Wait up to 5 seconds for a message, then loop to check for stop signal
			result, err := w.client.BLPop(ctx, 5*time.Second, QueueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				log.Printf("Error reading from queue: %v", err)
				time.Sleep(1 * time.Second)
				continue
			}

			// result[0] is the queue name, result[1] is the message
			if len(result) < 2 {
				continue
			}

			w.processMessage(ctx, result[1])
		}
	}
}

// Stop signals the worker to stop processing
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// processMessage decodes a single message and dispatches its action
func (w *Worker) processMessage(ctx context.Context, data string) {
	var msg ActionMessage
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		log.Printf("Failed to unmarshal message: %v", err)
		w.dropped.Add(1)
		return
	}

	req := msg.Request()
	if err := req.Validate(); err != nil {
		log.Printf("Dropping action %s (type: %s): %v", msg.ID, msg.Type, err)
		w.dropped.Add(1)
		return
	}

	res, err := w.dispatcher.Dispatch(ctx, req.Action())
	if err != nil {
		log.Printf("Failed to dispatch action %s (type: %s): %v", msg.ID, msg.Type, err)
		w.rejected.Add(1)
		return
	}

	if res.Refusal != "" {
		log.Printf("Action %s (type: %s) refused: %s", msg.ID, msg.Type, res.Refusal)
		w.refused.Add(1)
	} else {
		log.Printf("Action %s (type: %s) applied, balance %d", msg.ID, msg.Type, res.State.Balance)
		w.applied.Add(1)
	}
}

// ProcessOne processes a single message synchronously (useful for testing)
func (w *Worker) ProcessOne(ctx context.Context) error {
	result, err := w.client.LPop(ctx, QueueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil // No message available
		}
		return err
	}

	w.processMessage(ctx, result)
	return nil
}
