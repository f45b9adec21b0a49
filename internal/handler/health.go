package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/simonkvalheim/reducer-bank/internal/queue"
)

// QueueMonitor reports the depth of the action queue
type QueueMonitor interface {
	QueueLength(ctx context.Context) (int64, error)
}

// WorkerMonitor reports what the queue worker did with consumed actions
type WorkerMonitor interface {
	Stats() queue.WorkerStats
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status     string             `json:"status"`
	Mode       string             `json:"mode"`
	Queue      string             `json:"queue,omitempty"`
	QueueDepth *int64             `json:"queue_depth,omitempty"`
	Worker     *queue.WorkerStats `json:"worker,omitempty"`
}

// HealthHandler returns a handler reporting liveness and, in async mode,
// the queue depth and worker outcomes. Pass nil monitors in sync mode.
func HealthHandler(q QueueMonitor, worker WorkerMonitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if q == nil {
			writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Mode: "sync"})
			return
		}

		resp := HealthResponse{Status: "healthy", Mode: "async"}
		if worker != nil {
			stats := worker.Stats()
			resp.Worker = &stats
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		depth, err := q.QueueLength(ctx)
		if err != nil {
			resp.Status = "unhealthy"
			resp.Queue = "disconnected"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}

		resp.Queue = "connected"
		resp.QueueDepth = &depth
		writeJSON(w, http.StatusOK, resp)
	}
}
