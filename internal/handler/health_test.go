package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/simonkvalheim/reducer-bank/internal/model"
	"github.com/simonkvalheim/reducer-bank/internal/processor"
	"github.com/simonkvalheim/reducer-bank/internal/queue"
	"github.com/simonkvalheim/reducer-bank/internal/repository"
)

func TestHealthHandler_SyncMode(t *testing.T) {
	var resp HealthResponse
	do(t, HealthHandler(nil, nil), http.MethodGet, "/health", "", http.StatusOK, &resp)

	if resp.Status != "healthy" || resp.Mode != "sync" {
		t.Errorf("response = %+v", resp)
	}
	if resp.Worker != nil || resp.QueueDepth != nil {
		t.Errorf("sync response carries queue fields: %+v", resp)
	}
}

func TestHealthHandler_AsyncMode(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	d := processor.NewDispatcher(repository.NewStateRepository(), model.DefaultControlAmounts(), true)
	pub := queue.NewPublisher(client)
	worker := queue.NewWorker(client, d)
	ctx := context.Background()

	// Deposit on a closed account is rejected by the worker after the 202
	deposit := model.NewDispatchRequest(model.Deposit{Amount: 150})
	for _, req := range []model.DispatchRequest{deposit, {Type: model.ActionOpenAccount}, deposit} {
		if _, err := pub.PublishAction(ctx, req); err != nil {
			t.Fatalf("PublishAction() error = %v", err)
		}
	}
	for i := 0; i < 2; i++ {
		if err := worker.ProcessOne(ctx); err != nil {
			t.Fatalf("ProcessOne() error = %v", err)
		}
	}

	var resp HealthResponse
	do(t, HealthHandler(pub, worker), http.MethodGet, "/health", "", http.StatusOK, &resp)

	if resp.Status != "healthy" || resp.Mode != "async" || resp.Queue != "connected" {
		t.Errorf("response = %+v", resp)
	}
	if resp.QueueDepth == nil || *resp.QueueDepth != 1 {
		t.Errorf("queue depth = %v, want 1", resp.QueueDepth)
	}
	if resp.Worker == nil || *resp.Worker != (queue.WorkerStats{Applied: 1, Rejected: 1}) {
		t.Errorf("worker = %+v, want 1 applied and 1 rejected", resp.Worker)
	}

	mr.Close()
	do(t, HealthHandler(pub, worker), http.MethodGet, "/health", "", http.StatusServiceUnavailable, &resp)
	if resp.Status != "unhealthy" || resp.Queue != "disconnected" {
		t.Errorf("response after Redis loss = %+v", resp)
	}
}
