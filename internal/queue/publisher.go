package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/simonkvalheim/reducer-bank/internal/model"
)

const (
	// QueueName is the Redis list key for actions waiting to be dispatched
	QueueName = "account:actions"
)

// ActionMessage is the message published to the queue
type ActionMessage struct {
	ID          uuid.UUID        `json:"id"`
	Type        model.ActionType `json:"type"`
	Payload     *int64           `json:"payload,omitempty"`
	PublishedAt time.Time        `json:"published_at"`
}

// Request returns the dispatch request carried by the message
func (m ActionMessage) Request() model.DispatchRequest {
	return model.DispatchRequest{Type: m.Type, Payload: m.Payload}
}

// Publisher handles publishing actions to Redis
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a new Publisher
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishAction validates req and appends it to the dispatch queue
func (p *Publisher) PublishAction(ctx context.Context, req model.DispatchRequest) (uuid.UUID, error) {
	if err := req.Validate(); err != nil {
		return uuid.Nil, err
	}

	msg := ActionMessage{
		ID:          uuid.New(),
		Type:        req.Type,
		Payload:     req.Payload,
		PublishedAt: time.Now(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	// RPUSH + BLPOP keeps the queue FIFO
	if err := p.client.RPush(ctx, QueueName, data).Err(); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", model.ErrQueueUnavailable, err)
	}

	return msg.ID, nil
}

// QueueLength returns the current number of messages in the queue
func (p *Publisher) QueueLength(ctx context.Context) (int64, error) {
	return p.client.LLen(ctx, QueueName).Result()
}
