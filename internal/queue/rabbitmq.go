package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/Mester2001/portfolio/pkg/logger"
	"github.com/streadway/amqp"
)

const RefreshQueue = "portfolio_refresh"

// RefreshRequest asks the consumer side to run a profile refresh.
type RefreshRequest struct {
	Username    string    `json:"username"`
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.New(errors.RefQueue, "Failed to connect to RabbitMQ", "", err, errors.LevelError)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.New(errors.RefQueue, "Failed to open RabbitMQ channel", "", err, errors.LevelError)
	}

	return &RabbitMQ{
		conn:    conn,
		channel: channel,
	}, nil
}

func (r *RabbitMQ) declare() (amqp.Queue, error) {
	return r.channel.QueueDeclare(
		RefreshQueue,
		true,
		false,
		false,
		false,
		nil,
	)
}

func (r *RabbitMQ) PublishRefreshRequest(ctx context.Context, req RefreshRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	queue, err := r.declare()
	if err != nil {
		return err
	}

	body, err := EncodeRefreshRequest(req)
	if err != nil {
		return err
	}

	return r.channel.Publish(
		"",
		queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   req.RequestedAt,
			Body:        body,
		},
	)
}

// ConsumeRefreshRequests hands every delivered request to handler until ctx
// is done or the channel closes. Handler errors are logged and the message
// is still acknowledged; the next tick retries anyway.
func (r *RabbitMQ) ConsumeRefreshRequests(ctx context.Context, handler func(context.Context, RefreshRequest) error) error {
	queue, err := r.declare()
	if err != nil {
		return err
	}

	msgs, err := r.channel.Consume(
		queue.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-msgs:
				if !ok {
					logger.Warn("refresh queue closed")
					return
				}
				handleDelivery(ctx, d.Body, handler)
			}
		}
	}()

	return nil
}

func handleDelivery(ctx context.Context, body []byte, handler func(context.Context, RefreshRequest) error) {
	req, err := DecodeRefreshRequest(body)
	if err != nil {
		logger.Error("Error decoding message: %v", err)
		return
	}

	if err := handler(ctx, req); err != nil {
		logger.Error("Error handling refresh request: %v", err)
	}
}

func EncodeRefreshRequest(req RefreshRequest) ([]byte, error) {
	return json.Marshal(req)
}

func DecodeRefreshRequest(body []byte) (RefreshRequest, error) {
	var req RefreshRequest
	err := json.Unmarshal(body, &req)
	return req, err
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}
