package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// DefaultQueueName is the default queue name
	DefaultQueueName = "trackme_change_events"
	// DefaultDLQName is the default dead letter queue name
	DefaultDLQName = "trackme_change_events_dlq"
	// DefaultExchangeName is the default exchange name
	DefaultExchangeName = "trackme_changes"

	eventRoutingKey = "changes"
	dlqRoutingKey   = "dlq"
)

// RabbitMQQueue implements EventQueue using RabbitMQ
type RabbitMQQueue struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	queueName    string
	dlqName      string
	exchangeName string
}

// NewRabbitMQQueue connects to amqpURL and declares the exchange, queue and DLQ
func NewRabbitMQQueue(amqpURL string) (*RabbitMQQueue, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	queue := &RabbitMQQueue{
		conn:         conn,
		channel:      ch,
		queueName:    DefaultQueueName,
		dlqName:      DefaultDLQName,
		exchangeName: DefaultExchangeName,
	}

	if err := queue.setup(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to setup queues: %w", err)
	}

	return queue, nil
}

func (q *RabbitMQQueue) setup() error {
	err := q.channel.ExchangeDeclare(
		q.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if _, err = q.channel.QueueDeclare(q.dlqName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare DLQ: %w", err)
	}
	if err = q.channel.QueueBind(q.dlqName, dlqRoutingKey, q.exchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind DLQ: %w", err)
	}

	// Rejected events are routed to the DLQ
	queueArgs := amqp.Table{
		"x-dead-letter-exchange":    q.exchangeName,
		"x-dead-letter-routing-key": dlqRoutingKey,
	}
	if _, err = q.channel.QueueDeclare(q.queueName, true, false, false, false, queueArgs); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err = q.channel.QueueBind(q.queueName, eventRoutingKey, q.exchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue to exchange: %w", err)
	}

	return nil
}

// Publish sends event to the change exchange as a persistent message
func (q *RabbitMQQueue) Publish(ctx context.Context, event *ChangeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = q.channel.PublishWithContext(
		ctx,
		q.exchangeName,
		eventRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID.String(),
			Timestamp:    event.OccurredAt,
			Type:         event.Collection + "." + string(event.Operation),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Consume delivers events on a dedicated channel until ctx is cancelled.
// Undecodable events are rejected to the DLQ and reported on the error channel.
func (q *RabbitMQQueue) Consume(ctx context.Context, prefetchCount int) (<-chan *Message, <-chan error, error) {
	if prefetchCount < 1 {
		prefetchCount = 1
	}

	consumeCh, err := q.conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create consumer channel: %w", err)
	}

	if err := consumeCh.Qos(prefetchCount, 0, false); err != nil {
		_ = consumeCh.Close()
		return nil, nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := consumeCh.Consume(
		q.queueName,
		"",    // consumer tag (empty = auto-generate)
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = consumeCh.Close()
		return nil, nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	msgChan := make(chan *Message, prefetchCount)
	errChan := make(chan error, 1)

	go func() {
		defer close(msgChan)
		defer close(errChan)
		defer func() { _ = consumeCh.Close() }()
		forwardDeliveries(ctx, deliveries, consumeCh, msgChan, errChan)
	}()

	return msgChan, errChan, nil
}

// forwardDeliveries decodes deliveries onto msgChan until ctx is done or the
// delivery channel closes. Undecodable bodies go to the DLQ. errChan never
// blocks the loop; errors are dropped while one is still pending.
func forwardDeliveries(ctx context.Context, deliveries <-chan amqp.Delivery, ch *amqp.Channel, msgChan chan<- *Message, errChan chan<- error) {
	report := func(err error) {
		select {
		case errChan <- err:
		default:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				report(errors.New("delivery channel closed"))
				return
			}

			event, err := DecodeChangeEvent(delivery.Body)
			if err != nil {
				_ = delivery.Nack(false, false)
				report(err)
				continue
			}

			msg := &Message{
				Event:       event,
				DeliveryTag: delivery.DeliveryTag,
				Channel:     ch,
			}

			select {
			case <-ctx.Done():
				_ = delivery.Nack(false, true)
				return
			case msgChan <- msg:
			}
		}
	}
}

// PurgeOlderThan acknowledges DLQ messages stamped before now minus retention.
// Younger messages are requeued.
func (q *RabbitMQQueue) PurgeOlderThan(ctx context.Context, retention time.Duration) (int, error) {
	ch, err := q.conn.Channel()
	if err != nil {
		return 0, fmt.Errorf("failed to open purge channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	info, err := ch.QueueDeclarePassive(q.dlqName, true, false, false, false, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect DLQ: %w", err)
	}

	cutoff := time.Now().Add(-retention)
	var keep []amqp.Delivery
	purged := 0
	for i := 0; i < info.Messages; i++ {
		if ctx.Err() != nil {
			break
		}
		d, ok, err := ch.Get(q.dlqName, false)
		if err != nil {
			requeue(keep)
			return purged, fmt.Errorf("failed to read DLQ: %w", err)
		}
		if !ok {
			break
		}
		if !d.Timestamp.IsZero() && d.Timestamp.Before(cutoff) {
			if err := d.Ack(false); err != nil {
				requeue(keep)
				return purged, fmt.Errorf("failed to ack DLQ message: %w", err)
			}
			purged++
			continue
		}
		keep = append(keep, d)
	}
	requeue(keep)
	return purged, ctx.Err()
}

func requeue(deliveries []amqp.Delivery) {
	for _, d := range deliveries {
		_ = d.Nack(false, true)
	}
}

// HealthCheck verifies the queue connection is healthy
func (q *RabbitMQQueue) HealthCheck(ctx context.Context) error {
	if q.conn == nil || q.conn.IsClosed() {
		return errors.New("connection is closed")
	}
	if q.channel == nil || q.channel.IsClosed() {
		return errors.New("channel is closed")
	}
	return nil
}

// Close closes the queue connection
func (q *RabbitMQQueue) Close() error {
	var err error
	if q.channel != nil {
		err = q.channel.Close()
	}
	if q.conn != nil {
		if closeErr := q.conn.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

var (
	_ EventQueue = (*RabbitMQQueue)(nil)
	_ DLQPurger  = (*RabbitMQQueue)(nil)
)
