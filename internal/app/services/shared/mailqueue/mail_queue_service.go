package mailqueue

import (
	"context"
	"fmt"
	"medplus-service/internal/app/contracts"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const DeadLetterSuffix = ".dlq"

// Service owns the durable mailer queue and its dead-letter twin. Publishes
// are persistent and wait for broker confirms.
type Service struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

func NewService(conn *amqp.Connection, log *zap.Logger, queueName string) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(queueName+DeadLetterSuffix, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:        ch,
		log:       log,
		queueName: queueName,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

var _ contracts.MailerService = (*Service)(nil)

func (s *Service) Enqueue(ctx context.Context, payload *requests.EmailPayload) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("MailQueue.Enqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMailQueueKey, s.queueName),
	)

	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	return s.publish(ctx, s.queueName, body)
}

// EnqueueToDLQ parks a poison message so it never blocks the main queue.
func (s *Service) EnqueueToDLQ(ctx context.Context, rawBody []byte) error {
	return s.publish(ctx, s.queueName+DeadLetterSuffix, rawBody)
}

// Consume registers a consumer on the mailer queue with manual acks.
func (s *Service) Consume(consumerTag string) (<-chan amqp.Delivery, error) {
	deliveries, err := s.ch.Consume(s.queueName, consumerTag, false, false, false, false, nil)
	if err != nil {
		return nil, exceptions.ErrRabbitMQConsumeMessage(err, s.queueName)
	}
	return deliveries, nil
}

func (s *Service) publish(ctx context.Context, queueName string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queueName)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queueName)
	}
	return nil
}
