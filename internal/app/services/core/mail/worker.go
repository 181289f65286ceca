package mail

import (
	"context"
	"medplus-service/internal/app/services/shared/mailqueue"
	"medplus-service/internal/app/services/shared/smtp"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/dto/requests"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const consumerTag = "mail-worker"

// Worker drains the mailer queue and hands each payload to the SMTP
// service. Payloads that cannot be decoded or repeatedly fail to send are
// parked on the dead-letter queue so they never block delivery.
type Worker struct {
	log         *zap.Logger
	queue       *mailqueue.Service
	smtpService smtp.SMTPService
	stop        chan struct{}
}

func NewWorker(log *zap.Logger, queue *mailqueue.Service, smtpService smtp.SMTPService) *Worker {
	return &Worker{
		log:         log,
		queue:       queue,
		smtpService: smtpService,
		stop:        make(chan struct{}),
	}
}

// Start begins consuming the mailer queue. It returns a stop function to
// halt execution.
func (w *Worker) Start(ctx context.Context) (stop func(), err error) {
	deliveries, err := w.queue.Consume(consumerTag)
	if err != nil {
		return nil, err
	}

	w.log.Info("mail worker started")

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			case delivery, ok := <-deliveries:
				if !ok {
					w.log.Warn("mail worker delivery channel closed")
					return
				}
				w.handleDelivery(ctx, delivery)
			}
		}
	}()

	return func() {
		close(w.stop)
	}, nil
}

func (w *Worker) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	payload := new(requests.EmailPayload)
	if err := json.Unmarshal(delivery.Body, payload); err != nil {
		w.log.Error("mail worker received undecodable payload", zap.Error(err))
		w.park(ctx, delivery)
		return
	}

	for _, recipient := range payload.To {
		if err := w.smtpService.SendHTMLEmail(recipient, payload.Subject, payload.HTMLBody); err != nil {
			w.log.Error("mail worker failed to send email",
				zap.String(constvars.LoggingMailQueueKey, delivery.RoutingKey),
				zap.Error(err),
			)
			if delivery.Redelivered {
				w.park(ctx, delivery)
			} else if err := delivery.Nack(false, true); err != nil {
				w.log.Error("mail worker nack failed", zap.Error(err))
			}
			return
		}
	}

	if err := delivery.Ack(false); err != nil {
		w.log.Error("mail worker ack failed", zap.Error(err))
		return
	}

	w.log.Info("mail worker sent email",
		zap.Int("recipient_count", len(payload.To)),
	)
}

// park moves the message to the dead-letter queue and acks the original.
func (w *Worker) park(ctx context.Context, delivery amqp.Delivery) {
	if err := w.queue.EnqueueToDLQ(ctx, delivery.Body); err != nil {
		w.log.Error("mail worker failed to park message", zap.Error(err))
		if err := delivery.Nack(false, true); err != nil {
			w.log.Error("mail worker nack failed", zap.Error(err))
		}
		return
	}
	if err := delivery.Ack(false); err != nil {
		w.log.Error("mail worker ack failed", zap.Error(err))
	}
}
