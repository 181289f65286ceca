package contracts

import (
	"context"
	"medplus-service/internal/pkg/dto/requests"
)

type MailerService interface {
	// Enqueue publishes the email onto the mailer queue for the mail
	// worker to deliver.
	Enqueue(ctx context.Context, payload *requests.EmailPayload) error
}
