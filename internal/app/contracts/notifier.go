package contracts

import "context"

type PushNotifier interface {
	Send(ctx context.Context, pushToken, title, body string, data map[string]string) error
}
